package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/OCharnyshevich/subsurface/internal/world/block"
	"github.com/OCharnyshevich/subsurface/internal/world/cube"
)

// ErrCorrupt is returned when persisted chunk bytes cannot be decoded.
var ErrCorrupt = errors.New("corrupt chunk data")

// Encoded block layout, little endian:
//
//	id uint32 | visibility uint8 | light kind uint8 | sun uint8 | block uint8 | 6 × (sun uint8, block uint8)
const blockBytes = 4 + 1 + 1 + 2 + 2*block.FaceCount

var (
	encoder *zstd.Encoder
	decoder *zstd.Decoder
)

func init() {
	var err error
	encoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic(fmt.Sprintf("chunk: create zstd encoder: %v", err))
	}
	decoder, err = zstd.NewReader(nil)
	if err != nil {
		panic(fmt.Sprintf("chunk: create zstd decoder: %v", err))
	}
}

// MarshalBinary encodes the block array in local index order and compresses it.
func (c *Chunk) MarshalBinary() ([]byte, error) {
	raw := make([]byte, 4, 4+len(c.blocks)*blockBytes)
	binary.LittleEndian.PutUint32(raw, uint32(len(c.blocks)))
	for _, b := range c.blocks {
		raw = appendBlock(raw, b)
	}
	return encoder.EncodeAll(raw, nil), nil
}

func appendBlock(dst []byte, b block.Block) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(b.ID))
	dst = append(dst, byte(b.Visibility), byte(b.Light.Kind), byte(b.Light.Source.Sun), byte(b.Light.Source.Block))
	for _, p := range b.Light.Faces {
		dst = append(dst, byte(p.Sun), byte(p.Block))
	}
	return dst
}

func readBlock(src []byte) block.Block {
	b := block.Block{
		ID:         block.ID(binary.LittleEndian.Uint32(src)),
		Visibility: block.FaceVisibility(src[4]),
		Light: block.Light{
			Kind:   block.LightKind(src[5]),
			Source: block.LightPair{Sun: block.SunLightLevel(src[6]), Block: block.LightLevel(src[7])},
		},
	}
	for i := range b.Light.Faces {
		off := 8 + 2*i
		b.Light.Faces[i] = block.LightPair{Sun: block.SunLightLevel(src[off]), Block: block.LightLevel(src[off+1])}
	}
	return b
}

// Decode rebuilds a chunk at origin from bytes produced by MarshalBinary.
func Decode(origin cube.Pos, data []byte) (*Chunk, error) {
	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: decompress: %v", ErrCorrupt, err)
	}
	if len(raw) < 4 {
		return nil, fmt.Errorf("%w: short header", ErrCorrupt)
	}
	n := binary.LittleEndian.Uint32(raw)
	if n != Volume {
		return nil, fmt.Errorf("%w: block count %d, want %d", ErrCorrupt, n, Volume)
	}
	body := raw[4:]
	if len(body) != Volume*blockBytes {
		return nil, fmt.Errorf("%w: payload %d bytes, want %d", ErrCorrupt, len(body), Volume*blockBytes)
	}

	c := New(origin)
	for i := range c.blocks {
		b := readBlock(body[i*blockBytes:])
		if b.Light.Kind != block.LightSource && b.Light.Kind != block.LightSolid {
			return nil, fmt.Errorf("%w: block %d has light kind %d", ErrCorrupt, i, b.Light.Kind)
		}
		c.blocks[i] = b
	}
	return c, nil
}
