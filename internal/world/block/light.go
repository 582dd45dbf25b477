package block

import "fmt"

// LightLevel is emitted block light. Only 0-15 are used.
type LightLevel uint8

// SunLightLevel is ambient sky light. Only 0-15 are used.
type SunLightLevel uint8

// MaxLight is the brightest level either channel takes.
const MaxLight = 15

// LightPair is the sun/block light reaching one surface.
type LightPair struct {
	Sun   SunLightLevel
	Block LightLevel
}

// Brightness returns the stronger of the two channels.
func (p LightPair) Brightness() uint8 {
	return max(uint8(p.Sun), uint8(p.Block))
}

// LightKind tags which variant of Light is populated.
type LightKind uint8

const (
	// LightSource applies one pair uniformly to every face.
	LightSource LightKind = iota
	// LightSolid carries one pair per face.
	LightSolid
)

func (k LightKind) String() string {
	switch k {
	case LightSource:
		return "source"
	case LightSolid:
		return "solid"
	default:
		return fmt.Sprintf("light(%d)", uint8(k))
	}
}

// Light is either a uniform source pair or a per-face array.
// Per-face propagation is not computed anywhere yet; the world assigns
// FullBright until a propagation pass fills Solid values.
type Light struct {
	Kind   LightKind
	Source LightPair
	Faces  [FaceCount]LightPair
}

var (
	// NoLight is a dark uniform source, used for empty space.
	NoLight = SourceLight(0, 0)
	// FullBright is the fully lit uniform source.
	FullBright = SourceLight(MaxLight, MaxLight)
)

// SourceLight builds a uniform light value.
func SourceLight(sun SunLightLevel, blk LightLevel) Light {
	return Light{Kind: LightSource, Source: LightPair{Sun: sun, Block: blk}}
}

// SolidLight builds a per-face light value. faces is indexed by Face.Index.
func SolidLight(faces [FaceCount]LightPair) Light {
	return Light{Kind: LightSolid, Faces: faces}
}

// At returns the light reaching face f.
func (l Light) At(f Face) LightPair {
	if l.Kind == LightSolid {
		return l.Faces[f.Index()]
	}
	return l.Source
}
