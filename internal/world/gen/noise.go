package gen

// Simplex noise after Ken Perlin's improved algorithm, as described by
// Stefan Gustavson. Outputs lie in [-1, 1].

var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

const (
	skew2   = 0.36602540378443864676 // (sqrt(3) - 1) / 2
	unskew2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	skew3   = 1.0 / 3.0
	unskew3 = 1.0 / 6.0
)

// Noise is a seeded simplex noise source.
type Noise struct {
	perm [512]uint8
}

// NewNoise builds the permutation table for seed with a seeded Fisher-Yates shuffle.
func NewNoise(seed int64) *Noise {
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}

	s := seed
	for i := 255; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407
		j := int((s>>33)&0x7FFFFFFF) % (i + 1)
		p[i], p[j] = p[j], p[i]
	}

	n := &Noise{}
	for i := range n.perm {
		n.perm[i] = p[i&255]
	}
	return n
}

func (n *Noise) hash2(i, j int) int {
	return int(n.perm[i+int(n.perm[j])]) % 12
}

func (n *Noise) hash3(i, j, k int) int {
	return int(n.perm[i+int(n.perm[j+int(n.perm[k])])]) % 12
}

func corner2(g int, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t < 0 {
		return 0
	}
	t *= t
	return t * t * (grad3[g][0]*x + grad3[g][1]*y)
}

func corner3(g int, x, y, z float64) float64 {
	t := 0.6 - x*x - y*y - z*z
	if t < 0 {
		return 0
	}
	t *= t
	return t * t * (grad3[g][0]*x + grad3[g][1]*y + grad3[g][2]*z)
}

// Noise2D samples 2D simplex noise.
func (n *Noise) Noise2D(x, y float64) float64 {
	s := (x + y) * skew2
	i := floor(x + s)
	j := floor(y + s)

	t := float64(i+j) * unskew2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	ii, jj := i&255, j&255
	sum := corner2(n.hash2(ii, jj), x0, y0)
	sum += corner2(n.hash2(ii+i1, jj+j1), x0-float64(i1)+unskew2, y0-float64(j1)+unskew2)
	sum += corner2(n.hash2(ii+1, jj+1), x0-1+2*unskew2, y0-1+2*unskew2)
	return 70 * sum
}

// simplexOrder3 returns the offsets of the second and third simplex corners
// for a point inside the skewed unit cube.
func simplexOrder3(x, y, z float64) (a, b [3]int) {
	switch {
	case x >= y && y >= z:
		return [3]int{1, 0, 0}, [3]int{1, 1, 0}
	case x >= y && x >= z:
		return [3]int{1, 0, 0}, [3]int{1, 0, 1}
	case x >= y:
		return [3]int{0, 0, 1}, [3]int{1, 0, 1}
	case y < z:
		return [3]int{0, 0, 1}, [3]int{0, 1, 1}
	case x < z:
		return [3]int{0, 1, 0}, [3]int{0, 1, 1}
	default:
		return [3]int{0, 1, 0}, [3]int{1, 1, 0}
	}
}

// Noise3D samples 3D simplex noise.
func (n *Noise) Noise3D(x, y, z float64) float64 {
	s := (x + y + z) * skew3
	i := floor(x + s)
	j := floor(y + s)
	k := floor(z + s)

	t := float64(i+j+k) * unskew3
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)
	z0 := z - (float64(k) - t)

	a, b := simplexOrder3(x0, y0, z0)
	ii, jj, kk := i&255, j&255, k&255

	sum := corner3(n.hash3(ii, jj, kk), x0, y0, z0)
	sum += corner3(n.hash3(ii+a[0], jj+a[1], kk+a[2]),
		x0-float64(a[0])+unskew3, y0-float64(a[1])+unskew3, z0-float64(a[2])+unskew3)
	sum += corner3(n.hash3(ii+b[0], jj+b[1], kk+b[2]),
		x0-float64(b[0])+2*unskew3, y0-float64(b[1])+2*unskew3, z0-float64(b[2])+2*unskew3)
	sum += corner3(n.hash3(ii+1, jj+1, kk+1), x0-1+3*unskew3, y0-1+3*unskew3, z0-1+3*unskew3)
	return 32 * sum
}

func floor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}
