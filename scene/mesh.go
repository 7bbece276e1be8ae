package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrDegenerateMesh is returned when procedural mesh parameters cannot
// produce a valid surface.
var ErrDegenerateMesh = errors.New("degenerate mesh parameters")

// Mesh is an indexed triangle list.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// TriangleCount returns the number of triangles in m.
func (m Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// MustMesh panics when err is not nil. It is meant for fixed, known-good
// parameters.
func MustMesh(m Mesh, err error) Mesh {
	if err != nil {
		panic(err)
	}
	return m
}

// NewPlane returns a size x size quad in the XZ plane facing +Y.
func NewPlane(size float32) (Mesh, error) {
	if !(size > 0) {
		return Mesh{}, fmt.Errorf("plane size %v: %w", size, ErrDegenerateMesh)
	}
	h := size / 2
	return Mesh{
		Positions: []mgl32.Vec3{{-h, 0, -h}, {h, 0, -h}, {h, 0, h}, {-h, 0, h}},
		Normals:   []mgl32.Vec3{Up, Up, Up, Up},
		UVs:       []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Indices:   []uint32{0, 3, 2, 0, 2, 1},
	}, nil
}

// cubeFaces lists each face normal with two tangents whose cross product
// is the normal, so every face winds counter-clockwise from outside.
var cubeFaces = [6][3]mgl32.Vec3{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
}

// NewCube returns an axis-aligned cube of edge length size centred on the origin.
func NewCube(size float32) (Mesh, error) {
	if !(size > 0) {
		return Mesh{}, fmt.Errorf("cube size %v: %w", size, ErrDegenerateMesh)
	}
	h := size / 2

	var m Mesh
	for _, face := range cubeFaces {
		normal, u, v := face[0], face[1], face[2]
		center := normal.Mul(h)
		base := uint32(len(m.Positions))

		corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
		for _, c := range corners {
			m.Positions = append(m.Positions, center.Add(u.Mul(c[0]*h)).Add(v.Mul(c[1]*h)))
			m.Normals = append(m.Normals, normal)
			m.UVs = append(m.UVs, mgl32.Vec2{(c[0] + 1) / 2, (c[1] + 1) / 2})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m, nil
}

// NewUVSphere returns a sphere built from sectors around the Y axis and
// stacks from pole to pole.
func NewUVSphere(radius float32, sectors, stacks int) (Mesh, error) {
	switch {
	case !(radius > 0):
		return Mesh{}, fmt.Errorf("sphere radius %v: %w", radius, ErrDegenerateMesh)
	case sectors < 3:
		return Mesh{}, fmt.Errorf("sphere sectors %d < 3: %w", sectors, ErrDegenerateMesh)
	case stacks < 2:
		return Mesh{}, fmt.Errorf("sphere stacks %d < 2: %w", stacks, ErrDegenerateMesh)
	}

	var m Mesh
	for i := 0; i <= stacks; i++ {
		phi := math.Pi/2 - math.Pi*float64(i)/float64(stacks)
		y := math.Sin(phi)
		ring := math.Cos(phi)

		for j := 0; j <= sectors; j++ {
			theta := 2 * math.Pi * float64(j) / float64(sectors)
			normal := mgl32.Vec3{
				float32(ring * math.Cos(theta)),
				float32(y),
				float32(ring * math.Sin(theta)),
			}
			m.Positions = append(m.Positions, normal.Mul(radius))
			m.Normals = append(m.Normals, normal)
			m.UVs = append(m.UVs, mgl32.Vec2{
				float32(j) / float32(sectors),
				float32(i) / float32(stacks),
			})
		}
	}

	stride := uint32(sectors + 1)
	for i := uint32(0); i < uint32(stacks); i++ {
		for j := uint32(0); j < uint32(sectors); j++ {
			k1 := i*stride + j
			k2 := k1 + stride
			if i != 0 {
				m.Indices = append(m.Indices, k1, k1+1, k2)
			}
			if i != uint32(stacks)-1 {
				m.Indices = append(m.Indices, k1+1, k2+1, k2)
			}
		}
	}
	return m, nil
}
