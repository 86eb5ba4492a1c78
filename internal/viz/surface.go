package viz

import (
	"github.com/quentinglorieux/Bogo3D/internal/bogo"
)

// heightRamp orders the mesh characters from valley to peak.
var heightRamp = []rune{'░', '▒', '▓', '█'}

// surfaceSpan normalizes axis values and branch heights into the unit
// cube the camera orbits.
type surfaceSpan struct {
	aMin, aMax float64
	bMin, bMax float64
	peak       float64
}

func newSurfaceSpan(f *bogo.Field) surfaceSpan {
	var s surfaceSpan
	if n := f.A.Len(); n > 0 {
		s.aMin, s.aMax = f.A.Samples[0], f.A.Samples[n-1]
	}
	if n := f.B.Len(); n > 0 {
		s.bMin, s.bMax = f.B.Samples[0], f.B.Samples[n-1]
	}
	_, s.peak = f.MinMax()
	if s.peak <= 0 {
		s.peak = 1
	}
	return s
}

func (s surfaceSpan) point(a, b, v float64) Vec3 {
	return Vec3{X: normCoord(a, s.aMin, s.aMax), Y: v/s.peak - 0.5, Z: normCoord(b, s.bMin, s.bMax)}
}

func normCoord(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return -1 + 2*(v-lo)/(hi-lo)
}

func rampChar(v, peak float64) rune {
	if peak <= 0 {
		return heightRamp[0]
	}
	idx := int(v / peak * float64(len(heightRamp)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(heightRamp) {
		idx = len(heightRamp) - 1
	}
	return heightRamp[idx]
}

// SurfaceWireframe meshes the interacting branch for the terminal
// renderer. step is the decimation in grid samples per mesh line.
func SurfaceWireframe(f *bogo.Field, step int) *Wireframe {
	wf := NewWireframe()
	if f == nil || !f.IsValid() {
		return wf
	}
	if step < 1 {
		step = 1
	}

	span := newSurfaceSpan(f)
	rows, cols := f.Rows(), f.Cols()
	for i := 0; i < rows; i += step {
		for j := 0; j < cols; j += step {
			v := f.At(i, j)
			p := span.point(f.A.Samples[i], f.B.Samples[j], v)
			if i+step < rows {
				q := span.point(f.A.Samples[i+step], f.B.Samples[j], f.At(i+step, j))
				wf.AddEdge(p, q, rampChar(v, span.peak))
			}
			if j+step < cols {
				q := span.point(f.A.Samples[i], f.B.Samples[j+step], f.At(i, j+step))
				wf.AddEdge(p, q, rampChar(v, span.peak))
			}
		}
	}
	return wf
}

// AddCutTrace overlays the cut locus on a meshed surface, in the same
// normalized frame.
func AddCutTrace(wf *Wireframe, f *bogo.Field, c *bogo.Cut) {
	if wf == nil || f == nil || c == nil || c.Len() < 2 {
		return
	}

	span := newSurfaceSpan(f)
	var prev Vec3
	for i, s := range c.Axis.Samples {
		var p Vec3
		if c.Fixed == f.A.ID {
			p = span.point(c.FixedValue, s, c.Omega[i])
		} else {
			p = span.point(s, c.FixedValue, c.Omega[i])
		}
		if i > 0 {
			wf.AddEdge(prev, p, '●')
		}
		prev = p
	}
}
