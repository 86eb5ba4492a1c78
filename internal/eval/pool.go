package eval

import (
	"sync"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
)

// FieldPool recycles field buffers between recomputes over a fixed
// grid, so the interactive view does not allocate per keystroke.
type FieldPool struct {
	pool sync.Pool
	a, b bogo.Axis
}

func NewFieldPool(a, b bogo.Axis) *FieldPool {
	p := &FieldPool{a: a, b: b}
	p.pool = sync.Pool{
		New: func() interface{} {
			return bogo.NewField(a, b)
		},
	}
	return p
}

func (p *FieldPool) Get() *bogo.Field {
	return p.pool.Get().(*bogo.Field)
}

func (p *FieldPool) Put(f *bogo.Field) {
	if f == nil || f.Rows() != p.a.Len() || f.Cols() != p.b.Len() {
		return
	}
	p.pool.Put(f)
}
