package physics

import (
	"fmt"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
)

var relations = map[string]func() bogo.Relation{
	"spatial":    func() bogo.Relation { return NewSpatial() },
	"temporal":   func() bogo.Relation { return NewSpatioTemporal() },
	"condensate": func() bogo.Relation { return NewCondensate() },
}

// New returns a fresh relation with default parameters.
func New(name string) (bogo.Relation, error) {
	fn, ok := relations[name]
	if !ok {
		return nil, fmt.Errorf("unknown relation: %s", name)
	}
	return fn(), nil
}

// Names lists the registered relation names.
func Names() []string {
	names := make([]string, 0, len(relations))
	for name := range relations {
		names = append(names, name)
	}
	return names
}
