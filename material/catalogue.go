package material

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// allocators holds every registered constitutive model, modelname ->
// allocator, mirroring msolid.GetModel's registration pattern (msolid/
// solid.go) but dropping its simulation-key database: a VFM problem
// (spec.md §3) owns exactly one live Collaborator per material region,
// so there is nothing to key a cache by.
var allocators = map[string]func() Collaborator{}

// New allocates and initializes a named constitutive model with the
// given parameter record. An unknown model name is a fatal
// configuration error (spec.md §7).
func New(modelname string, prms fun.Prms) (Collaborator, error) {
	allocator, ok := allocators[modelname]
	if !ok {
		return nil, chk.Err("material: unknown model %q", modelname)
	}
	c := allocator()
	if err := c.Init(prms); err != nil {
		return nil, chk.Err("material: %q: %v", modelname, err)
	}
	return c, nil
}

// Names returns every registered model name, in no particular order.
func Names() []string {
	names := make([]string, 0, len(allocators))
	for n := range allocators {
		names = append(names, n)
	}
	return names
}
