package decoders

import (
	"github.com/custodia-labs/traitdex/internal/decoders/jsonfile"
	"github.com/custodia-labs/traitdex/internal/decoders/legacyjs"
	"github.com/custodia-labs/traitdex/internal/decoders/modernjs"
)

// RegisterDefaults registers all built-in decoders with the registry.
// Call this during application initialisation to enable standard flavors.
func RegisterDefaults(r *Registry) {
	r.Register(modernjs.New())
	r.Register(legacyjs.New())
	r.Register(jsonfile.New())
}
