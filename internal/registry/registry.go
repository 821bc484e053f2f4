// File: internal/registry/registry.go
// Description: The static table of transformation layers and the execution
// order resolver. Layer ids are fixed at process start: the id doubles as the
// execution order, because later layers are written assuming the
// normalizations of earlier layers already happened.
package registry

import (
	"sort"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
	"github.com/mkeller0x/layerforge-cli/internal/layers"
)

// Layer binds a descriptor to its transform implementation.
type Layer struct {
	ID          int
	Name        string
	Description string
	Transform   layers.TransformFunc
}

// Descriptor returns the enumeration-facing view of the layer.
func (l Layer) Descriptor() schemas.LayerDescriptor {
	return schemas.LayerDescriptor{ID: l.ID, Name: l.Name, Description: l.Description}
}

// executionOrder is the closed set of known layers, ascending by id.
// Defined once; never mutated after init.
var executionOrder = []Layer{
	{1, "config", "Modernizes compiler and framework configuration", layers.Config},
	{2, "patterns", "Decodes leaked HTML entities and strips debug logging", layers.Patterns},
	{3, "components", "Adds missing key props to mapped JSX elements", layers.Components},
	{4, "hydration", "Guards browser storage access for server rendering", layers.Hydration},
	{5, "nextjs", "Hoists and deduplicates the use client directive", layers.NextJS},
	{6, "accessibility", "Adds missing alt text and explicit button types", layers.Accessibility},
}

// Layers returns a copy of the full registry in execution order.
func Layers() []Layer {
	out := make([]Layer, len(executionOrder))
	copy(out, executionOrder)
	return out
}

// Descriptors returns the full registry as enumeration descriptors, ascending
// by id. CLI and UI layer pickers render from this.
func Descriptors() []schemas.LayerDescriptor {
	out := make([]schemas.LayerDescriptor, 0, len(executionOrder))
	for _, l := range executionOrder {
		out = append(out, l.Descriptor())
	}
	return out
}

// ResolveOrder maps a requested id set onto the canonical execution order:
// duplicates collapse, unknown ids are dropped silently, and the result is
// always ascending by id regardless of the order the caller supplied.
// An empty request resolves to an empty pipeline, not an error.
func ResolveOrder(requested []int) []Layer {
	wanted := make(map[int]bool, len(requested))
	for _, id := range requested {
		wanted[id] = true
	}

	out := make([]Layer, 0, len(wanted))
	for _, l := range executionOrder {
		if wanted[l.ID] {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
