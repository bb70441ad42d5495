package liquid

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ContextFromYAML builds a Context from a YAML document whose top level is a
// mapping. Scalars, sequences, and nested mappings convert to the matching
// Value variants.
func ContextFromYAML(data []byte) (Context, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding context document: %w", err)
	}
	ctx := make(Context, len(doc))
	for k, v := range doc {
		ctx[k] = FromGo(v)
	}
	return ctx, nil
}
