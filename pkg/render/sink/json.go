package sink

import (
	"encoding/json"

	"github.com/staveline/staveline/pkg/engrave"
	"github.com/staveline/staveline/pkg/errors"
)

// RenderJSON exports the layout as a pretty-printed JSON document. This is
// the data interchange format for staveline, enabling:
//
//   - Integration with external rendering tools
//   - Caching computed layouts for fast re-rendering
//   - Round-trip rendering via [ParseJSON]
//
// Layouts are deterministic for identical input, so the exported bytes are
// stable and safe to compare or content-hash.
func RenderJSON(l engrave.Layout) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return data, nil
}

// ParseJSON reads a layout back from its JSON export.
func ParseJSON(data []byte) (engrave.Layout, error) {
	var l engrave.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return engrave.Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	return l, nil
}
