package luacats

import (
	"encoding/json"
	"fmt"
)

// DecodeDefinitions parses a full doc.json export: a JSON array of
// definition objects. Any malformed object or unrecognized kind tag fails
// the whole decode; there is no partial result.
func DecodeDefinitions(data []byte) ([]Definition, error) {
	var defs []Definition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("decoding doc export: %w", err)
	}
	return defs, nil
}
