package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/daibit/internal/model"
)

// FormatState writes the raw persisted state in the given format.
// Only json and yaml are supported.
func FormatState(w io.Writer, format FormatType, state *model.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	switch format {
	case FormatJSON:
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		// Decoding the JSON as a YAML node keeps key order and unknown fields.
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("convert state: %w", err)
		}
		blockStyle(&doc)
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(&doc); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported state format: %s (use json or yaml)", format)
	}
}

// blockStyle clears flow and quoting styles so the document renders as block YAML.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
