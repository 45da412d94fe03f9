package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// print writes v as indented JSON or YAML. Raw JSON is decoded first so YAML
// output shows its structure.
func (e *env) print(v any) error {
	return render(e.out, v, e.output)
}

func render(w io.Writer, v any, format string) error {
	if raw, ok := v.(json.RawMessage); ok {
		var decoded any
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &decoded); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
		}
		v = decoded
	}

	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output %q (expected json|yaml)", format)
	}
}
