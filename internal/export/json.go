package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
)

// WriteJSON writes the record as a single JSON object whose keys keep schema order.
func WriteJSON(w io.Writer, record model.ExportRecord) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range record.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return fmt.Errorf("failed to encode key %q: %w", f.Key, err)
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return fmt.Errorf("failed to encode value for %q: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteString("}\n")

	_, err := buf.WriteTo(w)
	return err
}
