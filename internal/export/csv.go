package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
)

// WriteCSV writes a header row of labels followed by one value row.
func WriteCSV(w io.Writer, record model.ExportRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(record.Headers()); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := cw.Write(record.Values()); err != nil {
		return fmt.Errorf("failed to write csv values: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
