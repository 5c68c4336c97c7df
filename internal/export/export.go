// Package export turns a calculation report into its flat, uniquely keyed form
// and writes it as CSV, XLSX or JSON.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

var (
	// ErrUnsupportedFormat is returned for an unknown format name.
	ErrUnsupportedFormat = errors.New("unsupported export format")
	// ErrNonFiniteValue is returned when a report row holds NaN or Inf.
	ErrNonFiniteValue = errors.New("report contains a non-finite value")
)

// ParseFormat resolves a format name. An empty name means CSV.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatJSON:
		return "application/json"
	default:
		return "text/csv; charset=utf-8"
	}
}

// FileName builds a download name such as "summerlit-flow-report.csv".
func FileName(projectName string, f Format) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, strings.TrimSpace(projectName))
	slug = strings.Trim(slug, "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	if slug == "" {
		slug = "pool"
	}
	return slug + "-flow-report." + string(f)
}

// FormatValue renders a value with exactly 2 decimals.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ToRecord flattens report into the export schema: project name, unit count,
// then one field per report row in report order.
func ToRecord(report model.Report) (model.ExportRecord, error) {
	fields := make([]model.ExportField, 0, len(report.Rows)+2)
	fields = append(fields,
		model.ExportField{Key: model.KeyProjectName, Header: model.LabelProjectName, Value: report.ProjectName},
		model.ExportField{Key: model.KeyUnitCount, Header: model.LabelUnitCount, Value: strconv.Itoa(report.UnitCount)},
	)

	seen := make(map[string]struct{}, len(report.Rows)+2)
	seen[model.KeyProjectName] = struct{}{}
	seen[model.KeyUnitCount] = struct{}{}

	for _, row := range report.Rows {
		if math.IsNaN(row.Value) || math.IsInf(row.Value, 0) {
			return model.ExportRecord{}, fmt.Errorf("%w: %s", ErrNonFiniteValue, row.Key)
		}
		if _, dup := seen[row.Key]; dup {
			return model.ExportRecord{}, fmt.Errorf("duplicate export key %q", row.Key)
		}
		seen[row.Key] = struct{}{}
		fields = append(fields, model.ExportField{
			Key:    row.Key,
			Header: row.Label,
			Value:  FormatValue(row.Value),
		})
	}

	return model.ExportRecord{Fields: fields}, nil
}

// Write renders report in format f to w.
func Write(w io.Writer, f Format, report model.Report) error {
	record, err := ToRecord(report)
	if err != nil {
		return err
	}

	switch f {
	case FormatCSV:
		return WriteCSV(w, record)
	case FormatXLSX:
		return WriteXLSX(w, report, record)
	case FormatJSON:
		return WriteJSON(w, record)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}
