package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/guttosm/pool-flow-service/internal/domain/dto"
	"github.com/guttosm/pool-flow-service/internal/domain/model"
	"github.com/guttosm/pool-flow-service/internal/export"
	"github.com/guttosm/pool-flow-service/internal/service"
)

const (
	formatTable        = "table"
	defaultProjectName = "Pool"
)

var errBinaryToTerminal = errors.New("xlsx output needs --out")

type calculateOptions struct {
	file   string
	format string
	out    string
}

// loadParams reads a parameter file. Constants missing from the file use the defaults.
func loadParams(path string) (*dto.CalculateFlowRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading parameter file: %w", err)
	}

	var params dto.CalculateFlowRequest
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("parsing parameter YAML: %w", err)
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if params.ProjectName == "" {
		params.ProjectName = defaultProjectName
	}
	return &params, nil
}

func runCalculate(stdout io.Writer, opts calculateOptions) error {
	params, err := loadParams(opts.file)
	if err != nil {
		return err
	}

	constants := params.Constants.ApplyTo(model.DefaultConstants())
	constants.UnitCount = params.UnitCount

	calculator := service.NewFlowCalculatorService(service.WithoutMetrics())
	_, report, err := calculator.Run(params.ZoneInputs(), constants)
	if err != nil {
		return err
	}
	report.ProjectName = params.ProjectName

	if opts.format == "" || opts.format == formatTable {
		return printTable(stdout, report)
	}

	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	if opts.out == "" {
		if format == export.FormatXLSX {
			return errBinaryToTerminal
		}
		return export.Write(stdout, format, report)
	}

	return writeReport(opts.out, format, report)
}

// writeReport renders the whole export before touching path, so a failed
// render leaves no partial file behind.
func writeReport(path string, format export.Format, report model.Report) error {
	var buf bytes.Buffer
	if err := export.Write(&buf, format, report); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
