package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
	"github.com/guttosm/pool-flow-service/internal/export"
)

// printTable writes the report as label/value columns, one blank line between sections.
func printTable(w io.Writer, report model.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\t%s\t\n", model.LabelProjectName, report.ProjectName)
	fmt.Fprintf(tw, "%s\t%d\t\n", model.LabelUnitCount, report.UnitCount)

	section := ""
	zone := 0
	for _, row := range report.Rows {
		if row.Section != section || row.Zone != zone {
			fmt.Fprintln(tw, "\t\t")
			section, zone = row.Section, row.Zone
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", row.Label, export.FormatValue(row.Value))
	}

	return tw.Flush()
}
