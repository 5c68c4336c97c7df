package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReport_Row(t *testing.T) {
	report := Report{
		ProjectName: "Summerlit",
		Rows: []ReportRow{
			{Key: KeyMinAreaRequired, Label: "242 Unit Count x 4.5 Units per Living =", Value: 1089},
			{Key: KeyTotalVolume, Label: "Total Volume", Value: 63522.03},
		},
	}

	row, ok := report.Row(KeyTotalVolume)
	assert.True(t, ok)
	assert.Equal(t, 63522.03, row.Value)

	_, ok = report.Row("zone_9_volume")
	assert.False(t, ok)
}

func TestExportRecord(t *testing.T) {
	record := ExportRecord{Fields: []ExportField{
		{Key: KeyProjectName, Header: LabelProjectName, Value: "Summerlit"},
		{Key: KeyUnitCount, Header: LabelUnitCount, Value: "242"},
		{Key: KeyTotalFlowRate, Header: "Total Flow Rate", Value: "371.54"},
	}}

	assert.Equal(t, []string{"Project Name", "Number of Units", "Total Flow Rate"}, record.Headers())
	assert.Equal(t, []string{"Summerlit", "242", "371.54"}, record.Values())

	v, ok := record.Get(KeyTotalFlowRate)
	assert.True(t, ok)
	assert.Equal(t, "371.54", v)

	_, ok = record.Get("missing")
	assert.False(t, ok)
}
