package model

// Report sections group rows for display.
const (
	SectionAdvisory = "advisory"
	SectionZone     = "zone"
	SectionTotals   = "totals"
)

// Export record keys that never depend on the zone count.
const (
	KeyProjectName         = "project_name"
	KeyUnitCount           = "unit_count"
	KeyMinAreaRequired     = "min_area_required"
	KeyMinFlowRateRequired = "min_flow_rate_required"
	KeyTotalFlowRate       = "total_flow_rate"
	KeyTotalArea           = "total_area"
	KeyTotalVolume         = "total_volume"
)

// Header labels for the two non-numeric leading export columns.
const (
	LabelProjectName = "Project Name"
	LabelUnitCount   = "Number of Units"
)

// ReportRow is one labeled value of the calculation chain.
// Label encodes the operation performed so a reviewer can audit it.
//
// @Description Labeled report entry
type ReportRow struct {
	Key     string  `json:"key" example:"zone_1_flow_rate"`
	Label   string  `json:"label" example:"61844.64 Volume / 180 Turnover ="`
	Value   float64 `json:"value" example:"343.5813333333333"`
	Section string  `json:"section" example:"zone"`
	Zone    int     `json:"zone,omitempty" example:"1"`
}

// Report is the ordered, full-precision result of a run.
//
// @Description Ordered calculation report
type Report struct {
	ProjectName string      `json:"project_name" example:"Summerlit"`
	UnitCount   int         `json:"unit_count" example:"242"`
	Rows        []ReportRow `json:"rows"`
}

// Row returns the row stored under key.
func (r Report) Row(key string) (ReportRow, bool) {
	for _, row := range r.Rows {
		if row.Key == key {
			return row, true
		}
	}
	return ReportRow{}, false
}

// ExportField is a single column of the flat export.
type ExportField struct {
	Key    string `json:"key"`
	Header string `json:"header"`
	Value  string `json:"value"`
}

// ExportRecord is the flat, uniquely keyed, stringified form of a Report.
type ExportRecord struct {
	Fields []ExportField `json:"fields"`
}

// Headers returns the header row in schema order.
func (r ExportRecord) Headers() []string {
	headers := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		headers[i] = f.Header
	}
	return headers
}

// Values returns the value row in schema order.
func (r ExportRecord) Values() []string {
	values := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		values[i] = f.Value
	}
	return values
}

// Get returns the stringified value for key.
func (r ExportRecord) Get(key string) (string, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// CalculationRun is the last computed result for a parameter snapshot.
//
// @Description A cached calculation run
type CalculationRun struct {
	ID          string          `json:"run_id" example:"9f2c1e..."`
	ProjectName string          `json:"project_name" example:"Summerlit"`
	Zones       []ZoneInput     `json:"zones"`
	Constants   GlobalConstants `json:"constants"`
	Aggregate   AggregateResult `json:"aggregate"`
	Report      Report          `json:"report"`
}
