package service

import (
	"fmt"
	"math"
	"strconv"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
)

// rowsPerZone is the length of each zone's chain in the report.
const rowsPerZone = 4

// ZoneKey returns the stable export key for a zone field. i is 1-based.
func ZoneKey(i int, field string) string {
	return "zone_" + strconv.Itoa(i) + "_" + field
}

// BuildReport assembles the ordered rows for agg. Advisory rows come first,
// then four rows per zone in input order, then the totals block.
// ProjectName is left for the caller to fill in.
func BuildReport(agg model.AggregateResult, c model.GlobalConstants) model.Report {
	n := len(agg.Zones)
	rows := make([]model.ReportRow, 0, 2+n*rowsPerZone+3+n)

	rows = append(rows,
		model.ReportRow{
			Key:     model.KeyMinAreaRequired,
			Label:   fmt.Sprintf("%d Unit Count x %s Units per Living =", agg.UnitCount, operand(c.UnitsPerLivingRatio)),
			Value:   agg.MinAreaRequired,
			Section: model.SectionAdvisory,
		},
		model.ReportRow{
			Key:     model.KeyMinFlowRateRequired,
			Label:   fmt.Sprintf("%d Unit Count x %s GPM Factor =", agg.UnitCount, operand(c.GPMPerUnitFactor)),
			Value:   agg.MinFlowRateRequired,
			Section: model.SectionAdvisory,
		},
	)

	for idx, zr := range agg.Zones {
		i := idx + 1
		name := zoneName(zr.Zone, i)
		rows = append(rows,
			model.ReportRow{
				Key:     ZoneKey(i, "area"),
				Label:   name + " Area",
				Value:   zr.Zone.Area,
				Section: model.SectionZone,
				Zone:    i,
			},
			model.ReportRow{
				Key:     ZoneKey(i, "cubic_feet"),
				Label:   fmt.Sprintf("%s %s Area x %s Average Depth =", operand(zr.Zone.Area), name, operand(zr.Zone.AverageDepth)),
				Value:   zr.CubicFeet,
				Section: model.SectionZone,
				Zone:    i,
			},
			model.ReportRow{
				Key:     ZoneKey(i, "volume_gallons"),
				Label:   fmt.Sprintf("%s Cubic Feet x %s Gallons per Cubic =", operand(zr.CubicFeet), operand(c.GallonsPerCubicFoot)),
				Value:   zr.VolumeGallons,
				Section: model.SectionZone,
				Zone:    i,
			},
			model.ReportRow{
				Key:     ZoneKey(i, "flow_rate"),
				Label:   fmt.Sprintf("%s Volume / %s Turnover =", operand(zr.VolumeGallons), operand(zr.Zone.TurnoverMinutes)),
				Value:   zr.FlowRateGPM,
				Section: model.SectionZone,
				Zone:    i,
			},
		)
	}

	rows = append(rows,
		model.ReportRow{Key: model.KeyTotalFlowRate, Label: "Total Flow Rate", Value: agg.TotalFlowRateGPM, Section: model.SectionTotals},
		model.ReportRow{Key: model.KeyTotalArea, Label: "Total Area Provided", Value: agg.TotalArea, Section: model.SectionTotals},
	)
	for idx, zr := range agg.Zones {
		i := idx + 1
		rows = append(rows, model.ReportRow{
			Key:     ZoneKey(i, "volume"),
			Label:   "Volume " + zoneName(zr.Zone, i),
			Value:   zr.VolumeGallons,
			Section: model.SectionTotals,
			Zone:    i,
		})
	}
	rows = append(rows, model.ReportRow{
		Key:     model.KeyTotalVolume,
		Label:   "Total Volume",
		Value:   agg.TotalVolumeGallons,
		Section: model.SectionTotals,
	})

	return model.Report{
		UnitCount: agg.UnitCount,
		Rows:      rows,
	}
}

func zoneName(z model.ZoneInput, i int) string {
	if z.Name != "" {
		return z.Name
	}
	return "Zone " + strconv.Itoa(i)
}

// operand formats a label operand to at most 2 decimals, trailing zeros trimmed.
func operand(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
