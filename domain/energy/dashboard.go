// Package energy implements the renewable-plant dashboard variant: a fixed
// schema over the generic table model, with its own KPI set and chart
// lineup. Unlike the generic path, the schema is validated at load time so
// every downstream computation can assume the required columns exist.
package energy

import (
	"fmt"
	"strings"

	"datalens/domain/chart"
	"datalens/domain/metrics"
	"datalens/domain/table"
)

// Required schema columns. Uploads missing any of these fail at load with
// the missing names listed.
const (
	ColTechnology = "Tecnologia"
	ColStatus     = "Estado_Actual"
	ColCapacity   = "Capacidad_Instalada_MW"
	ColOperator   = "Operador"
)

// Optional columns; their KPIs and charts degrade gracefully when absent.
const (
	ColEfficiency = "Eficiencia_Planta_Pct"
	ColInvestment = "Inversion_Inicial_MUSD"
	ColGeneration = "Generacion_Diaria_MWh"
)

// RequiredColumns lists the schema columns every energy dataset must carry.
var RequiredColumns = []string{ColTechnology, ColStatus, ColCapacity, ColOperator}

// MissingColumnsError reports which required columns an upload lacks.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("dataset is missing required columns: %s", strings.Join(e.Columns, ", "))
}

// ValidateSchema checks the required columns and returns a
// MissingColumnsError naming every absent one.
func ValidateSchema(t *table.Table) error {
	var missing []string
	for _, name := range RequiredColumns {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// Filter is the dashboard's pair of multiselect filters.
type Filter struct {
	Technologies []string `json:"technologies"`
	Statuses     []string `json:"statuses"`
}

// KPIs are the dashboard's headline metrics over the filtered rows.
// HasEfficiency/HasInvestment distinguish a real zero from an absent column.
type KPIs struct {
	TotalCapacityMW     float64 `json:"totalCapacityMW"`
	AvgEfficiencyPct    float64 `json:"avgEfficiencyPct"`
	HasEfficiency       bool    `json:"hasEfficiency"`
	TotalInvestmentMUSD float64 `json:"totalInvestmentMUSD"`
	HasInvestment       bool    `json:"hasInvestment"`
	PlantCount          int     `json:"plantCount"`
}

// Dashboard is the full render payload: KPIs, chart specs and the status
// frequency data backing the pie chart. Warning is set (and everything else
// left zeroed) when the selection excludes everything.
type Dashboard struct {
	KPIs            KPIs                `json:"kpis"`
	Charts          []chart.Spec        `json:"charts"`
	StatusBreakdown chart.FrequencyData `json:"statusBreakdown"`
	RowCount        int                 `json:"rowCount"`
	Warning         string              `json:"warning,omitempty"`
}

// FilterOptions returns the distinct technology and status values observed
// at load time, for populating the multiselect widgets.
func FilterOptions(t *table.Table) (technologies, statuses []string) {
	if col, ok := t.Column(ColTechnology); ok {
		technologies = col.DistinctValues()
	}
	if col, ok := t.Column(ColStatus); ok {
		statuses = col.DistinctValues()
	}
	return technologies, statuses
}

// Build computes the dashboard for a filter. An empty technology or status
// selection excludes everything: the dashboard carries a warning and skips
// the downstream computation instead of aggregating zero rows.
func Build(t *table.Table, cls table.Classification, f Filter) (Dashboard, error) {
	if err := ValidateSchema(t); err != nil {
		return Dashboard{}, err
	}

	if len(f.Technologies) == 0 || len(f.Statuses) == 0 {
		return Dashboard{
			Warning: "select at least one technology and one status",
		}, nil
	}

	sel := table.Selection{Include: map[string][]string{
		ColTechnology: f.Technologies,
		ColStatus:     f.Statuses,
	}}
	view := table.Apply(t.AllRows(), sel)

	dash := Dashboard{RowCount: view.Len()}
	dash.KPIs = buildKPIs(view, cls)
	dash.Charts = buildCharts(t)

	breakdown, err := chart.Frequency(view, ColStatus)
	if err != nil {
		return Dashboard{}, err
	}
	dash.StatusBreakdown = breakdown
	return dash, nil
}

func buildKPIs(v *table.View, cls table.Classification) KPIs {
	snap := metrics.Summarize(v, cls, []string{ColCapacity, ColEfficiency, ColInvestment})

	k := KPIs{PlantCount: v.Len()}
	if m, ok := snap.Metric(ColCapacity); ok {
		k.TotalCapacityMW = m.Sum
	}
	if m, ok := snap.Metric(ColEfficiency); ok {
		k.HasEfficiency = true
		k.AvgEfficiencyPct = m.Mean
	}
	if m, ok := snap.Metric(ColInvestment); ok {
		k.HasInvestment = true
		k.TotalInvestmentMUSD = m.Sum
	}
	return k
}

func buildCharts(t *table.Table) []chart.Spec {
	specs := []chart.Spec{{
		Family: chart.FamilyGroupedBar,
		X:      ColOperator,
		Y:      ColCapacity,
		Color:  ColTechnology,
		Title:  "Capacidad Instalada por Operador (MW)",
	}}

	if t.HasColumn(ColInvestment) && t.HasColumn(ColGeneration) {
		specs = append(specs, chart.Spec{
			Family: chart.FamilyScatter,
			X:      ColInvestment,
			Y:      ColGeneration,
			Color:  ColTechnology,
			Size:   ColCapacity,
			Title:  "Inversión vs. Generación Diaria",
		})
	} else {
		specs = append(specs, chart.Spec{
			Family: chart.FamilyScatter,
			Note:   "missing columns for the investment vs. generation scatter",
		})
	}

	specs = append(specs, chart.Spec{
		Family: chart.FamilyPie,
		X:      ColStatus,
		Title:  "Proporción por Estado del Proyecto",
	})
	return specs
}
