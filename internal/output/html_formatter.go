package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/careflow/margin-simulator/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (HTMLFormatter) Name() string      { return "html" }
func (HTMLFormatter) Extension() string { return "html" }

//go:embed templates/simulation.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("simulation").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
}).Parse(htmlTemplateSource))

func (HTMLFormatter) Format(report *domain.SimulationReport) ([]byte, error) {
	rows, err := MetricRows(report.Result)
	if err != nil {
		return nil, err
	}
	costs, total, err := BreakdownRows(report.Breakdown)
	if err != nil {
		return nil, err
	}

	data := struct {
		*domain.SimulationReport
		Metrics   []MetricRow
		Costs     []BreakdownRow
		CostTotal string
	}{report, rows, costs, total}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
