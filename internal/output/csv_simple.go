package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/careflow/margin-simulator/internal/domain"
	"github.com/careflow/margin-simulator/pkg/decimal"
)

// CSVFormatter writes one row per metric, followed by the cost breakdown lines.
type CSVFormatter struct{}

func (CSVFormatter) Name() string      { return "csv" }
func (CSVFormatter) Extension() string { return "csv" }

func (CSVFormatter) Format(report *domain.SimulationReport) ([]byte, error) {
	rows, err := MetricRows(report.Result)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"secao", "chave", "titulo", "valor", "formatado", "detalhes", "prejuizo"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			"resultado",
			r.Key,
			r.Title,
			decimal.NewMoney(r.Raw).String(),
			r.Value,
			r.Detail,
			strconv.FormatBool(r.Loss),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	lines, _, err := BreakdownRows(report.Breakdown)
	if err != nil {
		return nil, err
	}
	for i, l := range lines {
		record := []string{
			"custos",
			strconv.Itoa(i),
			l.Label,
			decimal.NewMoney(report.Breakdown.Lines[i].Amount).String(),
			l.Value,
			"",
			"false",
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
