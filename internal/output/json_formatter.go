package output

import (
	"encoding/json"

	"github.com/careflow/margin-simulator/internal/domain"
	"gopkg.in/yaml.v3"
)

// renderedReport is the serialized view: the raw report plus its display rows.
type renderedReport struct {
	domain.SimulationReport `yaml:",inline"`
	Metrics                 []MetricRow `json:"metrics" yaml:"metrics"`
}

func newRenderedReport(report *domain.SimulationReport) (*renderedReport, error) {
	rows, err := MetricRows(report.Result)
	if err != nil {
		return nil, err
	}
	return &renderedReport{SimulationReport: *report, Metrics: rows}, nil
}

// JSONFormatter serializes the simulation report as pretty-printed JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string      { return "json" }
func (JSONFormatter) Extension() string { return "json" }

func (JSONFormatter) Format(report *domain.SimulationReport) ([]byte, error) {
	r, err := newRenderedReport(report)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(r, "", "  ")
}

// YAMLFormatter serializes the simulation report as YAML.
type YAMLFormatter struct{}

func (YAMLFormatter) Name() string      { return "yaml" }
func (YAMLFormatter) Extension() string { return "yaml" }

func (YAMLFormatter) Format(report *domain.SimulationReport) ([]byte, error) {
	r, err := newRenderedReport(report)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(r)
}
