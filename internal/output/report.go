package output

import (
	"fmt"
	"io"

	"github.com/careflow/margin-simulator/internal/domain"
)

// GenerateReport renders report in the named format. Console output goes to w;
// every other format is written to path, or to a timestamped file in dir when
// path is empty. It returns the written file path, or "" for console output.
func GenerateReport(w io.Writer, report *domain.SimulationReport, format, dir, path string) (string, error) {
	f, err := GetFormatterByName(format)
	if err != nil {
		return "", err
	}
	if f.Name() == "console" && path == "" {
		data, err := f.Format(report)
		if err != nil {
			return "", err
		}
		if _, err := w.Write(data); err != nil {
			return "", fmt.Errorf("failed to write console report: %w", err)
		}
		return "", nil
	}
	return WriteFormatted(f, report, dir, path)
}

// WritePlaceholder prints the empty-state message used when a simulation is invalid.
func WritePlaceholder(w io.Writer, reason error) error {
	if reason != nil {
		_, err := fmt.Fprintf(w, "%s\n%v\n", Placeholder, reason)
		return err
	}
	_, err := fmt.Fprintln(w, Placeholder)
	return err
}
