package output

import (
	"bytes"
	"fmt"

	"github.com/careflow/margin-simulator/internal/domain"
	"github.com/jung-kurt/gofpdf"
)

var (
	pdfHeaderColor = [3]int{124, 58, 237}
	pdfBodyColor   = [3]int{31, 41, 55}
	pdfLossColor   = [3]int{220, 38, 38}
	pdfGainColor   = [3]int{22, 163, 74}
	pdfLineColor   = [3]int{229, 231, 235}
)

// PDFFormatter renders a one-page A4 simulation report.
type PDFFormatter struct{}

func (PDFFormatter) Name() string      { return "pdf" }
func (PDFFormatter) Extension() string { return "pdf" }

func (PDFFormatter) Format(report *domain.SimulationReport) ([]byte, error) {
	rows, err := MetricRows(report.Result)
	if err != nil {
		return nil, err
	}
	costs, total, err := BreakdownRows(report.Breakdown)
	if err != nil {
		return nil, err
	}
	price, err := FormatCurrency(report.Input.SessionPrice)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Simulação - "+report.Procedure.Name), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(pdfHeaderColor[0], pdfHeaderColor[1], pdfHeaderColor[2])
	pdf.CellFormat(0, 10, tr("Simulador de Margem de Contribuição"), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(pdfBodyColor[0], pdfBodyColor[1], pdfBodyColor[2])
	pdf.CellFormat(0, 6, tr("Procedimento: "+report.Procedure.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Preço por sessão: %s | Sessões: %d | Tempo por sessão: %g minutos",
		price, report.Input.Sessions, report.Input.SessionMinutes)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	section := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(pdfHeaderColor[0], pdfHeaderColor[1], pdfHeaderColor[2])
		pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
		pdf.SetDrawColor(pdfLineColor[0], pdfLineColor[1], pdfLineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(2)
	}

	section("Breakdown de Custos")
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(pdfBodyColor[0], pdfBodyColor[1], pdfBodyColor[2])
	for _, c := range costs {
		style := ""
		if c.Professional {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(140, 7, tr(c.Label), "B", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, tr(c.Value), "B", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(140, 8, tr("Custo total sessão (R$):"), "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, tr(total), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	section("Resultados da Simulação")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(65, 7, tr("Métrica"), "B", 0, "L", false, 0, "")
	pdf.CellFormat(45, 7, "Valor", "B", 0, "R", false, 0, "")
	pdf.CellFormat(80, 7, "Detalhes", "B", 1, "L", false, 0, "")
	for _, r := range rows {
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(pdfBodyColor[0], pdfBodyColor[1], pdfBodyColor[2])
		pdf.CellFormat(65, 7, tr(r.Title), "B", 0, "L", false, 0, "")

		switch {
		case r.Loss:
			pdf.SetTextColor(pdfLossColor[0], pdfLossColor[1], pdfLossColor[2])
			pdf.SetFont("Arial", "B", 10)
		case r.Key == "margemContribuicao":
			pdf.SetTextColor(pdfGainColor[0], pdfGainColor[1], pdfGainColor[2])
			pdf.SetFont("Arial", "B", 10)
		}
		pdf.CellFormat(45, 7, tr(r.Value), "B", 0, "R", false, 0, "")

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(pdfBodyColor[0], pdfBodyColor[1], pdfBodyColor[2])
		pdf.CellFormat(80, 7, tr(r.Detail), "B", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(0, 5, "Gerado em "+report.GeneratedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
