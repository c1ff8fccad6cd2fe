package output

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/careflow/margin-simulator/internal/catalog"
	"github.com/careflow/margin-simulator/internal/domain"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

var (
	lossStyle  = color.New(color.FgRed, color.Bold).SprintFunc()
	gainStyle  = color.New(color.FgGreen, color.Bold).SprintFunc()
	titleStyle = color.New(color.FgMagenta, color.Bold).SprintFunc()
)

// ConsoleFormatter renders the simulation as terminal tables.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string      { return "console" }
func (ConsoleFormatter) Extension() string { return "txt" }

func (ConsoleFormatter) Format(report *domain.SimulationReport) ([]byte, error) {
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

	var buf bytes.Buffer
	fmt.Fprintln(&buf, titleStyle("SIMULADOR DE MARGEM DE CONTRIBUIÇÃO"))
	fmt.Fprintf(&buf, "Procedimento: %s\n", report.Procedure.Name)
	fmt.Fprintf(&buf, "Preço por sessão: %s | Sessões: %d | Tempo por sessão: %s minutos\n\n",
		price, report.Input.Sessions, strconv.FormatFloat(report.Input.SessionMinutes, 'f', -1, 64))

	costData := pterm.TableData{{"Breakdown de Custos", "Valor"}}
	for _, c := range costs {
		costData = append(costData, []string{c.Label, c.Value})
	}
	costData = append(costData, []string{"Custo total sessão (R$):", total})
	costTable, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(costData).Srender()
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(&buf, costTable)
	fmt.Fprintln(&buf)

	resultData := pterm.TableData{{"Métrica", "Valor", "Detalhes"}}
	for _, r := range rows {
		value := r.Value
		switch {
		case r.Loss:
			value = lossStyle(value)
		case r.Key == "margemContribuicao":
			value = gainStyle(value)
		}
		resultData = append(resultData, []string{r.Title, value, r.Detail})
	}
	resultTable, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(resultData).Srender()
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(&buf, "Resultados da Simulação")
	fmt.Fprintln(&buf, resultTable)
	return buf.Bytes(), nil
}

// RenderCatalogPage renders one page of the procedure listing as a table.
func RenderCatalogPage(page catalog.Page) (string, error) {
	data := pterm.TableData{{"ID", "Procedimento", "Preço Sugerido", "Sessões", "Tempo/Sessão", "Custo Profissional", "Custo/Sessão"}}
	for _, p := range page.Items {
		price, err := FormatCurrency(p.SuggestedPrice)
		if err != nil {
			return "", err
		}
		professional, err := FormatCurrency(p.ProfessionalCostPerSession)
		if err != nil {
			return "", err
		}
		perSession, err := FormatCurrency(p.SessionCost())
		if err != nil {
			return "", err
		}
		data = append(data, []string{
			strconv.Itoa(p.ID),
			p.Name,
			price,
			strconv.Itoa(p.Sessions),
			strconv.FormatFloat(p.SessionMinutes, 'f', -1, 64) + " min",
			professional,
			perSession,
		})
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, page.Summary())
	if len(page.Items) == 0 {
		fmt.Fprintln(&buf, "Nenhum procedimento encontrado")
		return buf.String(), nil
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", err
	}
	fmt.Fprintln(&buf, table)
	fmt.Fprintf(&buf, "Página %d de %d\n", page.Page, page.TotalPages)
	return buf.String(), nil
}

// RenderProcedure renders a catalog entry with its per-session cost breakdown.
func RenderProcedure(p domain.Procedure, b domain.Breakdown) (string, error) {
	price, err := FormatCurrency(p.SuggestedPrice)
	if err != nil {
		return "", err
	}
	costs, total, err := BreakdownRows(b)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s\n", titleStyle(fmt.Sprintf("#%d", p.ID)), titleStyle(p.Name))
	fmt.Fprintf(&buf, "Preço sugerido: %s | Sessões: %d | Tempo por sessão: %s minutos\n\n",
		price, p.Sessions, strconv.FormatFloat(p.SessionMinutes, 'f', -1, 64))

	data := pterm.TableData{{"Breakdown de Custos", "Valor"}}
	for _, c := range costs {
		data = append(data, []string{c.Label, c.Value})
	}
	data = append(data, []string{"Custo total sessão (R$):", total})
	table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return "", err
	}
	fmt.Fprintln(&buf, table)
	return buf.String(), nil
}
