package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/careflow/margin-simulator/internal/calculation"
	"github.com/careflow/margin-simulator/internal/catalog"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := NewCLIApp("1.2.3", filepath.Join(t.TempDir(), "missing.env"))
	var out, errOut bytes.Buffer
	app.SetOutput(&out, &errOut)
	app.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := app.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "margin-sim version: 1.2.3\n", out)
}

func TestProcedures(t *testing.T) {
	out, err := run(t, "procedures")
	require.NoError(t, err)
	assert.Contains(t, out, "19 procedimentos disponíveis")
	assert.Contains(t, out, "Limpeza de Pele Profunda")
	assert.Contains(t, out, "Página 1 de 3")

	out, err = run(t, "procedures", "toxina", "--per-page", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "1 de 19 procedimentos encontrados")
	assert.Contains(t, out, "Toxina Botulínica")
	assert.NotContains(t, out, "Peeling")

	out, err = run(t, "ls", "--page", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Página 3 de 3")
	assert.Contains(t, out, "Ozonioterapia Estética")
}

func TestShow(t *testing.T) {
	out, err := run(t, "show", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "#3 Toxina Botulínica")
	assert.Contains(t, out, "Frasco de toxina 100U")
	assert.Contains(t, out, "R$\u00a0727,00")

	_, err = run(t, "show", "abc")
	assert.ErrorContains(t, err, "invalid procedure id")

	_, err = run(t, "show", "404")
	assert.ErrorIs(t, err, catalog.ErrProcedureNotFound)
}

func TestSimulate_Console(t *testing.T) {
	out, err := run(t, "simulate", "7", "--price", "100", "--sessions", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Drenagem Linfática")
	assert.Contains(t, out, "Resultados da Simulação")
	// 10 × (100 − 42)
	assert.Contains(t, out, "R$\u00a0580,00")
	assert.Contains(t, out, "58,0%")
}

func TestSimulate_FileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	out, err := run(t, "simulate", "1", "--format", "json", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Relatório salvo em "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Limpeza de Pele Profunda", decoded["procedure"].(map[string]any)["nome"])
}

func TestSimulate_Invalid(t *testing.T) {
	out, err := run(t, "simulate", "1", "--sessions", "0")
	require.Error(t, err)
	assert.ErrorIs(t, err, calculation.ErrInvalidInput)
	assert.Contains(t, out, "Aguardando Simulação")

	_, err = run(t, "simulate", "1", "--format", "docx")
	assert.ErrorContains(t, err, "unsupported")
}

func TestCalculate(t *testing.T) {
	out, err := run(t, "calculate",
		"--price", "100", "--sessions", "10", "--minutes", "30", "--professional", "20",
		"--consumable", "Máscara calmante=10")
	require.NoError(t, err)
	assert.Contains(t, out, "Simulação avulsa")
	assert.Contains(t, out, "R$\u00a0700,00")
	assert.Contains(t, out, "70,0%")
	assert.Contains(t, out, "5.0h de trabalho total")

	out, err = run(t, "calculate", "--sessions", "10", "--minutes", "30")
	require.Error(t, err)
	assert.Contains(t, out, "precoSessao must be greater than zero")

	_, err = run(t, "calculate", "--price", "1", "--consumable", "sem valor")
	assert.ErrorContains(t, err, "expected name=value")
}

func TestCalculate_NonFinite(t *testing.T) {
	out, err := run(t, "calculate", "--price", "100", "--sessions", "1", "--minutes", "30",
		"--consumable", "Luvas=NaN")
	assert.ErrorIs(t, err, calculation.ErrInvalidInput)
	assert.Contains(t, out, "Aguardando Simulação")
	assert.Contains(t, out, "insumos value of \"Luvas\" must be finite")

	out, err = run(t, "calculate", "--price", "1e308", "--sessions", "10", "--minutes", "30")
	assert.ErrorIs(t, err, calculation.ErrInvalidInput)
	assert.Contains(t, out, "Aguardando Simulação")
	assert.Contains(t, out, "receitaTotal is out of range")
}

func TestParseConsumables(t *testing.T) {
	got, err := parseConsumables([]string{"Ácido=12,5", " Luvas = 3 ", "a=b=4"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Ácido", got[0].Name)
	assert.Equal(t, 12.5, got[0].Value)
	assert.Equal(t, "Luvas", got[1].Name)
	assert.Equal(t, "a=b", got[2].Name)

	_, err = parseConsumables([]string{"Luvas=três"})
	assert.Error(t, err)
}

func TestCatalogExportAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	out, err := run(t, "catalog", "export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "19 procedimentos exportados")

	out, err = run(t, "catalog", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "19 procedimentos válidos")

	out, err = run(t, "--catalog", path, "procedures", "laser")
	require.NoError(t, err)
	assert.Contains(t, out, "Depilação a Laser")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("procedures:\n  - id: 1\n    nome: X\n"), 0644))
	_, err = run(t, "catalog", "validate", bad)
	assert.ErrorContains(t, err, "suggested price must be positive")
}

func TestInvalidLogLevel(t *testing.T) {
	app := NewCLIApp("dev", filepath.Join(t.TempDir(), "missing.env"))
	app.SetOutput(&bytes.Buffer{}, &bytes.Buffer{})
	app.SetArgs([]string{"--log-level", "chatty", "procedures"})
	assert.ErrorContains(t, app.Execute(), "MARGIN_LOG_LEVEL")
}

func TestBreakEven(t *testing.T) {
	out, err := run(t, "breakeven", "3", "--target", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "Toxina Botulínica")
	assert.Contains(t, out, "Preço de equilíbrio por sessão: R$\u00a0727,00")
	assert.Contains(t, out, "Preço para margem de 50,0%: R$\u00a01.454,00 (margem total R$\u00a0727,00 em 1 sessões)")

	_, err = run(t, "breakeven", "3", "--target", "100")
	assert.ErrorIs(t, err, calculation.ErrInvalidInput)
}
