package commands_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uillasnr/mobilefinance/internal/catalog"
	"github.com/uillasnr/mobilefinance/internal/config"
	"github.com/uillasnr/mobilefinance/internal/issuelog"
	"github.com/uillasnr/mobilefinance/internal/model"
	"github.com/uillasnr/mobilefinance/internal/source"
)

const today = "--today=2024-03-15"

func testdata(t *testing.T, name string) string {
	t.Helper()
	p, err := filepath.Abs(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	return p
}

// project writes a finance.yaml pointing at the testdata fixtures and
// returns its path.
func project(t *testing.T, mutate ...func(*config.Config)) string {
	t.Helper()
	cfg := config.Default()
	cfg.Timezone = "UTC"
	cfg.Source.Path = testdata(t, "transactions.json")
	cfg.Source.GoalsPath = testdata(t, "goals.json")
	for _, m := range mutate {
		m(cfg)
	}
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, config.Save(path, cfg))
	return path
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestTransactions_CurrentMonthFirst(t *testing.T) {
	out, stderr, err := runFinance(t, "transactions", "--config", project(t), today)
	require.NoError(t, err)

	ls := lines(out)
	assert.Equal(t, "março de 2024", ls[0])
	assert.Contains(t, ls[1], "Padaria")
	assert.Contains(t, ls[1], "- R$ 30,00")

	jan := strings.Index(out, "janeiro de 2024")
	require.Positive(t, jan)
	assert.Less(t, strings.Index(out, "Restaurante"), strings.Index(out, "Pagamento"))
	assert.Contains(t, out, "- R$ 100,00")
	assert.Contains(t, out, "R$ 50,00")
	assert.NotContains(t, out, "Registro antigo")

	assert.Contains(t, stderr, "transaction left out of some views")
}

func TestTransactions_English(t *testing.T) {
	cfg := project(t, func(c *config.Config) {
		c.Locale = "en"
		c.Currency = "USD"
	})
	out, _, err := runFinance(t, "transactions", "--config", cfg, today)
	require.NoError(t, err)

	ls := lines(out)
	assert.Equal(t, "March 2024", ls[0])
	assert.Contains(t, out, "January 2024")
	assert.Contains(t, out, "-$30.00")
}

func TestTransactions_Period(t *testing.T) {
	for _, args := range [][]string{
		{"--period", "2024-01"},
		{"--month", "1", "--year", "2024"},
	} {
		out, _, err := runFinance(t, append([]string{"transactions", "--config", project(t), today}, args...)...)
		require.NoError(t, err, args)
		assert.Equal(t, "janeiro de 2024", lines(out)[0], args)
		assert.NotContains(t, out, "março", args)
	}
}

func TestTransactions_Type(t *testing.T) {
	out, _, err := runFinance(t, "transactions", "--config", project(t), today, "--type", "income")
	require.NoError(t, err)
	assert.Contains(t, out, "Pagamento")
	assert.NotContains(t, out, "Restaurante")

	_, _, err = runFinance(t, "transactions", "--config", project(t), "--type", "transfer")
	assert.Error(t, err)
}

func TestTransactions_BadFilters(t *testing.T) {
	cfg := project(t)
	for _, args := range [][]string{
		{"--month", "13", "--year", "2024"},
		{"--month", "1"},
		{"--period", "2024-1"},
		{"--period", "2024-01", "--month", "1", "--year", "2024"},
	} {
		_, _, err := runFinance(t, append([]string{"transactions", "--config", cfg}, args...)...)
		assert.Error(t, err, args)
	}
}

func TestTransactions_Empty(t *testing.T) {
	out, _, err := runFinance(t, "transactions", "--config", project(t), today, "--period", "2030-01")
	require.NoError(t, err)
	assert.Equal(t, "Nenhuma transação encontrada.\n", out)
}

func TestTransactions_JSON(t *testing.T) {
	out, _, err := runFinance(t, "transactions", "--config", project(t), today, "--json")
	require.NoError(t, err)

	var sections []model.MonthSection
	require.NoError(t, json.Unmarshal([]byte(out), &sections))
	require.Len(t, sections, 2)
	assert.Equal(t, 2, sections[0].Month)
	assert.Equal(t, 0, sections[1].Month)
	assert.Len(t, sections[1].Data, 2)
}

func TestTransactions_CSVSource(t *testing.T) {
	out, _, err := runFinance(t, "transactions", "--config", project(t), today,
		"--source", testdata(t, "transactions.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "Padaria")
	assert.Contains(t, out, "Restaurante")
}

func TestTransactions_APISource(t *testing.T) {
	body, err := os.ReadFile(testdata(t, "transactions.json"))
	require.NoError(t, err)

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	t.Setenv("FINANCE_API_TOKEN", "s3cret")
	out, _, err := runFinance(t, "transactions", "--config", project(t), today, "--source", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "março de 2024", lines(out)[0])
	assert.Equal(t, "Bearer s3cret", gotAuth)
}

func TestTransactions_TokenFromDotEnv(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	cfg := project(t, func(c *config.Config) { c.Source.TokenEnv = "FINANCE_DOTENV_TEST_TOKEN" })
	dotenv := filepath.Join(filepath.Dir(cfg), ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("FINANCE_DOTENV_TEST_TOKEN=from-dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("FINANCE_DOTENV_TEST_TOKEN") })

	out, _, err := runFinance(t, "transactions", "--config", cfg, today, "--source", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Nenhuma transação encontrada.\n", out)
	assert.Equal(t, "Bearer from-dotenv", gotAuth)
}

func TestTransactions_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, _, err := runFinance(t, "transactions", "--config", project(t), "--source", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestInvalidConfig(t *testing.T) {
	cfg := project(t, func(c *config.Config) { c.Currency = "REAL" })
	_, _, err := runFinance(t, "transactions", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestCategories_Period(t *testing.T) {
	out, _, err := runFinance(t, "categories", "--config", project(t), today, "--period", "2024-01")
	require.NoError(t, err)

	ls := lines(out)
	require.Len(t, ls, 3)
	assert.Equal(t, "janeiro de 2024", ls[0])
	assert.Contains(t, ls[1], "Alimentação")
	assert.Contains(t, ls[1], "R$ 100,00")
	assert.Contains(t, ls[2], "Salário")
	assert.Contains(t, ls[2], "R$ 50,00")
}

func TestCategories_DefaultsToCurrentMonth(t *testing.T) {
	out, _, err := runFinance(t, "categories", "--config", project(t), today)
	require.NoError(t, err)
	ls := lines(out)
	require.Len(t, ls, 2)
	assert.Equal(t, "março de 2024", ls[0])
	assert.Contains(t, ls[1], "R$ 30,00")
}

func TestCategories_Placeholder(t *testing.T) {
	out, _, err := runFinance(t, "categories", "--config", project(t), today, "--period", "2030-01")
	require.NoError(t, err)
	assert.Equal(t, "janeiro de 2030\n  Crie uma Categoria\n", out)
}

func TestCategories_ResolvedFromCatalog(t *testing.T) {
	dir := t.TempDir()
	txPath := filepath.Join(dir, "pets.json")
	require.NoError(t, os.WriteFile(txPath,
		[]byte(`[{"_id":"p1","date":"2024-03-02","amount":-2500,"category":{"_id":"pets"},"title":"Ração"}]`), 0o644))
	require.NoError(t, catalog.NewService(catalog.Default()).Save(dir))

	cfgPath := filepath.Join(dir, config.FileName)
	cfg := config.Default()
	cfg.Timezone = "UTC"
	cfg.Source.Path = "pets.json"
	require.NoError(t, config.Save(cfgPath, cfg))

	out, _, err := runFinance(t, "categories", "--config", cfgPath, today, "--json")
	require.NoError(t, err)

	var totals []model.CategoryTotal
	require.NoError(t, json.Unmarshal([]byte(out), &totals))
	require.Len(t, totals, 1)
	assert.Equal(t, "Pets", totals[0].Label)
	assert.Equal(t, "#FB923C", totals[0].Color)
}

func TestEvolution(t *testing.T) {
	out, _, err := runFinance(t, "evolution", "--config", project(t), today)
	require.NoError(t, err)

	ls := lines(out)
	require.Len(t, ls, 2)
	assert.True(t, strings.HasPrefix(ls[0], "janeiro de 2024"))
	assert.Contains(t, ls[0], "R$ 50,00")
	assert.Contains(t, ls[0], "- R$ 100,00")
	assert.True(t, strings.HasSuffix(ls[0], "- R$ 50,00"))
	assert.True(t, strings.HasPrefix(ls[1], "março de 2024"))

	out, _, err = runFinance(t, "evolution", "--config", project(t), "--year", "2023")
	require.NoError(t, err)
	assert.Equal(t, "Nenhuma transação encontrada.\n", out)
}

func TestGoals(t *testing.T) {
	out, _, err := runFinance(t, "goals", "--config", project(t))
	require.NoError(t, err)

	ls := lines(out)
	require.Len(t, ls, 2)
	assert.True(t, strings.HasPrefix(ls[0], "[ ] Viagem"))
	assert.Contains(t, ls[0], "R$ 15,00 / R$ 60,00  25%")
	assert.Contains(t, ls[0], "2025-12-01")
	assert.True(t, strings.HasPrefix(ls[1], "[x] Reserva"))
	assert.Contains(t, ls[1], "100%")
}

func TestGoals_None(t *testing.T) {
	cfg := project(t, func(c *config.Config) { c.Source.GoalsPath = "" })
	out, _, err := runFinance(t, "goals", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "Sem metas cadastradas ainda\n", out)
}

func TestCheck(t *testing.T) {
	out, _, err := runFinance(t, "check", "--config", project(t))
	require.NoError(t, err)

	assert.Contains(t, out, `invalid-date [65a1f0c2e4b0a1b2c3d4e5f4]: unparseable date "not-a-date"`)
	assert.Contains(t, out, `legacy-category [65a1f0c2e4b0a1b2c3d4e5f4]`)
	assert.Contains(t, out, "4 transactions checked, 2 issues")
}

func TestCheck_Strict(t *testing.T) {
	_, _, err := runFinance(t, "check", "--config", project(t), "--strict")
	require.Error(t, err)

	_, _, err = runFinance(t, "check", "--config", project(t), "--strict",
		"--source", testdata(t, "transactions.csv"))
	assert.NoError(t, err)
}

func TestCheck_Record(t *testing.T) {
	cfg := project(t)
	_, _, err := runFinance(t, "check", "--config", cfg, today, "--record")
	require.NoError(t, err)
	_, _, err = runFinance(t, "check", "--config", cfg, today, "--record")
	require.NoError(t, err)

	entries, err := issuelog.Read(filepath.Dir(cfg))
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "65a1f0c2e4b0a1b2c3d4e5f4", entries[0].TransactionID)
	assert.Equal(t, 2024, entries[0].CheckedAt.Year())
}

func TestVersion(t *testing.T) {
	out, _, err := runFinance(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}

func TestTransactions_CSVExport(t *testing.T) {
	out, _, err := runFinance(t, "transactions", "--config", project(t), today, "--csv")
	require.NoError(t, err)

	ls := lines(out)
	require.Len(t, ls, 4)
	assert.Equal(t, source.CSVHeader, ls[0])
	assert.True(t, strings.HasPrefix(ls[1], "65a1f0c2e4b0a1b2c3d4e5f3,"))

	txns, err := (&source.CSVDecoder{}).Decode(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, txns, 3)
}
