package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uillasnr/mobilefinance/internal/catalog"
	"github.com/uillasnr/mobilefinance/internal/ledger"
	"github.com/uillasnr/mobilefinance/internal/model"
	"github.com/uillasnr/mobilefinance/internal/source"
)

func TestMain(m *testing.M) {
	decimal.MarshalJSONWithoutQuotes = true
	os.Exit(m.Run())
}

func march2024() time.Time {
	return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func newTestServer(t *testing.T, src source.Source, opts ...Option) http.Handler {
	t.Helper()
	opts = append([]Option{WithClock(march2024)}, opts...)
	return New(src, ledger.New(), opts...).Handler()
}

func fileSource() source.Source {
	return source.NewFileSource("../../testdata/transactions.json", "../../testdata/goals.json")
}

func get(t *testing.T, h http.Handler, target string, out any) int {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

type failingSource struct{}

func (failingSource) Transactions(context.Context) ([]model.Transaction, error) {
	return nil, errors.New("connection refused")
}

func (failingSource) Goals(context.Context) ([]model.Goal, error) {
	return nil, errors.New("connection refused")
}

func TestHealthz(t *testing.T) {
	var body map[string]string
	code := get(t, newTestServer(t, failingSource{}), "/healthz", &body)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestSections(t *testing.T) {
	var sections []struct {
		Title string `json:"title"`
		Year  int    `json:"year"`
		Month int    `json:"month"`
		Data  []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	code := get(t, newTestServer(t, fileSource()), "/sections", &sections)
	require.Equal(t, http.StatusOK, code)

	require.Len(t, sections, 2)
	assert.Equal(t, "March 2024", sections[0].Title)
	assert.Equal(t, 2, sections[0].Month)
	require.Len(t, sections[0].Data, 1)
	assert.Equal(t, "65a1f0c2e4b0a1b2c3d4e5f3", sections[0].Data[0].ID)

	assert.Equal(t, "January 2024", sections[1].Title)
	assert.Len(t, sections[1].Data, 2)
}

func TestSections_Filtered(t *testing.T) {
	var sections []model.MonthSection
	code := get(t, newTestServer(t, fileSource()), "/sections?month=0&year=2024", &sections)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, sections, 1)
	assert.Equal(t, 0, sections[0].Month)
	assert.Len(t, sections[0].Data, 2)
}

func TestSections_EmptyIsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t, fileSource()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sections?month=5&year=2030", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestSections_BadQuery(t *testing.T) {
	h := newTestServer(t, fileSource())
	for _, q := range []string{"?month=0", "?year=2024", "?month=x&year=2024", "?month=12&year=2024"} {
		var body errorResponse
		code := get(t, h, "/sections"+q, &body)
		assert.Equal(t, http.StatusBadRequest, code, q)
		assert.NotEmpty(t, body.Error, q)
	}
}

type chartSlice struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

func TestCategories_Period(t *testing.T) {
	var totals []chartSlice
	code := get(t, newTestServer(t, fileSource()), "/categories?period=2024-01", &totals)
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, []chartSlice{
		{ID: "food", Label: "Alimentação", Value: 10000, Color: "#F87171"},
		{ID: "salary", Label: "Salário", Value: 5000, Color: "#22C55E"},
	}, totals)
}

func TestCategories_DefaultsToCurrentMonth(t *testing.T) {
	var totals []chartSlice
	code := get(t, newTestServer(t, fileSource()), "/categories", &totals)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, totals, 1)
	assert.Equal(t, "food", totals[0].ID)
	assert.Equal(t, float64(3000), totals[0].Value)
}

func TestCategories_Type(t *testing.T) {
	var totals []chartSlice
	code := get(t, newTestServer(t, fileSource()), "/categories?period=2024-01&type=income", &totals)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, totals, 1)
	assert.Equal(t, "salary", totals[0].ID)

	code = get(t, newTestServer(t, fileSource()), "/categories?type=transfer", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCategories_Placeholder(t *testing.T) {
	var totals []chartSlice
	code := get(t, newTestServer(t, fileSource()), "/categories?period=2030-01", &totals)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []chartSlice{
		{ID: ledger.PlaceholderID, Label: "Create a category", Value: 0, Color: ledger.PlaceholderColor},
	}, totals)
}

func TestCategories_BadPeriod(t *testing.T) {
	code := get(t, newTestServer(t, fileSource()), "/categories?period=2024-13", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCategories_ResolvesFromCatalog(t *testing.T) {
	src := stubSource{txns: []model.Transaction{{
		ID:       "1",
		Date:     "2024-03-02",
		Amount:   decimal.NewFromInt(-500),
		Category: model.Category{ID: "pets"},
	}}}
	cat := catalog.NewService([]model.Category{{ID: "pets", Title: "Pets", Color: "#A78BFA"}})

	var totals []chartSlice
	code := get(t, newTestServer(t, src, WithCatalog(cat)), "/categories", &totals)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []chartSlice{{ID: "pets", Label: "Pets", Value: 500, Color: "#A78BFA"}}, totals)
}

func TestEvolution(t *testing.T) {
	var points []struct {
		Title   string  `json:"title"`
		Income  float64 `json:"income"`
		Expense float64 `json:"expense"`
		Net     float64 `json:"net"`
	}
	code := get(t, newTestServer(t, fileSource()), "/evolution", &points)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, points, 2)

	assert.Equal(t, "January 2024", points[0].Title)
	assert.Equal(t, float64(5000), points[0].Income)
	assert.Equal(t, float64(10000), points[0].Expense)
	assert.Equal(t, float64(-5000), points[0].Net)

	assert.Equal(t, "March 2024", points[1].Title)
	assert.Equal(t, float64(3000), points[1].Expense)
}

func TestEvolution_Year(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t, fileSource()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/evolution?year=2023", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	code := get(t, newTestServer(t, fileSource()), "/evolution?year=last", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGoals(t *testing.T) {
	var goals []struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		Progress  float64 `json:"progress"`
		Completed bool    `json:"completed"`
	}
	code := get(t, newTestServer(t, fileSource()), "/goals", &goals)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, goals, 2)

	assert.Equal(t, "Viagem", goals[0].Name)
	assert.Equal(t, float64(25), goals[0].Progress)
	assert.False(t, goals[0].Completed)
	assert.True(t, goals[1].Completed)
}

func TestUpstreamError(t *testing.T) {
	h := newTestServer(t, failingSource{})
	for _, path := range []string{"/sections", "/categories", "/evolution", "/goals"} {
		var body errorResponse
		code := get(t, h, path, &body)
		assert.Equal(t, http.StatusBadGateway, code, path)
		assert.Equal(t, "upstream unavailable", body.Error, path)
	}
}

type stubSource struct {
	txns  []model.Transaction
	goals []model.Goal
}

func (s stubSource) Transactions(context.Context) ([]model.Transaction, error) { return s.txns, nil }
func (s stubSource) Goals(context.Context) ([]model.Goal, error)               { return s.goals, nil }

func TestDashboard(t *testing.T) {
	var d struct {
		Period     string       `json:"period"`
		Title      string       `json:"title"`
		Categories []chartSlice `json:"categories"`
		Evolution  []struct {
			Month int `json:"month"`
		} `json:"evolution"`
		Goals []struct {
			ID string `json:"id"`
		} `json:"goals"`
	}
	code := get(t, newTestServer(t, fileSource()), "/dashboard?period=2024-01", &d)
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, "2024-01", d.Period)
	assert.Equal(t, "January 2024", d.Title)
	assert.Equal(t, []chartSlice{{ID: "food", Label: "Alimentação", Value: 10000, Color: "#F87171"}}, d.Categories)
	require.Len(t, d.Evolution, 2)
	assert.Equal(t, 0, d.Evolution[0].Month)
	assert.Equal(t, 2, d.Evolution[1].Month)
	assert.Len(t, d.Goals, 2)
}

func TestDashboard_UpstreamError(t *testing.T) {
	code := get(t, newTestServer(t, failingSource{}), "/dashboard", nil)
	assert.Equal(t, http.StatusBadGateway, code)
}

func TestDashboard_BadPeriod(t *testing.T) {
	code := get(t, newTestServer(t, fileSource()), "/dashboard?period=january", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
