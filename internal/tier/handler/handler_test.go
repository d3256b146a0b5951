package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"

	"psutier/internal/config"
	"psutier/internal/reftable"
	"psutier/internal/tier/model"
)

const tableJSON = `{
  "corsair": [
    {"matchSeries": "RMx 2021", "tier": "A", "wattage": "550/650/750/850/1000W", "efficiency": "80+ Gold", "brand": "Corsair"}
  ],
  "thermaltake": [
    {"matchSeries": "Toughpower", "tier": "C", "wattage": "All PSUs"},
    {"matchSeries": "Toughpower GF1", "tier": "B", "wattage": "650-1000W", "efficiency": "80+ Gold"}
  ]
}`

func newTestRouter(t *testing.T) (*chi.Mux, afero.Fs, *reftable.Store) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/t.json", []byte(tableJSON), 0o644))
	store, err := reftable.Open(fs, "/t.json", zerolog.Nop())
	require.NoError(t, err)

	cfg := config.Config{MaxUploadMB: 1, BatchWorkers: 2}
	h := New(store, cfg, zerolog.Nop())
	r := chi.NewRouter()
	r.Get("/resolve", h.Resolve)
	r.Post("/resolve", h.Resolve)
	r.Post("/resolve/batch", h.Batch)
	r.Post("/explain", h.Explain)
	r.Get("/table", h.TableStatus)
	r.Post("/table/reload", h.Reload)
	return r, fs, store
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestResolve_POST(t *testing.T) {
	r, _, store := newTestRouter(t)

	rec := do(t, r, postJSON("/resolve", `{"name": "Corsair RM850x (2018)", "wattage": 850}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out ResolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Found)
	assert.Equal(t, "A", out.Tier)
	assert.Equal(t, "RMx 2021", out.MatchSeries)
	assert.Equal(t, model.StrategyStrict, out.Strategy)
	assert.Equal(t, model.OutcomeMatched, out.Outcome)
	require.NotNil(t, out.Entry)
	assert.Equal(t, "Corsair", out.Entry.Brand)
	assert.Equal(t, store.Snapshot().Version(), out.TableVersion)
}

func TestResolve_NotFound(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := do(t, r, postJSON("/resolve", `{"name": "Thermaltake Toughpower GT", "wattage": 750}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var out ResolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.False(t, out.Found)
	assert.Equal(t, model.OutcomeNoSeries, out.Outcome)
	assert.Equal(t, "thermaltake", out.Brand)
	assert.Empty(t, out.Tier)
	assert.Nil(t, out.Entry)
}

func TestResolve_GET(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := do(t, r, httptest.NewRequest(http.MethodGet, "/resolve?name=Thermaltake+Toughpower+GF1&wattage=850W", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tier": "B"`)

	rec = do(t, r, httptest.NewRequest(http.MethodGet, "/resolve?name=x&wattage=lots", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolve_BadRequests(t *testing.T) {
	r, _, _ := newTestRouter(t)

	tests := []struct {
		body   string
		status int
	}{
		{`{"name": "  "}`, http.StatusUnprocessableEntity},
		{`{"name": "Corsair", "wattage": -5}`, http.StatusUnprocessableEntity},
		{`{"name": "Corsair", "extra": 1}`, http.StatusBadRequest},
		{`not json`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := do(t, r, postJSON("/resolve", tt.body))
		assert.Equal(t, tt.status, rec.Code, tt.body)
		assert.Contains(t, rec.Body.String(), `"error"`, tt.body)
	}
}

func TestExplain(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := do(t, r, postJSON("/explain", `{"name": "Thermaltake Toughpower GT", "wattage": 750}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		model.Trace
		TableVersion string `json:"tableVersion"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "toughpowergt", out.CleanName)
	assert.Equal(t, model.OutcomeNoSeries, out.Outcome)
	assert.NotEmpty(t, out.Attempts)
	assert.NotEmpty(t, out.TableVersion)
}

func multipartBody(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func batchRequest(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	body, ct := multipartBody(t, filename, content, fields)
	req := httptest.NewRequest(http.MethodPost, "/resolve/batch", body)
	req.Header.Set("Content-Type", ct)
	return req
}

const priceCSV = "Product;Power\n" +
	"Corsair RM850x (2018);850 W\n" +
	"Thermaltake Toughpower GT;750W\n" +
	"Unknown PSU 500W;\n"

func TestBatch_JSON(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := do(t, r, batchRequest(t, "price.csv", []byte(priceCSV), nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out model.BatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Rows, 3)
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, 1, out.Matched)
	assert.Equal(t, "A", out.Rows[0].Tier)
	assert.Equal(t, 2, out.Rows[0].Line)
	assert.Equal(t, "no_series", out.Rows[1].Outcome)
	assert.Equal(t, 500, out.Rows[2].Wattage)
	assert.Equal(t, "Product", out.Mapping.NameKey)
	assert.Equal(t, "Power", out.Mapping.WattageKey)
}

func TestBatch_CSVOutput(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := do(t, r, batchRequest(t, "price.csv", []byte(priceCSV), map[string]string{"format": "csv"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "price_tiers.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "line,name,wattage,tier"))
}

func TestBatch_XLSXRoundTrip(t *testing.T) {
	r, _, _ := newTestRouter(t)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Наименование", "Мощность"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Thermaltake Toughpower GF1", 850}))
	var in bytes.Buffer
	require.NoError(t, f.Write(&in))
	require.NoError(t, f.Close())

	rec := do(t, r, batchRequest(t, "items.xlsx", in.Bytes(), map[string]string{"format": "xlsx"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	out, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer out.Close()
	rows, err := out.GetRows(out.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[1][3])
}

func TestBatch_Errors(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := do(t, r, batchRequest(t, "price.pdf", []byte("x"), nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, batchRequest(t, "price.csv", []byte("sku;price\n1;2\n"), nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, r, batchRequest(t, "price.csv", []byte(priceCSV), map[string]string{"format": "pdf"}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/resolve/batch", strings.NewReader("plain"))
	req.Header.Set("Content-Type", "text/plain")
	rec = do(t, r, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTableStatusAndReload(t *testing.T) {
	r, fs, store := newTestRouter(t)
	before := store.Snapshot().Version()

	rec := do(t, r, httptest.NewRequest(http.MethodGet, "/table?brands=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var st struct {
		Version   string `json:"version"`
		Entries   int    `json:"entries"`
		BrandList []struct {
			Brand   string `json:"brand"`
			Entries int    `json:"entries"`
		} `json:"brand_list"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, before, st.Version)
	assert.Equal(t, 3, st.Entries)
	require.Len(t, st.BrandList, 2)
	assert.Equal(t, "corsair", st.BrandList[0].Brand)

	require.NoError(t, afero.WriteFile(fs, "/t.json", []byte(`{"corsair": [`), 0o644))
	rec = do(t, r, httptest.NewRequest(http.MethodPost, "/table/reload", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, before, store.Snapshot().Version())

	require.NoError(t, afero.WriteFile(fs, "/t.json", []byte(`{"nzxt": [{"matchSeries": "C Series Bronze", "tier": "D"}]}`), 0o644))
	rec = do(t, r, httptest.NewRequest(http.MethodPost, "/table/reload", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `"entries": 1`)
	assert.NotEqual(t, before, store.Snapshot().Version())
}
