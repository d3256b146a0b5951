package serverhttp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psutier/internal/config"
	"psutier/internal/reftable"
	"psutier/internal/tier/model"
	"psutier/internal/tier/service"
)

func testRouter(t *testing.T, cfg config.Config) http.Handler {
	t.Helper()
	tbl := service.NewTable(map[string][]model.SeriesEntry{
		"corsair": {{MatchSeries: "RMx 2021", Tier: "A", Wattage: "550/650/750/850/1000W"}},
	}, "test")
	return NewRouter(cfg, zerolog.Nop(), reftable.NewStatic(tbl))
}

func TestRouter_Health(t *testing.T) {
	r := testRouter(t, config.Config{AllowOrigins: []string{"*"}, MaxUploadMB: 1})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","tableVersion":"test","entries":1}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouter_HealthWithoutTable(t *testing.T) {
	r := NewRouter(config.Config{AllowOrigins: []string{"*"}, MaxUploadMB: 1}, zerolog.Nop(), reftable.NewStatic(nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_ResolveBothMethods(t *testing.T) {
	r := testRouter(t, config.Config{AllowOrigins: []string{"*"}, MaxUploadMB: 1})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/resolve?name=Corsair+RM850x&wattage=850", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"found": true`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/resolve", strings.NewReader(`{"name":"Corsair RM850x","wattage":850}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tier": "A"`)
}

func TestRouter_CORS(t *testing.T) {
	r := testRouter(t, config.Config{AllowOrigins: []string{"https://shop.example"}, MaxUploadMB: 1})

	req := httptest.NewRequest(http.MethodOptions, "/resolve", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RequestSizeLimit(t *testing.T) {
	r := testRouter(t, config.Config{AllowOrigins: []string{"*"}, MaxUploadMB: 1})

	body := `{"name":"` + strings.Repeat("x", 2<<20) + `"}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/resolve", strings.NewReader(body)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRouter_Metrics(t *testing.T) {
	r := testRouter(t, config.Config{AllowOrigins: []string{"*"}, MaxUploadMB: 1})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/resolve?name=Corsair+RM850x", nil))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "psutier_resolver_resolutions_total")
	assert.Contains(t, rec.Body.String(), "psutier_http_requests_total")
}
