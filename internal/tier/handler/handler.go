package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"psutier/internal/config"
	"psutier/internal/middleware"
	"psutier/internal/reftable"
	"psutier/internal/tier/service"
)

// Handler: HTTP-обработчики резолвера. Каждый запрос работает с одним
// снимком справочника, даже если параллельно идёт перезагрузка.
type Handler struct {
	store  *reftable.Store
	cfg    config.Config
	logger zerolog.Logger
}

func New(store *reftable.Store, cfg config.Config, logger zerolog.Logger) *Handler {
	return &Handler{store: store, cfg: cfg, logger: logger}
}

// resolver: резолвер поверх зафиксированного снимка.
func (h *Handler) resolver() (*service.Resolver, *service.Table) {
	t := h.store.Snapshot()
	return service.NewResolver(t, nil), t
}

func (h *Handler) log(r *http.Request) zerolog.Logger {
	return h.logger.With().Str("rid", middleware.GetRequestID(r)).Logger()
}

type errorResponse struct {
	Error string `json:"error"`
	RID   string `json:"rid,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RID: middleware.GetRequestID(r)})
}

// statusFor: 413 для превышения лимита тела, иначе 400.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
