package handler

import (
	"net/http"

	"psutier/internal/middleware"
	"psutier/internal/reftable"
)

type brandCount struct {
	Brand   string `json:"brand"`
	Entries int    `json:"entries"`
}

type tableResponse struct {
	reftable.Status
	BrandList []brandCount `json:"brand_list,omitempty"`
}

// TableStatus: GET /table. ?brands=1 добавляет список брендов.
func (h *Handler) TableStatus(w http.ResponseWriter, r *http.Request) {
	out := tableResponse{Status: h.store.Status()}
	if t := h.store.Snapshot(); t != nil && toBool(r.URL.Query().Get("brands"), false) {
		for _, b := range t.Brands() {
			out.BrandList = append(out.BrandList, brandCount{Brand: b, Entries: len(t.Candidates(b))})
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// Reload: POST /table/reload. Невалидный файл — 422, старая таблица остаётся.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Reload(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, struct {
			errorResponse
			Status reftable.Status `json:"status"`
		}{errorResponse{Error: err.Error(), RID: middleware.GetRequestID(r)}, h.store.Status()})
		return
	}
	log := h.log(r)
	log.Info().Msg("table reloaded via api")
	writeJSON(w, http.StatusOK, h.store.Status())
}
