package handlers

import (
	"encoding/json"
	"net/http"

	"psutier/internal/tier/service"
)

type healthResponse struct {
	Status       string `json:"status"`
	TableVersion string `json:"tableVersion,omitempty"`
	Entries      int    `json:"entries"`
}

// Health — liveness; 503 пока справочник не загружен.
func Health(src service.Snapshotter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := healthResponse{Status: "ok"}
		status := http.StatusOK
		if t := src.Snapshot(); t != nil {
			out.TableVersion = t.Version()
			out.Entries = t.EntryCount()
		} else {
			out.Status = "no table"
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(out)
	}
}
