package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"psutier/internal/metrics"
	"psutier/internal/tier/model"
	"psutier/internal/utils"
	"psutier/internal/validation"
)

type ResolveRequest struct {
	Name    string `json:"name" validate:"notblank,max=512"`
	Wattage int    `json:"wattage" validate:"gte=0,lte=100000"`
}

type ResolveResponse struct {
	Found        bool               `json:"found"`
	Tier         string             `json:"tier,omitempty"`
	Brand        string             `json:"brand,omitempty"`
	MatchSeries  string             `json:"matchSeries,omitempty"`
	Strategy     model.Strategy     `json:"strategy,omitempty"`
	Outcome      model.Outcome      `json:"outcome"`
	CleanName    string             `json:"cleanName,omitempty"`
	Entry        *model.SeriesEntry `json:"entry,omitempty"`
	TableVersion string             `json:"tableVersion"`
}

// decodeResolve: POST с JSON-телом или GET с ?name=&wattage=.
func decodeResolve(r *http.Request) (ResolveRequest, int, string) {
	var req ResolveRequest
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		req.Name = q.Get("name")
		if ws := strings.TrimSpace(q.Get("wattage")); ws != "" {
			w, ok := utils.ParseWattage(ws)
			if !ok {
				return req, http.StatusBadRequest, "bad wattage: " + ws
			}
			req.Wattage = w
		}
	} else {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return req, statusFor(err), "bad json: " + err.Error()
		}
	}
	if err := validation.Struct(req); err != nil {
		return req, http.StatusUnprocessableEntity, err.Error()
	}
	return req, 0, ""
}

// Resolve: POST /resolve и GET /resolve.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	req, status, msg := decodeResolve(r)
	if status != 0 {
		writeError(w, r, status, msg)
		return
	}

	res, t := h.resolver()
	m, ok := res.Resolve(req.Name, req.Wattage)
	metrics.ObserveResolution(string(m.Outcome), string(m.Strategy))

	out := ResolveResponse{
		Found:     ok,
		Brand:     m.Brand,
		Outcome:   m.Outcome,
		CleanName: m.CleanName,
	}
	if t != nil {
		out.TableVersion = t.Version()
	}
	if ok {
		e := m.Entry
		out.Tier = e.Tier
		out.MatchSeries = e.MatchSeries
		out.Strategy = m.Strategy
		out.Entry = &e
	}

	log := h.log(r)
	log.Debug().
		Str("name", req.Name).
		Int("wattage", req.Wattage).
		Str("outcome", string(m.Outcome)).
		Str("tier", out.Tier).
		Msg("resolve")
	writeJSON(w, http.StatusOK, out)
}

// Explain: POST /explain — пошаговый разбор.
func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	req, status, msg := decodeResolve(r)
	if status != 0 {
		writeError(w, r, status, msg)
		return
	}
	res, t := h.resolver()
	tr := res.Explain(req.Name, req.Wattage)

	type explainResponse struct {
		model.Trace
		TableVersion string `json:"tableVersion"`
	}
	out := explainResponse{Trace: tr}
	if t != nil {
		out.TableVersion = t.Version()
	}
	writeJSON(w, http.StatusOK, out)
}
