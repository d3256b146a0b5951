package handler

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"psutier/internal/fileio"
	"psutier/internal/tier/batch"
	"psutier/internal/validation"
)

type batchParams struct {
	NameColumn    string `validate:"max=256"`
	WattageColumn string `validate:"max=256"`
	HeaderRow     int    `validate:"gte=1,lte=1000"`
	Format        string `validate:"oneof=json csv xlsx"`
	InferWattage  bool
}

func parseBatchParams(r *http.Request) batchParams {
	return batchParams{
		NameColumn:    strings.TrimSpace(r.FormValue("name_col")),
		WattageColumn: strings.TrimSpace(r.FormValue("wattage_col")),
		HeaderRow:     atoi(r.FormValue("header_row"), 1),
		Format:        strings.ToLower(orDefault(r.FormValue("format"), "json")),
		InferWattage:  toBool(r.FormValue("infer_wattage"), true),
	}
}

// Batch: POST /resolve/batch, multipart с полем file.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := h.log(r)

	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes()); err != nil {
		writeError(w, r, statusFor(err), "bad multipart form: "+err.Error())
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	p := parseBatchParams(r)
	if err := validation.Struct(p); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "missing file: "+err.Error())
		return
	}
	defer file.Close()

	sheet, err := fileio.ReadAny(file, hdr.Filename, p.HeaderRow)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	rows, mapping, err := batch.Rows(sheet, batch.Options{
		NameColumn:    p.NameColumn,
		WattageColumn: p.WattageColumn,
		InferWattage:  p.InferWattage,
	})
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res, _ := h.resolver()
	out, err := batch.Run(r.Context(), res, rows, h.cfg.BatchWorkers)
	if err != nil {
		log.Warn().Err(err).Msg("batch aborted")
		writeError(w, r, http.StatusServiceUnavailable, "batch aborted: "+err.Error())
		return
	}
	out.Mapping = mapping

	log.Info().
		Str("file", hdr.Filename).
		Str("name_col", mapping.NameKey).
		Str("wattage_col", mapping.WattageKey).
		Int("rows", out.Total).
		Int("matched", out.Matched).
		Dur("elapsed", time.Since(start)).
		Msg("batch done")

	base := strings.TrimSuffix(filepath.Base(hdr.Filename), filepath.Ext(hdr.Filename))
	switch p.Format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", attachment(base+"_tiers.csv"))
		if err := fileio.WriteCSV(w, out.Rows); err != nil {
			log.Error().Err(err).Msg("write csv")
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", attachment(base+"_tiers.xlsx"))
		if err := fileio.WriteXLSX(w, out.Rows); err != nil {
			log.Error().Err(err).Msg("write xlsx")
		}
	default:
		writeJSON(w, http.StatusOK, out)
	}
}
