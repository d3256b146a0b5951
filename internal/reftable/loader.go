// Package reftable загружает справочник тиров с диска и держит текущий
// снимок для резолвера с горячей перезагрузкой.
package reftable

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"psutier/internal/tier/model"
	"psutier/internal/tier/service"
	"psutier/internal/validation"
)

var ErrNoEntries = errors.New("reference table has no valid entries")

// LoadReport: что было отброшено при загрузке.
type LoadReport struct {
	Brands  int
	Entries int
	Skipped int
}

// Load читает JSON-справочник {brand: [entry...]} и строит неизменяемую таблицу.
// Невалидные строки пропускаются с предупреждением; файл без единой валидной
// строки — ошибка.
func Load(fs afero.Fs, path string) (*service.Table, LoadReport, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse: Load без файловой системы.
func Parse(raw []byte) (*service.Table, LoadReport, error) {
	var doc map[string][]model.SeriesEntry
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, LoadReport{}, fmt.Errorf("decode table: %w", err)
	}

	var rep LoadReport
	brands := make(map[string][]model.SeriesEntry, len(doc))
	for brand, list := range doc {
		if service.Normalize(brand) == "" {
			log.Warn().Str("brand", brand).Int("entries", len(list)).Msg("table: brand key normalizes to empty, skipped")
			rep.Skipped += len(list)
			continue
		}
		for i, e := range list {
			if err := validation.Struct(e); err != nil {
				log.Warn().Str("brand", brand).Int("idx", i).Str("matchSeries", e.MatchSeries).Err(err).Msg("table: invalid entry skipped")
				rep.Skipped++
				continue
			}
			brands[brand] = append(brands[brand], e)
		}
	}

	t := service.NewTable(brands, contentVersion(raw))
	if t.EntryCount() == 0 {
		return nil, rep, ErrNoEntries
	}
	rep.Brands = t.BrandCount()
	rep.Entries = t.EntryCount()
	return t, rep, nil
}

// contentVersion: короткий sha256 содержимого; одинаковый файл = одинаковая версия.
func contentVersion(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])[:12]
}
