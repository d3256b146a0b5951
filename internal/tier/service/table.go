package service

import (
	"sort"
	"strings"

	"psutier/internal/tier/model"
)

// NoiseBrandKey встречается внутри множества названий и брендом не считается.
const NoiseBrandKey = "gaming"

// Table: неизменяемый справочник: ключ бренда → кандидаты, уже отсортированные
// по специфичности. После NewTable не меняется, поэтому читается без блокировок.
type Table struct {
	brands  map[string][]model.SeriesEntry
	keys    []string // отсортированы, для детерминированного выбора бренда
	entries int
	version string
}

// NewTable копирует данные и ранжирует кандидатов каждого бренда.
func NewTable(brands map[string][]model.SeriesEntry, version string) *Table {
	t := &Table{
		brands:  make(map[string][]model.SeriesEntry, len(brands)),
		keys:    make([]string, 0, len(brands)),
		version: version,
	}
	raw := make([]string, 0, len(brands))
	for k := range brands {
		raw = append(raw, k)
	}
	sort.Strings(raw)
	for _, k := range raw {
		nk := Normalize(k)
		if nk == "" {
			continue
		}
		t.brands[nk] = append(t.brands[nk], brands[k]...)
	}
	for k, list := range t.brands {
		ranked := make([]model.SeriesEntry, len(list))
		copy(ranked, list)
		rankCandidates(ranked)
		t.brands[k] = ranked
		t.keys = append(t.keys, k)
		t.entries += len(ranked)
	}
	sort.Strings(t.keys)
	return t
}

// Snapshot позволяет передавать *Table туда, где ждут Snapshotter.
func (t *Table) Snapshot() *Table { return t }

func (t *Table) Version() string  { return t.version }
func (t *Table) Brands() []string { return append([]string(nil), t.keys...) }
func (t *Table) BrandCount() int  { return len(t.keys) }
func (t *Table) EntryCount() int  { return t.entries }

// Candidates: кандидаты бренда в порядке ранжирования. Срез не изменять.
func (t *Table) Candidates(brand string) []model.SeriesEntry {
	if t == nil {
		return nil
	}
	return t.brands[brand]
}

// ResolveBrand: самый длинный ключ бренда, входящий в нормализованное имя.
// При равной длине побеждает первый по алфавиту.
func (t *Table) ResolveBrand(norm string) (string, bool) {
	if t == nil || norm == "" {
		return "", false
	}
	best := ""
	for _, k := range t.keys {
		if k == NoiseBrandKey {
			continue
		}
		if len(k) > len(best) && strings.Contains(norm, k) {
			best = k
		}
	}
	return best, best != ""
}

// rankCandidates: сначала длиннее «эффективная» длина, затем длиннее сырой
// matchSeries; полные ничьи сохраняют порядок справочника.
func rankCandidates(list []model.SeriesEntry) {
	eff := make(map[string]int, len(list))
	for _, e := range list {
		if _, ok := eff[e.MatchSeries]; !ok {
			eff[e.MatchSeries] = effectiveLength(e.MatchSeries)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		ei, ej := eff[list[i].MatchSeries], eff[list[j].MatchSeries]
		if ei != ej {
			return ei > ej
		}
		return len(list[i].MatchSeries) > len(list[j].MatchSeries)
	})
}
