// Package batch разрешает тиры для целого прайса: сопоставление колонок,
// разбор мощности и параллельный прогон резолвера с сохранением порядка строк.
package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"psutier/internal/fileio"
	"psutier/internal/metrics"
	"psutier/internal/tier/model"
	"psutier/internal/tier/service"
	"psutier/internal/utils"
)

var ErrNoNameColumn = errors.New("name column not found")

// Options — как читать лист.
type Options struct {
	NameColumn    string // "" = DefaultNameColumns
	WattageColumn string // "" = DefaultWattageColumns; "-" = колонки нет
	// InferWattage: если колонки мощности нет или ячейка пустая, взять "NNNW" из имени.
	InferWattage bool
}

// Rows превращает лист в строки продуктов.
func Rows(sh *fileio.Sheet, opt Options) ([]model.ProductRow, model.BatchMapping, error) {
	nameWant := opt.NameColumn
	if nameWant == "" {
		nameWant = DefaultNameColumns
	}
	wattWant := opt.WattageColumn
	if wattWant == "" {
		wattWant = DefaultWattageColumns
	}

	m := model.BatchMapping{HeaderRow: sh.HeaderRow}
	m.NameKey = resolveColumn(sh.Headers, nameWant)
	if m.NameKey == "" {
		return nil, m, fmt.Errorf("%w: want %q, have %s", ErrNoNameColumn, nameWant, strings.Join(sh.Headers, ", "))
	}
	if wattWant != "-" {
		m.WattageKey = resolveColumn(sh.Headers, wattWant)
		if m.WattageKey == m.NameKey {
			m.WattageKey = ""
		}
	}

	rows := make([]model.ProductRow, 0, len(sh.Records))
	for _, rec := range sh.Records {
		if looksLikeHeader(rec.Values, m.NameKey, m.WattageKey) {
			continue
		}
		name := strings.TrimSpace(rec.Values[m.NameKey])
		if name == "" {
			continue
		}
		var w int
		if m.WattageKey != "" {
			w, _ = utils.ParseWattage(rec.Values[m.WattageKey])
		}
		if w == 0 && opt.InferWattage {
			w, _ = utils.WattageFromName(name)
		}
		rows = append(rows, model.ProductRow{Line: rec.Line, Name: name, Wattage: w})
	}
	return rows, m, nil
}

// Run прогоняет строки через резолвер пулом из workers горутин.
// Порядок результата совпадает с порядком rows. Отмена ctx прерывает прогон.
func Run(ctx context.Context, r *service.Resolver, rows []model.ProductRow, workers int) (model.BatchResult, error) {
	start := time.Now()
	defer func() { metrics.BatchDuration.Observe(time.Since(start).Seconds()) }()

	if workers <= 0 {
		workers = 1
	}
	out := make([]model.BatchRow, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range rows {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = resolveRow(r, rows[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.BatchResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.BatchResult{}, err
	}

	res := model.BatchResult{
		Rows:  out,
		Total: len(out),
		Stats: make(map[string]int, 3),
	}
	if t := r.Table(); t != nil {
		res.Table = t.Version()
	}
	for _, row := range out {
		res.Stats[row.Outcome]++
		if row.Outcome == string(model.OutcomeMatched) {
			res.Matched++
		}
		metrics.BatchRows.WithLabelValues(row.Outcome).Inc()
	}
	return res, nil
}

func resolveRow(r *service.Resolver, p model.ProductRow) model.BatchRow {
	m, _ := r.Resolve(p.Name, p.Wattage)
	metrics.ObserveResolution(string(m.Outcome), string(m.Strategy))
	return model.BatchRow{
		Line:       p.Line,
		Name:       p.Name,
		Wattage:    p.Wattage,
		Tier:       m.Entry.Tier,
		Brand:      m.Brand,
		Series:     m.Entry.MatchSeries,
		Efficiency: m.Entry.Efficiency,
		Strategy:   string(m.Strategy),
		Outcome:    string(m.Outcome),
	}
}
