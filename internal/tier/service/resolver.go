package service

import "psutier/internal/tier/model"

// Snapshotter отдаёт текущий справочник. *Table и reftable.Store его реализуют.
type Snapshotter interface {
	Snapshot() *Table
}

// Resolver: разрешение «имя + мощность → строка справочника».
// Чистое вычисление без записи, безопасно для параллельных вызовов.
type Resolver struct {
	src   Snapshotter
	rules []Rule
}

// NewResolver: rules == nil означает DefaultRules.
func NewResolver(src Snapshotter, rules []Rule) *Resolver {
	if rules == nil {
		rules = DefaultRules
	}
	return &Resolver{src: src, rules: rules}
}

// Resolve возвращает первую строку справочника, прошедшую стратегии и валидаторы.
// ok == false — нормальный исход (неизвестный бренд или серия), Match.Outcome
// говорит, какой именно.
func (r *Resolver) Resolve(name string, wattage int) (model.Match, bool) {
	return r.run(r.table(), name, wattage, nil)
}

// Explain: то же, что Resolve, но с пошаговой трассировкой.
func (r *Resolver) Explain(name string, wattage int) model.Trace {
	t := r.table()
	tr := &model.Trace{Input: name, Wattage: wattage}
	m, ok := r.run(t, name, wattage, tr)
	tr.Outcome = m.Outcome
	if ok {
		tr.Match = &m
	} else if m.Brand != "" {
		tr.Suggestions = suggest(t.Candidates(m.Brand), m.CleanName, maxSuggestions)
	}
	return *tr
}

// Table: снимок, с которым сейчас работает резолвер.
func (r *Resolver) Table() *Table { return r.table() }

func (r *Resolver) table() *Table {
	if r == nil || r.src == nil {
		return nil
	}
	return r.src.Snapshot()
}

// run: общий конвейер; tr == nil означает «без трассировки».
func (r *Resolver) run(t *Table, name string, wattage int, tr *model.Trace) (model.Match, bool) {
	if wattage < 0 {
		wattage = 0
	}

	// 1) Свёртка юникода и правила
	folded := foldText(name)
	rewritten, fired := Rewrite(r.rules, folded)

	// 2) Нормализация и бренд
	norm := Normalize(rewritten)
	if tr != nil {
		tr.Folded = folded
		tr.Rewritten = rewritten
		tr.RulesFired = fired
		tr.Normalized = norm
	}
	brand, ok := t.ResolveBrand(norm)
	if !ok {
		return model.Match{Outcome: model.OutcomeUnknownBrand}, false
	}

	// 3) Очищенное имя
	clean := cleanName(norm, brand, wattage)
	if tr != nil {
		tr.Brand = brand
		tr.CleanName = clean
	}

	// 4) Кандидаты уже отсортированы по специфичности
	for _, e := range t.Candidates(brand) {
		s := firstStrategy(e.MatchSeries, clean)
		var rej model.Rejection
		if s != "" {
			rej = gate(e, rewritten, wattage)
		}
		if tr != nil {
			tr.Attempts = append(tr.Attempts, model.Attempt{
				MatchSeries: e.MatchSeries,
				Tier:        e.Tier,
				Strategy:    s,
				Rejected:    rej,
			})
		}
		if s != "" && rej == "" {
			return model.Match{
				Entry:     e,
				Brand:     brand,
				Strategy:  s,
				CleanName: clean,
				Outcome:   model.OutcomeMatched,
			}, true
		}
	}
	return model.Match{Brand: brand, CleanName: clean, Outcome: model.OutcomeNoSeries}, false
}
