package service

import (
	"strconv"
	"strings"

	"psutier/internal/tier/model"
)

// strategy: одна попытка найти серию в очищенном имени.
type strategy struct {
	name  model.Strategy
	match func(series, cleanName string) bool
}

// Порядок важен: от самого строгого к самому мягкому, первый успех побеждает.
var strategies = []strategy{
	{model.StrategyStrict, matchStrict},
	{model.StrategyTokenized, matchTokenized},
	{model.StrategyFallback, matchFallback},
}

// (1) Строгое: нормализованная серия целиком входит в имя.
func matchStrict(series, cleanName string) bool {
	n := Normalize(series)
	return n != "" && strings.Contains(cleanName, n)
}

// (2) Токены в любом порядке: "MWE V2 Gold" ~ "MWE Gold 850 V2".
func matchTokenized(series, cleanName string) bool {
	tokens := seriesTokens(series)
	if len(tokens) < 2 {
		return false
	}
	for _, t := range tokens {
		if !strings.Contains(cleanName, t) {
			return false
		}
	}
	return true
}

// (3) Без слова эффективности: магазин часто его опускает.
func matchFallback(series, cleanName string) bool {
	bare := stripEfficiencyNorm(Normalize(series))
	return len(bare) > 2 && strings.Contains(cleanName, bare)
}

// firstStrategy: первая сработавшая стратегия или "".
func firstStrategy(series, cleanName string) model.Strategy {
	for _, s := range strategies {
		if s.match(series, cleanName) {
			return s.name
		}
	}
	return ""
}

// gate: валидаторы кандидата; пустой результат = кандидат принят.
// name: имя после правил (в нём уже развёрнуты "850G" → "850 Gold" и т.п.).
func gate(e model.SeriesEntry, name string, wattage int) model.Rejection {
	if !CheckWattage(e.Wattage, wattage) {
		return model.RejectWattage
	}
	if !CheckEfficiency(e.Efficiency, name) {
		return model.RejectEfficiency
	}
	if CheckSignificantMismatch(e.MatchSeries, name) {
		return model.RejectModelCode
	}
	return ""
}

// cleanName: имя без ключа бренда и без цифр мощности ("850w", иначе "850").
func cleanName(norm, brand string, wattage int) string {
	out := strings.Replace(norm, brand, "", 1)
	if wattage > 0 {
		w := strconv.Itoa(wattage)
		if strings.Contains(out, w+"w") {
			out = strings.Replace(out, w+"w", "", 1)
		} else {
			out = strings.Replace(out, w, "", 1)
		}
	}
	return out
}
