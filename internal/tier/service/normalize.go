package service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize: каноническая свёртка: нижний регистр, остаются только [a-z0-9].
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	b := make([]byte, 0, len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b = append(b, byte(r))
		}
	}
	return string(b)
}

// NFKD + удаление диакритики: "Revolución" → "Revolucion", "８５０Ｗ" → "850W".
var foldChain = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldText готовит сырое имя к правилам: совместимые формы и диакритика
// сворачиваются, разделители схлопываются в одиночные пробелы.
func foldText(s string) string {
	out, _, err := transform.String(foldChain, s)
	if err != nil {
		out = s
	}
	return collapseSpaces(out)
}

// Схлопывание пробелов
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Слова сертификата 80+ для расчёта «эффективной длины» (на сыром matchSeries).
var reEfficiencyWords = regexp.MustCompile(`(?i)80\s*\+|white|standard|bronze|silver|gold|platinum|titanium`)

// То же, но для уже нормализованной строки ("80+" там не отличить от цифр).
var reEfficiencyNorm = regexp.MustCompile(`white|standard|bronze|silver|gold|platinum|titanium`)

// effectiveLength: длина серии без слов эффективности после нормализации.
func effectiveLength(series string) int {
	return len(Normalize(reEfficiencyWords.ReplaceAllString(series, " ")))
}

// stripEfficiencyNorm убирает слова эффективности из нормализованной строки.
func stripEfficiencyNorm(norm string) string {
	return reEfficiencyNorm.ReplaceAllString(norm, "")
}

// Шумовые токены: в названиях у ритейлеров их обычно нет.
var noiseTokens = map[string]struct{}{
	"modular": {}, "non": {}, "full": {}, "mod": {}, "semi": {}, "series": {},
}

var reTokenSplit = regexp.MustCompile(`[\s\-/]+`)

// seriesTokens: "MWE V2 Gold Full Mod." → [mwe v2 gold]
func seriesTokens(series string) []string {
	parts := reTokenSplit.Split(strings.ToLower(series), -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := Normalize(p)
		if t == "" {
			continue
		}
		if _, noisy := noiseTokens[t]; noisy {
			continue
		}
		out = append(out, t)
	}
	return out
}
