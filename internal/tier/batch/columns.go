package batch

import (
	"regexp"
	"strings"
)

// Имена колонок по умолчанию; альтернативы через "|".
const (
	DefaultNameColumns    = "name|product|product name|title|model|наименование|товар|номенклатура"
	DefaultWattageColumns = "wattage|watt|power|output|мощность"
)

var rxHeaderJunk = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// normHeaderKey: нижний регистр, без служебных символов и лишних пробелов, ё→е.
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "ё", "е").Replace(s)
	s = rxHeaderJunk.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveColumn ищет реальный заголовок по желаемому имени.
// Порядок: точное совпадение, нормализованное, затем вхождение
// (побеждает самое длинное совпавшее имя, при равенстве левая колонка).
func resolveColumn(headers []string, want string) string {
	want = strings.TrimSpace(want)
	if want == "" || len(headers) == 0 {
		return ""
	}
	alts := strings.Split(want, "|")
	norm := make([]string, 0, len(alts))
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
		if n := normHeaderKey(alts[i]); n != "" {
			norm = append(norm, n)
		}
	}

	// 1) как есть
	for _, a := range alts {
		for _, h := range headers {
			if h == a {
				return h
			}
		}
	}
	// 2) нормализованное точное
	for _, n := range norm {
		for _, h := range headers {
			if normHeaderKey(h) == n {
				return h
			}
		}
	}
	// 3) вхождение: "product name (en)" содержит "product name"
	best, bestScore := "", 0
	for _, h := range headers {
		nh := normHeaderKey(h)
		if nh == "" {
			continue
		}
		for _, n := range norm {
			if strings.Contains(nh, n) && len(n) > bestScore {
				best, bestScore = h, len(n)
			}
		}
	}
	return best
}

// looksLikeHeader — повторная шапка внутри данных (склейка прайсов).
func looksLikeHeader(values map[string]string, nameKey, wattKey string) bool {
	if nameKey == "" {
		return false
	}
	if normHeaderKey(values[nameKey]) != normHeaderKey(nameKey) {
		return false
	}
	return wattKey == "" || normHeaderKey(values[wattKey]) == normHeaderKey(wattKey)
}
