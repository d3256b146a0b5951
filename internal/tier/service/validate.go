package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// AllPSUs: значение колонки мощности «без ограничений».
const AllPSUs = "All PSUs"

// wattageTolerance: допуск для дискретного списка ("850/1000W").
const wattageTolerance = 10

var reWattageSplit = regexp.MustCompile(`[/\-]`)

// CheckWattage: подходит ли мощность продукта под строку справочника.
// Непарсящиеся части дают NaN, а любое сравнение с NaN ложно: такой кандидат
// отбрасывается, а не роняет разбор.
func CheckWattage(spec string, productWattage int) bool {
	if strings.TrimSpace(spec) == "" || strings.EqualFold(strings.TrimSpace(spec), AllPSUs) || productWattage <= 0 {
		return true
	}
	clean := strings.Join(strings.Fields(strings.ToLower(spec)), "")
	clean = strings.TrimSuffix(clean, "w")
	parts := reWattageSplit.Split(clean, -1)
	w := float64(productWattage)

	// диапазон определяется только наличием '-'
	if strings.Contains(spec, "-") {
		lo := parseWattagePart(parts[0])
		hi := parseWattagePart(parts[len(parts)-1])
		return w >= lo && w <= hi
	}
	for _, p := range parts {
		if math.Abs(parseWattagePart(p)-w) < wattageTolerance {
			return true
		}
	}
	return false
}

func parseWattagePart(p string) float64 {
	p = strings.TrimSuffix(strings.TrimSpace(p), "w")
	v, err := strconv.Atoi(p)
	if err != nil {
		return math.NaN()
	}
	return float64(v)
}

// Рейтинг 80 PLUS.
type Rating string

const (
	RatingWhite    Rating = "white"
	RatingBronze   Rating = "bronze"
	RatingSilver   Rating = "silver"
	RatingGold     Rating = "gold"
	RatingPlatinum Rating = "platinum"
	RatingTitanium Rating = "titanium"
)

var ratingWords = []struct {
	rating Rating
	re     *regexp.Regexp
}{
	{RatingWhite, regexp.MustCompile(`white|standard`)},
	{RatingBronze, regexp.MustCompile(`bronze`)},
	{RatingSilver, regexp.MustCompile(`silver`)},
	{RatingGold, regexp.MustCompile(`gold`)},
	{RatingPlatinum, regexp.MustCompile(`platinum`)},
	{RatingTitanium, regexp.MustCompile(`titanium`)},
}

var rePlus80 = regexp.MustCompile(`80\s*\+|80\s*plus`)

// classifyRatings: какие рейтинги упомянуты в тексте. Голое "80+" без
// металла считается white.
func classifyRatings(text string) map[Rating]bool {
	text = strings.ToLower(text)
	out := make(map[Rating]bool, 2)
	metal := false
	for _, rw := range ratingWords {
		if rw.re.MatchString(text) {
			out[rw.rating] = true
			if rw.rating != RatingWhite {
				metal = true
			}
		}
	}
	if !metal && rePlus80.MatchString(text) {
		out[RatingWhite] = true
	}
	return out
}

// CheckEfficiency: не противоречит ли имя продукта рейтингу из справочника.
// Отсутствие рейтинга в имени — не конфликт.
func CheckEfficiency(entryEfficiency, productName string) bool {
	if strings.TrimSpace(entryEfficiency) == "" {
		return true
	}
	entry := classifyRatings(entryEfficiency)
	if len(entry) != 1 {
		return true
	}
	for r := range classifyRatings(productName) {
		if !entry[r] {
			return false
		}
	}
	return true
}

// Короткие коды моделей, которые отличают соседние линейки с разным тиром.
var reModelCodes = regexp.MustCompile(`(?i)\b(?:GF\s?A3|GF\d+|BM\d+|BX\d+|GT|GX|PX|TX|SFX|TR2)\b`)

// modelCodes: нормализованные коды из имени продукта.
func modelCodes(productName string) []string {
	found := reModelCodes.FindAllString(productName, -1)
	out := make([]string, 0, len(found))
	for _, f := range found {
		out = append(out, Normalize(f))
	}
	return out
}

// CheckSignificantMismatch возвращает true, если в имени есть код модели,
// которого нет в серии кандидата (кандидат надо отбросить).
func CheckSignificantMismatch(candidateSeries, productName string) bool {
	series := Normalize(candidateSeries)
	for _, code := range modelCodes(productName) {
		if !strings.Contains(series, code) {
			return true
		}
	}
	return false
}
