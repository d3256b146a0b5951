package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Число с необязательным разделителем тысяч: "850", "1.000", "1,000", "1 000", "850.5".
var rxWattCell = regexp.MustCompile(`^(\d{1,3}(?:[., \x{00A0}\x{202F}]\d{3})+|\d+)(?:[.,](\d+))?\s*(?:w|вт|watts?)?$`)

// Мощность внутри наименования: "... 850W ...", "1000 W".
var rxWattInName = regexp.MustCompile(`(?i)(?:^|[^\d.,])(\d{3,4})\s?W\b`)

// ParseWattage разбирает ячейку мощности. Дробная часть округляется.
// ok == false для пустых и нечисловых ячеек.
func ParseWattage(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	m := rxWattCell.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	whole := strings.NewReplacer(".", "", ",", "", " ", "", "\u00a0", "", "\u202f", "").Replace(m[1])
	num := whole
	if m[2] != "" {
		num += "." + m[2]
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || f <= 0 || f > math.MaxInt32 {
		return 0, false
	}
	return int(math.Round(f)), true
}

// WattageFromName — первое "NNNW" в наименовании, когда колонки мощности нет.
func WattageFromName(name string) (int, bool) {
	m := rxWattInName.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	w, err := strconv.Atoi(m[1])
	if err != nil || w == 0 {
		return 0, false
	}
	return w, true
}
