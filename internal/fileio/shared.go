package fileio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var ErrUnsupported = errors.New("unsupported file format")

// Record — строка данных под заголовком. Line — номер строки в файле (1-based).
type Record struct {
	Line   int
	Values map[string]string
}

// Sheet — прочитанный лист: заголовки в исходном порядке и записи.
type Sheet struct {
	Headers   []string
	Records   []Record
	HeaderRow int
}

// Format — формат по расширению имени файла: csv, xls, xlsx или "".
func Format(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return "xlsx"
	case ".xls":
		return "xls"
	case ".csv", ".txt":
		return "csv"
	}
	return ""
}

// ReadAny выбирает парсер по расширению и возвращает лист.
// headerRow — номер строки заголовков (1-based), <= 0 означает 1.
func ReadAny(r io.Reader, filename string, headerRow int) (*Sheet, error) {
	if headerRow <= 0 {
		headerRow = 1
	}
	var (
		rows [][]string
		err  error
	)
	switch Format(filename) {
	case "xlsx":
		rows, err = readXLSX(r)
	case "xls":
		rows, err = readXLS(r, headerRow)
	case "csv":
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if len(rows) == 0 {
		return &Sheet{HeaderRow: headerRow}, nil
	}
	if headerRow > len(rows) {
		return nil, fmt.Errorf("header row %d is beyond the last row %d", headerRow, len(rows))
	}
	h := pickHeader(rows, headerRow)
	return &Sheet{Headers: h, Records: rowsToRecords(rows, h, headerRow), HeaderRow: headerRow}, nil
}

// pickHeader — строка заголовков; пустые становятся "Column N", повторы
// получают суффикс " (2)", " (3)".
func pickHeader(rows [][]string, headerRow int) []string {
	h := rows[headerRow-1]
	out := make([]string, len(h))
	seen := make(map[string]int, len(h))
	for i, v := range h {
		v = normalizeCell(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		seen[v]++
		if n := seen[v]; n > 1 {
			v = fmt.Sprintf("%s (%d)", v, n)
		}
		out[i] = v
	}
	return out
}

// rowsToRecords — AoA в записи по заголовкам, полностью пустые строки пропускаются.
func rowsToRecords(rows [][]string, headers []string, headerRow int) []Record {
	var out []Record
	for r := headerRow; r < len(rows); r++ {
		rec := rows[r]
		m := make(map[string]string, len(headers))
		empty := true
		for c := range headers {
			var v string
			if c < len(rec) {
				v = normalizeCell(rec[c])
			}
			if v != "" {
				empty = false
			}
			m[headers[c]] = v
		}
		if !empty {
			out = append(out, Record{Line: r + 1, Values: m})
		}
	}
	return out
}

var cellReplacer = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\r", " ", "\n", " ", "\t", " ")

// normalizeCell — неразрывные пробелы и переводы строк в пробел, лишние пробелы убрать.
func normalizeCell(v string) string {
	v = cellReplacer.Replace(v)
	return strings.Join(strings.Fields(v), " ")
}
