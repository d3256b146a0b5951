package fileio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readCSV читает CSV, определяя кодировку (chardet) и разделитель (',' ';' или tab).
func readCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)

	peek, _ := br.Peek(4096)
	peek = append([]byte(nil), peek...)
	if bytes.HasPrefix(peek, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
		peek = peek[len(utf8BOM):]
	}

	var dec io.Reader = br
	if cs := detectCharset(peek); cs != "" {
		if enc, err := htmlindex.Get(cs); err == nil {
			dec = transform.NewReader(br, enc.NewDecoder())
		}
	}

	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.Comma = sniffDelimiter(peek)

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		// csv.Reader пропускает пустые строки: держим индекс = номер строки в файле
		line, _ := cr.FieldPos(0)
		for len(rows) < line-1 {
			rows = append(rows, nil)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// detectCharset — "" для UTF-8/ASCII, иначе имя кодировки для htmlindex.
func detectCharset(peek []byte) string {
	if len(peek) == 0 || validUTF8Prefix(peek) {
		return ""
	}
	det, err := chardet.NewTextDetector().DetectBest(peek)
	if err != nil || det == nil {
		return ""
	}
	cs := strings.ToLower(det.Charset)
	switch cs {
	case "utf-8", "ascii", "us-ascii":
		return ""
	case "cp1251":
		return "windows-1251"
	}
	return cs
}

// validUTF8Prefix — валидный UTF-8 с точностью до руны, обрезанной на границе peek.
func validUTF8Prefix(b []byte) bool {
	for cut := 0; cut < utf8.UTFMax && cut < len(b); cut++ {
		if utf8.Valid(b[:len(b)-cut]) {
			return true
		}
	}
	return false
}

// sniffDelimiter: по первой строке, где встречается хоть один кандидат
// (пустые строки и заголовок прайса без разделителей пропускаются).
func sniffDelimiter(peek []byte) rune {
	for _, line := range bytes.Split(peek, []byte{'\n'}) {
		best, bestN := ',', bytes.Count(line, []byte{','})
		for _, d := range []rune{';', '\t'} {
			if n := bytes.Count(line, []byte(string(d))); n > bestN {
				best, bestN = d, n
			}
		}
		if bestN > 0 {
			return best
		}
	}
	return ','
}
