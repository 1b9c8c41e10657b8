package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Record — одна запись входного файла. Для кривой строки Fields пуст,
// а Err описывает, почему она не разобралась; решение «пропустить или
// прервать» остаётся за вызывающим.
type Record struct {
	Fields map[string]any
	Line   int // 1-based строка исходного файла, для диагностики
	Err    error
}

// ReadRecords — выбирает парсер по расширению. Основной формат — NDJSON
// (строка = JSON-объект); табличные .csv/.xls/.xlsx маппятся по строке
// заголовков headerRow (1-based).
func ReadRecords(r io.Reader, filename string, headerRow int) ([]Record, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(r, headerRow)
	case ".xls":
		return readXLS(r, headerRow)
	case ".xlsx":
		return readXLSX(r, headerRow)
	default:
		return readNDJSON(r)
	}
}

// pickHeader — строка заголовков; пустым колонкам подставляется Column N.
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 || idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	for i, v := range h {
		if v = strings.TrimSpace(v); v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = v
	}
	return out
}

// rowsToRecords — AoA → записи по заголовкам, полностью пустые строки
// пропускаются.
func rowsToRecords(rows [][]string, headerRow int) []Record {
	if len(rows) == 0 {
		return nil
	}
	headers := pickHeader(rows, headerRow)
	var out []Record
	for r := headerRow; r < len(rows); r++ {
		rec := rows[r]
		m := make(map[string]any, len(headers))
		empty := true
		for c, h := range headers {
			var v string
			if c < len(rec) {
				v = normalizeCell(rec[c])
			}
			if v != "" {
				empty = false
			}
			m[h] = v
		}
		if !empty {
			out = append(out, Record{Fields: m, Line: r + 1})
		}
	}
	return out
}

// normalizeCell — срезает края, включая неразрывные пробелы из выгрузок.
func normalizeCell(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\u00a0' || r == '\u202f'
	})
}
