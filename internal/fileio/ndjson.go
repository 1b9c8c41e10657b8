package fileio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
)

// readNDJSON — строка = JSON-объект. Числа декодируются как json.Number,
// чтобы неизвестные поля (цена, валюта) доехали до вывода без искажений.
func readNDJSON(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	var out []Record
	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		m := make(map[string]any)
		if err := dec.Decode(&m); err != nil {
			out = append(out, Record{Line: line, Err: err})
			continue
		}
		out = append(out, Record{Fields: m, Line: line})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
