package source

import (
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/chartkit/pkg/errors"
)

// ReadJSON decodes a pivot table from r.
//
// The input must be a JSON object with a "header" array and a "rows" array
// of arrays:
//
//	{
//	  "header": ["Region", "City", "2024|Q1", "2024|Q2"],
//	  "rows": [["East", "Boston", 10, 12.5], ["", "NYC", 7, null]]
//	}
//
// Numbers decode as float64 (integral values as int64), strings are parsed
// like spreadsheet cells, and null is a blank cell. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (*Table, error) {
	var data struct {
		Name   string   `json:"name"`
		Header []string `json:"header"`
		Rows   [][]any  `json:"rows"`
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode table")
	}
	if len(data.Header) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "table has no header")
	}

	t := &Table{
		Name:   data.Name,
		Header: trimAll(data.Header),
		Rows:   make([][]any, len(data.Rows)),
		Text:   make([][]string, len(data.Rows)),
	}
	for i, row := range data.Rows {
		cells := make([]any, len(row))
		text := make([]string, len(row))
		for j, v := range row {
			cells[j], text[j] = jsonValue(v)
		}
		t.Rows[i], t.Text[i] = cells, text
	}
	return t, nil
}

// jsonValue returns the typed cell and the text it was written as.
func jsonValue(v any) (any, string) {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, x.String()
		}
		if f, err := x.Float64(); err == nil {
			return f, x.String()
		}
		return x.String(), x.String()
	case string:
		return parseValue(x), strings.TrimSpace(x)
	case bool:
		return x, strconv.FormatBool(x)
	case nil:
		return nil, ""
	default:
		// Nested arrays and objects are not cells; keep their text.
		b, _ := json.Marshal(x)
		return string(b), string(b)
	}
}

// LoadJSON reads a JSON pivot table file.
func LoadJSON(path string) (*Table, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "table %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes t in the format read by ReadJSON. Dates are written as
// RFC 3339 strings. A cell whose source text differs from its formatted
// value ("007", "TRUE") is written as that text so labels survive reading
// it back.
func WriteJSON(t *Table, w io.Writer) error {
	out := struct {
		Name   string   `json:"name,omitempty"`
		Header []string `json:"header"`
		Rows   [][]any  `json:"rows"`
	}{Name: t.Name, Header: t.Header, Rows: make([][]any, len(t.Rows))}
	for r, row := range t.Rows {
		cells := make([]any, len(row))
		for c, v := range row {
			cells[c] = v
			if text := t.Label(r, c); text != cellText(v) {
				cells[c] = text
			}
		}
		out.Rows[r] = cells
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode table")
	}
	return nil
}
