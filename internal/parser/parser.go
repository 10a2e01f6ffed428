package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/quodlibetor/jsonlogprint/internal/model"
)

// ErrNotObject is returned when a line is valid JSON but its top-level value
// is not an object. Callers treat it the same as a syntax error (raw
// passthrough); it exists so diagnostics can say which one happened.
var ErrNotObject = errors.New("top-level value is not a JSON object")

// Accepts reports whether a line is worth handing to Parse at all. Lines
// that do not start with '{' cannot be JSON objects, so the full parse is
// skipped entirely.
func Accepts(line string) bool {
	return strings.HasPrefix(line, "{")
}

// Parse decodes one line as a JSON object into fields, clearing prior
// contents first. Field order from the source text is preserved, and a
// repeated key overwrites the earlier value in place. On error the map
// contents are unspecified and the caller should fall back to emitting the
// raw line.
//
// Trailing bytes after the closing brace are ignored; the line has already
// produced one complete object by then.
func Parse(line string, fields *model.FieldMap) error {
	fields.Reset()

	dec := json.NewDecoder(strings.NewReader(line))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode line: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrNotObject
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", keyTok)
		}
		value, err := parseValue(dec)
		if err != nil {
			return fmt.Errorf("decode field %q: %w", key, err)
		}
		fields.Set(key, value)
	}

	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode line: %w", err)
	}
	return nil
}

// parseValue decodes a single value, recursing into objects and arrays.
// Nested objects keep their field order in a slice; they are small and
// rebuilt per line, so a linear upsert is enough for last-write-wins.
func parseValue(dec *json.Decoder) (model.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return model.Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var obj []model.Field
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return model.Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return model.Value{}, fmt.Errorf("unexpected key token %v", keyTok)
				}
				value, err := parseValue(dec)
				if err != nil {
					return model.Value{}, err
				}
				obj = upsert(obj, key, value)
			}
			if _, err := dec.Token(); err != nil {
				return model.Value{}, err
			}
			return model.Object(obj), nil
		case '[':
			var arr []model.Value
			for dec.More() {
				elem, err := parseValue(dec)
				if err != nil {
					return model.Value{}, err
				}
				arr = append(arr, elem)
			}
			if _, err := dec.Token(); err != nil {
				return model.Value{}, err
			}
			return model.Array(arr), nil
		default:
			return model.Value{}, fmt.Errorf("unexpected delimiter %v", t)
		}
	case string:
		return model.String(t), nil
	case json.Number:
		return model.Number(t), nil
	case bool:
		return model.Bool(t), nil
	case nil:
		return model.Null(), nil
	default:
		return model.Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func upsert(obj []model.Field, key string, value model.Value) []model.Field {
	for i := range obj {
		if obj[i].Name == key {
			obj[i].Value = value
			return obj
		}
	}
	return append(obj, model.Field{Name: key, Value: value})
}
