package polaris

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeJSONWithNumber use the UseNumber option in std json, which works
// by first decode number into string, then back to converted type
// see implementation of json.Number in std
func decodeJSONWithNumber(bodyBytes []byte, out interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(bodyBytes))
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		return err
	}
	return nil
}

// firstRowColumns extracts the key order of the first object in a JSON array.
// The query API returns rows as objects, so this is the only way to recover
// the column order of the result set.
func firstRowColumns(bodyBytes []byte) ([]string, error) {
	decoder := json.NewDecoder(bytes.NewReader(bodyBytes))
	decoder.UseNumber()
	tok, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("expected a JSON array of rows, got %v", tok)
	}
	if !decoder.More() {
		return nil, nil
	}
	tok, err = decoder.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object row, got %v", tok)
	}
	var columns []string
	for decoder.More() {
		tok, err = decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected an object key, got %v", tok)
		}
		columns = append(columns, key)
		if err = skipValue(decoder); err != nil {
			return nil, err
		}
	}
	return columns, nil
}

// skipValue consumes one JSON value, including nested objects and arrays.
func skipValue(decoder *json.Decoder) error {
	tok, err := decoder.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err = decoder.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
