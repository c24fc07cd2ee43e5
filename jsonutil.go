package lsprpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// jsonObject is a JSON-RPC envelope decoded one level deep: each key
// maps to its still-encoded value, so callers can inspect a field's
// kind precisely before committing to a type.
type jsonObject map[string]json.RawMessage

// decodeObject parses text as a JSON object, distinguishing "not JSON
// at all" from "valid JSON but not an object" so callers can raise the
// right error category.
func decodeObject(text []byte) (jsonObject, error) {
	trimmed := bytes.TrimSpace(text)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		var probe interface{}
		if err := json.Unmarshal(text, &probe); err != nil {
			return nil, err
		}
		return nil, errNotAnObject
	}

	var obj jsonObject
	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// errNotAnObject is returned by decodeObject when the text is valid
// JSON but its root value is not an object.
var errNotAnObject = fmt.Errorf("root value is not an object")

// fieldMissing reports a field that is absent from the object (as
// opposed to present-and-null, which callers check separately via
// isJSONNull).
func fieldMissing(name string) error {
	return fmt.Errorf("Property `%s` is missing.", name)
}

// isJSONNull reports whether raw is exactly the JSON null literal.
func isJSONNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return string(t) == "null"
}

// jsonReader adapts a json.RawMessage to an io.Reader for use with a
// json.Decoder configured with UseNumber().
func jsonReader(raw json.RawMessage) io.Reader {
	return bytes.NewReader(raw)
}

// requireString extracts a required non-null string field, returning a
// precise error message for each missing/wrong-type case.
func requireString(obj jsonObject, name string) (string, error) {
	raw, ok := obj[name]
	if !ok {
		return "", fieldMissing(name)
	}
	if isJSONNull(raw) {
		return "", fmt.Errorf("Value `null` is not a String.")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("Property `%s` is not a String.", name)
	}
	return s, nil
}
