// Package jsonutil provides shared helpers for JSON parsing patterns:
// contextual error wrapping and strict decoding of untrusted documents.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// UnmarshalStrict unmarshals JSON data into v, rejecting unknown fields and
// trailing content. Use it for documents a user may have edited by hand,
// where a misspelled key should fail loudly instead of being silently dropped.
func UnmarshalStrict(data []byte, v interface{}, context string) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	var trailing json.RawMessage
	if err := dec.Decode(&trailing); err == nil {
		return fmt.Errorf("%s: trailing content after JSON document", context)
	}
	return nil
}
