package directive

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalSpans renders spans as the array-of-records wire format consumed by
// renderers. Nil and empty input both encode as [].
func MarshalSpans(spans []Span) ([]byte, error) {
	if spans == nil {
		spans = []Span{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(spans); err != nil {
		return nil, fmt.Errorf("encoding spans: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// HighlightJSON tokenizes buffer and returns the wire format directly.
func HighlightJSON(buffer string) string {
	data, err := MarshalSpans(TokenizeFirstLine(buffer))
	if err != nil {
		return "[]"
	}
	return string(data)
}
