package form

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RenderResult pretty-prints a result with two-space indentation. Keys keep
// the order the service sent them in.
func RenderResult(raw json.RawMessage) (string, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", fmt.Errorf("formatting result: %w", err)
	}
	return buf.String(), nil
}
