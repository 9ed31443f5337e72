package valuation

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

const maxRawInError = 512

// decodeReply turns the raw model text into a generic JSON object.
// Numbers are kept as json.Number so out-of-range values do not abort decoding.
func decodeReply(raw string) (map[string]any, error) {
	content := extractJSONObject(raw)

	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()

	var reply map[string]any
	if err := dec.Decode(&reply); err != nil {
		return nil, &MalformedReplyError{Err: err, Raw: truncate(raw)}
	}
	if reply == nil {
		return nil, &MalformedReplyError{Err: errors.New("reply is not a JSON object"), Raw: truncate(raw)}
	}

	return reply, nil
}

// extractJSONObject strips Markdown fences and any prose around the
// outermost {...} block.
func extractJSONObject(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}

// number reports v as a float64 when it is a JSON number. Magnitudes beyond
// float64 come back as ±Inf rather than being rejected.
func number(v any) (float64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}

	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// text returns v trimmed when it is a non-empty JSON string.
func text(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func truncate(s string) string {
	if len(s) <= maxRawInError {
		return s
	}
	return s[:maxRawInError] + "..."
}
