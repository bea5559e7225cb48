package observability

import (
	"context"
	"errors"
	"strings"
)

const (
	ErrorParsing = "parsing"
	ErrorStore   = "store"
	ErrorInput   = "input"
	ErrorUnknown = "unknown"
)

// ClassifyExtractError buckets an error raised around the extraction
// path. The core itself never surfaces faults, so anything seen here
// comes from reading input or from the sink.
func ClassifyExtractError(err error) string {
	if err == nil {
		return ErrorUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorStore
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "parse failed") ||
		strings.Contains(msg, "decode failed") ||
		strings.Contains(msg, "unmarshal") ||
		strings.Contains(msg, "invalid character") ||
		strings.Contains(msg, "xml syntax error"):
		return ErrorParsing
	case strings.Contains(msg, "read failed") ||
		strings.Contains(msg, "no such file"):
		return ErrorInput
	case strings.Contains(msg, "insert failed") ||
		strings.Contains(msg, "pq:") ||
		strings.Contains(msg, "sql"):
		return ErrorStore
	default:
		return ErrorUnknown
	}
}
