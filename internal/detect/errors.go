package detect

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Stage error codes stored on PipelineStage.Error.
const (
	ErrorCodeTimeout           = "TIMEOUT"
	ErrorCodeMalformedResponse = "MALFORMED_RESPONSE"
	ErrorCodeUpstream          = "UPSTREAM_ERROR"
	ErrorCodeNotConfigured     = "NOT_CONFIGURED"
	ErrorCodeInternal          = "INTERNAL_ERROR"
)

// ValidationError rejects a request before any stage runs. It is the only
// failure that surfaces to the caller as an error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func classifyStageError(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	code := ErrorCodeUpstream
	msg := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, context.DeadlineExceeded) || strings.Contains(msg, "timeout"):
		code = ErrorCodeTimeout
	case strings.Contains(msg, "parse") || strings.Contains(msg, "decode") || strings.Contains(msg, "unmarshal") || strings.Contains(msg, "malformed"):
		code = ErrorCodeMalformedResponse
	case strings.Contains(msg, "not configured"):
		code = ErrorCodeNotConfigured
	case strings.Contains(msg, "panic"):
		code = ErrorCodeInternal
	}
	return &ErrorInfo{Code: code, Message: sanitizeError(err)}
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
