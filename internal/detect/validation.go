package detect

import (
	"fmt"
	"strings"
)

// validateRequest enforces pre-stage constraints. A returned
// *ValidationError is the only hard-fail path: nothing runs after it.
func validateRequest(req AnalysisRequest, tun Tunables) error {
	switch req.Kind {
	case KindText, KindImage, KindVideo, KindDocument:
	case "":
		return &ValidationError{Field: "kind", Reason: "is required"}
	default:
		return &ValidationError{Field: "kind", Reason: fmt.Sprintf("%q is not supported", req.Kind)}
	}

	switch req.Kind {
	case KindText:
		content := strings.TrimSpace(req.Content)
		if len(content) < tun.MinTextLength {
			return &ValidationError{Field: "content", Reason: fmt.Sprintf("must be at least %d characters", tun.MinTextLength)}
		}
		if int64(len(content)) > tun.MaxContentBytes {
			return &ValidationError{Field: "content", Reason: fmt.Sprintf("exceeds %d bytes", tun.MaxContentBytes)}
		}
	case KindImage, KindVideo:
		if len(req.Binary) == 0 {
			return &ValidationError{Field: "binary", Reason: "payload is required"}
		}
		if int64(len(req.Binary)) > tun.MaxContentBytes {
			return &ValidationError{Field: "binary", Reason: fmt.Sprintf("exceeds %d bytes", tun.MaxContentBytes)}
		}
	case KindDocument:
		if len(req.Binary) == 0 && strings.TrimSpace(req.Content) == "" {
			return &ValidationError{Field: "content", Reason: "document payload is required"}
		}
		if int64(len(req.Binary)) > tun.MaxContentBytes {
			return &ValidationError{Field: "binary", Reason: fmt.Sprintf("exceeds %d bytes", tun.MaxContentBytes)}
		}
	}
	return nil
}
