package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies one user-facing failure category. Every failure of the
// gateway, from transport errors to response heuristics, maps to exactly
// one Kind; callers never see raw service errors.
type Kind int

const (
	KindUnclassified Kind = iota
	KindEmptyResponse
	KindImageBlurry
	KindNotALabel
	KindSafetyRejected
	KindRateLimited
	KindQuotaExceeded
	KindNetworkFailure
)

func (k Kind) String() string {
	switch k {
	case KindEmptyResponse:
		return "empty_response"
	case KindImageBlurry:
		return "image_blurry"
	case KindNotALabel:
		return "not_a_label"
	case KindSafetyRejected:
		return "safety_rejected"
	case KindRateLimited:
		return "rate_limited"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindNetworkFailure:
		return "network_failure"
	default:
		return "unclassified"
	}
}

// Message returns the fixed human-readable text shown to the user for
// this failure category.
func (k Kind) Message() string {
	switch k {
	case KindEmptyResponse:
		return "Processing error: The analysis engine returned no data. This usually happens with extremely low-quality images."
	case KindImageBlurry:
		return "Focus error: The captured image is too blurry for precise ingredient decoding. Please hold steady and try again."
	case KindNotALabel:
		return "Subject error: No valid product label or ingredient list detected. Please scan the back of the product packaging."
	case KindSafetyRejected:
		return "Security block: The image content was flagged by safety filters. Please ensure you are only scanning product labels."
	case KindRateLimited:
		return "System congestion: Too many requests are being processed. Please wait 10 seconds before your next scan."
	case KindQuotaExceeded:
		return "Resource limit: API quota exceeded. Please try again later."
	case KindNetworkFailure:
		return "Uplink failure: Network connection unstable. Please check your signal and try again."
	default:
		return "Optical fault: The image was too blurry or unreadable. Please ensure good lighting and focus."
	}
}

// Error is a classified gateway failure.
type Error struct {
	Kind  Kind
	cause error
}

func newError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.cause)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.cause }

// Message returns the user-facing text for this failure.
func (e *Error) Message() string { return e.Kind.Message() }

// Classify maps any error to its failure category. Gateway errors carry
// their category; anything else is matched against the service error text.
func Classify(err error) Kind {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return classifyText(err.Error())
}

// classifyText is an ordered substring heuristic over the service error
// text, evaluated top to bottom against the lower-cased message. It is a
// heuristic, not semantic parsing of the transport error.
func classifyText(msg string) Kind {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "safety"):
		return KindSafetyRejected
	case strings.Contains(lower, "429"):
		return KindRateLimited
	case strings.Contains(lower, "network"), strings.Contains(lower, "fetch"):
		return KindNetworkFailure
	case strings.Contains(lower, "quota"):
		return KindQuotaExceeded
	default:
		return KindUnclassified
	}
}

// UserMessage resolves any analysis failure to the single message the UI
// may display. Unrecognized errors fall back to the generic optical fault.
func UserMessage(err error) string {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Message()
	}
	return classifyText(err.Error()).Message()
}
