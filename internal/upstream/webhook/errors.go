package webhook

import "fmt"

// ErrorKind classifies a fetch failure. All kinds surface to the user as a
// single message with a retry affordance; the kind exists for logs and tests.
type ErrorKind int

const (
	// KindNetwork covers transport-level failures: DNS, refused
	// connections, timeouts.
	KindNetwork ErrorKind = iota
	// KindHTTPStatus means the endpoint answered with a non-2xx status.
	KindHTTPStatus
	// KindMalformed means the body was not valid JSON or the envelope had
	// an unexpected shape.
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http_status"
	case KindMalformed:
		return "malformed"
	}
	return "unknown"
}

// FetchError is the single error type the webhook client returns.
type FetchError struct {
	Kind   ErrorKind
	URL    string
	Status int // set for KindHTTPStatus
	Err    error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindNetwork:
		return fmt.Sprintf("upstream unreachable: %v", e.Err)
	case KindHTTPStatus:
		return fmt.Sprintf("upstream returned HTTP %d", e.Status)
	case KindMalformed:
		return fmt.Sprintf("upstream response not understood: %v", e.Err)
	}
	return fmt.Sprintf("fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
