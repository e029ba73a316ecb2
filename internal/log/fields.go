package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldSource     = "source"
	FieldURL        = "url"
	FieldRecords    = "records"
	FieldPhase      = "phase"
	FieldBackend    = "backend"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentUpstream = "upstream"
	ComponentView     = "view"
	ComponentConfig   = "config"
)
