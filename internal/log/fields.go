package log

// Field names for structured logging.
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldRecordID    = "record_id"
	FieldAmountPaise = "amount_paise"
	FieldCategory    = "category"
	FieldPaymentMode = "payment_mode"
	FieldPeriod      = "period"
	FieldBackend     = "backend"
	FieldPort        = "port"
)

// Standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentService = "service"
	ComponentStorage = "storage"
	ComponentEvents  = "events"
	ComponentCache   = "cache"
)

// Standard operation names.
const (
	OpCreate   = "create"
	OpDelete   = "delete"
	OpList     = "list"
	OpSummary  = "summary"
	OpStats    = "stats"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
