package log

// Common field names for structured logging.
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
	FieldCollection  = "collection"
	FieldEntityID    = "entity_id"
	FieldYear        = "year"
	FieldMonth       = "month"
	FieldExpenseDesc = "expense_description"
	FieldAmountCents = "amount_cents"
	FieldCategory    = "category"
	FieldPartner     = "partner"
	FieldTheme       = "theme"
)

// Standard component names.
const (
	ComponentApp    = "app"
	ComponentHTTP   = "http"
	ComponentState  = "state"
	ComponentPrefs  = "prefs"
	ComponentAMQP   = "amqp"
	ComponentWorker = "worker"
	ComponentMirror = "mirror"
	ComponentCache  = "cache"
)

// Standard operation names.
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpToggle   = "toggle"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
