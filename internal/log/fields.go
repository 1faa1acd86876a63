package log

import "kassenbuch/internal/core"

// Common field names for structured logging
const (
	FieldComponent    = "component"
	FieldRequestID    = "request_id"
	FieldClientIP     = "client_ip"
	FieldMethod       = "method"
	FieldPath         = "path"
	FieldQuery        = "query"
	FieldStatusCode   = "status_code"
	FieldDuration     = "duration_ms"
	FieldUserAgent    = "user_agent"
	FieldError        = "error"
	FieldOperation    = "operation"
	FieldEntryID      = "entry_id"
	FieldVoucherRef   = "voucher_ref"
	FieldDate         = "date"
	FieldCategory     = "category"
	FieldAmountCents  = "amount_cents"
	FieldMode         = "mode"
	FieldFrom         = "from"
	FieldTo           = "to"
	FieldEdge         = "edge"
	FieldForced       = "forced"
	FieldVisible      = "visible"
	FieldBalanceCents = "balance_cents"
	FieldMessageID    = "message_id"
	FieldSheetsRef    = "sheets_ref"
	FieldBackend      = "backend"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentLedger    = "ledger"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentSheets    = "sheets"
	ComponentCache     = "cache"
	ComponentView      = "view"
	ComponentRateLimit = "rate_limit"
	ComponentBackend   = "backend"
)

// Operations defines standard operation names
const (
	OpCreate    = "create"
	OpLoad      = "load"
	OpRecompute = "recompute"
	OpAppend    = "append"
	OpRender    = "render"
	OpShutdown  = "shutdown"
	OpStartup   = "startup"
	OpMigrate   = "migrate"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithClientIP(ip string) LogFields {
	f[FieldClientIP] = ip
	return f
}

// WithError adds the error text; a nil error adds nothing.
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithEntry adds the identifying fields of a ledger entry. The id is omitted
// while the entry is not yet stored.
func (f LogFields) WithEntry(e core.Entry) LogFields {
	if e.ID > 0 {
		f[FieldEntryID] = e.ID
	}
	if e.VoucherRef != "" {
		f[FieldVoucherRef] = e.VoucherRef
	}
	f[FieldDate] = e.RawDate
	f[FieldCategory] = e.Category
	f[FieldAmountCents] = e.Amount.Cents
	return f
}

// WithRange adds the range boundaries in ISO form; empty means unbounded.
func (f LogFields) WithRange(r core.DateRange) LogFields {
	f[FieldFrom] = r.From.ISO()
	f[FieldTo] = r.To.ISO()
	return f
}

func (f LogFields) WithHTTPRequest(method, path, query, userAgent string) LogFields {
	f[FieldMethod] = method
	f[FieldPath] = path
	if query != "" {
		f[FieldQuery] = query
	}
	if userAgent != "" {
		f[FieldUserAgent] = userAgent
	}
	return f
}

func (f LogFields) WithHTTPResponse(statusCode int, durationMs int64) LogFields {
	f[FieldStatusCode] = statusCode
	f[FieldDuration] = durationMs
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
