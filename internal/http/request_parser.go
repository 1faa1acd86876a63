// This file implements parsing of the ledger forms: range edits, mode
// switches and new entries. Bodies may be form-encoded (htmx) or JSON.

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"kassenbuch/internal/core"
	"kassenbuch/internal/view"
)

const maxBodyBytes = 64 << 10

var errUnknownEdge = errors.New("field must be from or to")

// RangeParams is one boundary edit of the date range selector.
type RangeParams struct {
	Edge core.RangeEdge
	Date core.Date
}

// ParseRangeParams reads field=from|to and value=yyyy-mm-dd. An empty value
// clears the boundary.
func ParseRangeParams(p *RequestBodyParser) (RangeParams, error) {
	var out RangeParams
	switch strings.ToLower(p.Get("field")) {
	case "from":
		out.Edge = core.EdgeFrom
	case "to":
		out.Edge = core.EdgeTo
	default:
		return out, errUnknownEdge
	}
	d, err := core.ParseDate(p.Get("value"))
	if err != nil {
		return out, err
	}
	out.Date = d
	return out, nil
}

// ParseModeParam reads the mode key or label; unknown values mean all.
func ParseModeParam(p *RequestBodyParser) view.Mode {
	return view.ParseMode(p.Get("mode"))
}

// ParseNewEntry maps the entry form onto core.NewEntry. Defaulting and
// validation happen in the service.
func ParseNewEntry(p *RequestBodyParser) core.NewEntry {
	return core.NewEntry{
		VoucherRef:  p.Get("voucher"),
		Date:        p.Get("date"),
		Category:    p.Get("category"),
		Description: p.Get("description"),
		AmountText:  p.Get("amount"),
	}
}

// RequestBodyParser reads a request body once and exposes it as key/value
// pairs whether it was sent as JSON or form-encoded.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]interface{}
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser reads at most maxBodyBytes of the request body.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	if r.Body != nil {
		p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	}
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	if len(p.body) == 0 {
		p.formData = url.Values{}
		return nil
	}

	if strings.HasPrefix(p.contentType, "application/json") || p.body[0] == '{' {
		p.jsonData = make(map[string]interface{})
		if err := json.Unmarshal(p.body, &p.jsonData); err != nil {
			p.err = err
			return err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(string(p.body))
	return p.err
}

// Get returns a trimmed, sanitized value from the parsed data.
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// IsJSON returns true if the parsed content was JSON.
func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

func stringValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// parseBody parses the request body or writes a 400 response. It returns nil
// when the response has already been written.
func parseBody(w http.ResponseWriter, r *http.Request) *RequestBodyParser {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("Ungültiges Anfrageformat").Write(w)
		return nil
	}
	return p
}
