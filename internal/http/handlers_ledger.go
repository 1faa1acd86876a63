package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"kassenbuch/internal/core"
	"kassenbuch/internal/log"
	"kassenbuch/internal/metrics"
	"kassenbuch/internal/view"
)

var errNoLedger = errors.New("no ledger store configured")

const loadErrorMessage = "Einträge konnten nicht geladen werden."

// reload reads the store into the session. A failed read empties the view.
func (s *Server) reload(ctx context.Context) view.Snapshot {
	if s.ledger == nil {
		return s.observe(ctx, s.session.LoadFailed(errNoLedger))
	}
	cctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	entries, err := s.ledger.SelectAllOrdered(cctx)
	if err != nil {
		metrics.LoadFailures.Inc()
		s.events.LogError(ctx, "Failed to load entries", err, log.ComponentStorage, log.OpLoad, nil)
		return s.observe(ctx, s.session.LoadFailed(err))
	}
	return s.observe(ctx, s.session.Load(entries))
}

// observe publishes the outcome of a session event to metrics and the log.
func (s *Server) observe(ctx context.Context, snap view.Snapshot) view.Snapshot {
	metrics.ViewRecomputations.Inc()
	metrics.VisibleEntries.Set(float64(snap.State.Len()))
	metrics.BalanceCents.Set(float64(snap.State.BalanceCents))
	s.events.LogViewRecomputed(ctx, snap.State.Range, string(snap.State.Mode), snap.State.Len(), snap.State.BalanceCents)
	return snap
}

func (s *Server) render(name string, data any) ([]byte, error) {
	if s.templates == nil {
		return nil, errors.New("templates not loaded")
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeLedger renders the ledger partial into b and sends it. A load error on
// the snapshot adds an error notification.
func (s *Server) writeLedger(w http.ResponseWriter, r *http.Request, b *HTMXResponseBuilder, snap view.Snapshot) {
	body, err := s.render("ledger.html", s.ledgerData(snap))
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Ledger template failed", log.FieldError, err)
		InternalServerError("Fehler beim Anzeigen").Write(w)
		return
	}
	if snap.LoadError != nil {
		b.TriggerErrorNotification(loadErrorMessage)
	}
	focus := -1
	if snap.HasFocus {
		focus = snap.Focus
	}
	b.TriggerViewChanged(snap.State.Len(), focus).
		BodyHTML(string(body)).
		Write(w)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	snap := s.reload(r.Context())
	data := indexData{
		Ledger:     s.ledgerData(snap),
		Today:      core.Today().ISO(),
		Categories: []string{core.CategoryIncome, core.CategoryExpense},
		Currency:   s.currency,
	}
	body, err := s.render("index.html", data)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Index template execution failed", log.FieldError, err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	s.writeLedger(w, r, NewHTMXResponse(), s.reload(r.Context()))
}

func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	p := parseBody(w, r)
	if p == nil {
		return
	}
	params, err := ParseRangeParams(p)
	if err != nil {
		UnprocessableEntityError("Ungültiges Datum.").Write(w)
		return
	}

	tr, snap := s.session.SetRange(params.Edge, params.Date)
	s.observe(r.Context(), snap)

	st := tr.State
	b := NewHTMXResponse().TriggerRangeLimits(st.Range.From.ISO(), st.Range.To.ISO(), st.ToMin.ISO(), st.FromMax.ISO())
	if tr.Forced {
		other := "Bis"
		if tr.Edge == core.EdgeTo {
			other = "Von"
		}
		b.TriggerNotification(NotificationInfo, other+"-Datum wurde angepasst.", 3000)
	}
	s.writeLedger(w, r, b, snap)
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	p := parseBody(w, r)
	if p == nil {
		return
	}
	snap := s.observe(r.Context(), s.session.SetMode(ParseModeParam(p)))
	s.writeLedger(w, r, NewHTMXResponse(), snap)
}

// handleCreateEntry stores a new entry. Rejected input answers 422 and a
// store failure 500; in both cases the view is left untouched.
func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	p := parseBody(w, r)
	if p == nil {
		return
	}
	if s.ledger == nil {
		InternalServerError("Fehler beim Speichern.").TriggerErrorNotification("Fehler beim Speichern.").Write(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	e, err := s.ledger.Create(ctx, ParseNewEntry(p))
	if err != nil {
		msg, validation := entryErrorMessage(err)
		if !validation {
			s.events.LogError(r.Context(), "Failed to create entry", err, log.ComponentLedger, log.OpCreate, nil)
			formError(InternalServerError(msg).TriggerErrorNotification(msg)).Write(w)
			return
		}
		formError(UnprocessableEntityError(msg)).Write(w)
		return
	}

	s.events.LogEntryCreated(r.Context(), e)
	snap := s.observe(r.Context(), s.session.Inserted(e))

	b := NewHTMXResponse().
		TriggerEntryCreated(e.ID).
		TriggerFormReset().
		TriggerSuccessNotification("Eintrag #" + strconv.FormatInt(e.ID, 10) + " gespeichert.")
	s.writeLedger(w, r, b, snap)
}

// formError points an error fragment at the message slot of the entry form.
func formError(b *HTMXResponseBuilder) *HTMXResponseBuilder {
	return b.Retarget("#form-message", "innerHTML")
}

// handleLatest reports the row index of the newest visible entry, -1 when
// nothing is visible.
func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	snap := s.session.Snapshot()
	i, ok := view.Latest(snap.State)
	resp := map[string]any{"index": -1}
	if ok {
		resp["index"] = i
		resp["entry_id"] = snap.State.Rows[i].Entry.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAPIView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apiViewOf(s.session.Snapshot()))
}

// handleChart serves the running balance of the current view as PNG. Views
// with fewer than two plottable dates answer 204.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	snap := s.session.Snapshot()
	key := chartKey(snap.State)

	png, ok := s.charts.Get(key)
	if !ok {
		var err error
		png, err = view.RenderBalanceChart(snap.State, s.locale, s.currency)
		if err != nil {
			s.logger.DebugContext(r.Context(), "Balance chart not rendered", log.FieldError, err)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		s.charts.Set(key, png)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(png)
}
