package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/theirongolddev/salarygap/internal/chart"
	"github.com/theirongolddev/salarygap/internal/dashboard"
	"github.com/theirongolddev/salarygap/internal/model"
	"github.com/theirongolddev/salarygap/internal/pipeline"
	"github.com/theirongolddev/salarygap/internal/session"
)

const (
	pngWidth  = 900
	pngHeight = 600
)

// renderPNG draws chart images; tests replace it.
var renderPNG = chart.RenderPNG

// Domain lists the selectable values.
type Domain struct {
	Years          []int    `json:"years"`
	Jobs           []string `json:"jobs"`
	CostCategories []string `json:"cost_categories"`
}

type selectionRequest struct {
	Year int    `json:"year"`
	Job  string `json:"job"`
}

type overrideRequest struct {
	Field string   `json:"field"`
	Value *float64 `json:"value"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.status())
}

func (s *Service) handleDomain(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset()
	writeJSON(w, r, http.StatusOK, Domain{
		Years:          ds.Salaries.YearDomain(),
		Jobs:           ds.Salaries.CategoryDomain(),
		CostCategories: ds.AnnualCosts.CategoryDomain(),
	})
}

func (s *Service) handleSalaryChart(w http.ResponseWriter, r *http.Request) {
	spec := dashboard.LineChart(s.dataset())
	for _, name := range r.URL.Query()["hide"] {
		spec.Toggle(name)
	}
	writeChart(w, r, spec)
}

func (s *Service) handleCostChart(w http.ResponseWriter, r *http.Request) {
	cv, err := s.costView(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	spec := dashboard.CostChart(s.dataset(), cv)
	for _, name := range r.URL.Query()["hide"] {
		spec.Toggle(name)
	}
	writeChart(w, r, spec)
}

func (s *Service) handleView(w http.ResponseWriter, r *http.Request) {
	cv, err := s.costView(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.view(cv))
}

func (s *Service) handleState(w http.ResponseWriter, r *http.Request) {
	var snap session.Snapshot
	s.read(func(m *session.Manager) { snap = m.Snapshot() })
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Service) handleSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	snap, err := s.apply(EventSelection, func(m *session.Manager) error {
		return m.OnSelectionChanged(req.Year, req.Job)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	zerolog.Ctx(r.Context()).Debug().Int("year", req.Year).Str("job", req.Job).Msg("selection changed")
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Service) handleOverride(w http.ResponseWriter, r *http.Request) {
	var req overrideRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	field, err := model.ParseField(req.Field)
	if err != nil {
		writeError(w, r, badRequest(err))
		return
	}
	if req.Value == nil {
		writeError(w, r, badRequest(errors.New("value is required")))
		return
	}

	snap, err := s.apply(EventOverride, func(m *session.Manager) error {
		return m.Override(field, *req.Value)
	})
	if err != nil {
		writeError(w, r, badRequest(err))
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Service) handleClearOverride(w http.ResponseWriter, r *http.Request) {
	field, err := model.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		writeError(w, r, badRequest(err))
		return
	}

	snap, _ := s.apply(EventClearOverride, func(m *session.Manager) error {
		m.ClearOverride(field)
		return nil
	})
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Service) handleSavings(w http.ResponseWriter, r *http.Request) {
	var res model.SavingsResult
	s.read(func(m *session.Manager) { res = m.Savings() })
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Service) handleComputeSavings(w http.ResponseWriter, r *http.Request) {
	var in model.BudgetInputs
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, pipeline.ComputeSavings(in))
}

func (s *Service) handleEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.Unlock()

	writeJSON(w, r, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current state immediately.
	current := Event{Type: "snapshot", Timestamp: time.Now()}
	s.read(func(m *session.Manager) { current.Snapshot = m.Snapshot() })
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

// costView reads cost tab controls from the query, starting from the
// dashboard defaults.
func (s *Service) costView(r *http.Request) (dashboard.CostView, error) {
	ds := s.dataset()
	cv := dashboard.DefaultCostView(ds)
	q := r.URL.Query()

	if job := q.Get("job"); job != "" {
		if !ds.Salaries.HasCategory(job) {
			return cv, &model.LookupError{Table: ds.Salaries.Name, Key: job}
		}
		cv.Job = job
	}
	for param, dst := range map[string]*int{"from": &cv.MinYear, "to": &cv.MaxYear} {
		raw := q.Get(param)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return cv, badRequest(fmt.Errorf("%s must be a year, got %q", param, raw))
		}
		*dst = v
	}
	if cats, ok := q["category"]; ok {
		cv.Categories = cats
	}
	return cv, nil
}

func writeChart(w http.ResponseWriter, r *http.Request, spec chart.ChartSpec) {
	if r.URL.Query().Get("format") != "png" {
		writeJSON(w, r, http.StatusOK, spec)
		return
	}
	var buf bytes.Buffer
	if err := renderPNG(spec, &buf, pngWidth, pngHeight); err != nil {
		writeError(w, r, fmt.Errorf("rendering chart: %w", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("writing chart")
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}
