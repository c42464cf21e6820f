package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"vdot/internal/analysis"
	"vdot/internal/export"
	"vdot/internal/service"
)

type distanceResponse struct {
	Name   string  `json:"name"`
	Meters float64 `json:"meters"`
}

type zoneResponse struct {
	Name string  `json:"name"`
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

type equivalentResponse struct {
	Distance string  `json:"distance"`
	Meters   float64 `json:"meters"`
	Seconds  float64 `json:"seconds"`
	Time     string  `json:"time"`
}

type paceResponse struct {
	Zone          string  `json:"zone"`
	FasterSeconds float64 `json:"faster_seconds"`
	SlowerSeconds float64 `json:"slower_seconds"`
	Faster        string  `json:"faster"`
	Slower        string  `json:"slower"`
}

type resultResponse struct {
	VDOT          float64              `json:"vdot"`
	Label         string               `json:"label"`
	Equivalents   []equivalentResponse `json:"equivalents"`
	Paces         []paceResponse       `json:"paces"`
	CalculationID string               `json:"calculation_id,omitempty"`
}

type predictResponse struct {
	VDOT    float64 `json:"vdot"`
	Meters  float64 `json:"meters"`
	Seconds float64 `json:"seconds"`
	Time    string  `json:"time"`
}

func newPaceResponses(paces []analysis.PaceRange) []paceResponse {
	out := make([]paceResponse, len(paces))
	for i, p := range paces {
		out[i] = paceResponse{
			Zone:          p.Zone.Name,
			FasterSeconds: p.Faster.Seconds(),
			SlowerSeconds: p.Slower.Seconds(),
			Faster:        service.FormatDuration(p.Faster),
			Slower:        service.FormatDuration(p.Slower),
		}
	}
	return out
}

func newResultResponse(r *service.Report) resultResponse {
	resp := resultResponse{
		VDOT:          r.VDOT,
		Label:         r.Label,
		Equivalents:   make([]equivalentResponse, len(r.Equivalents)),
		Paces:         newPaceResponses(r.Paces),
		CalculationID: r.CalculationID,
	}
	for i, eq := range r.Equivalents {
		resp.Equivalents[i] = equivalentResponse{
			Distance: eq.Distance.Name,
			Meters:   eq.Distance.Meters,
			Seconds:  eq.Time.Seconds(),
			Time:     service.FormatDuration(eq.Time),
		}
	}
	return resp
}

// parseVDOT reads a VDOT value from a query or path parameter
func parseVDOT(raw string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: vdot is required", analysis.ErrInvalidInput)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: vdot %q is not a number", analysis.ErrInvalidInput, raw)
	}
	return v, nil
}

// Health handlers

type healthResponse struct {
	Status    string `json:"status"`
	Time      string `json:"time"`
	TableRows *int   `json:"table_rows,omitempty"` // nil without a store
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	}

	n, err := s.calc.TableSize(r.Context())
	switch {
	case err == nil:
		resp.TableRows = &n
	case !errors.Is(err, service.ErrNoStore):
		s.log.Errorw("health check failed", "error", err)
		s.respondError(w, r, http.StatusServiceUnavailable, "not_ready", "storage unavailable")
		return
	}

	s.respondJSON(w, r, http.StatusOK, resp)
}

// Reference handlers

func (s *Server) handleDistances(w http.ResponseWriter, r *http.Request) {
	distances := analysis.ReferenceDistances()
	out := make([]distanceResponse, len(distances))
	for i, d := range distances {
		out[i] = distanceResponse{Name: d.Name, Meters: d.Meters}
	}
	s.respondJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleZones(w http.ResponseWriter, r *http.Request) {
	zones := analysis.IntensityZones()
	out := make([]zoneResponse, len(zones))
	for i, z := range zones {
		out[i] = zoneResponse{Name: z.Name, Low: z.Low, High: z.High}
	}
	s.respondJSON(w, r, http.StatusOK, out)
}

// Calculation handlers

func (s *Server) handleVDOT(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	meters, err := service.ParseDistance(q.Get("distance"))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	duration, err := service.ParseDuration(q.Get("time"))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	save := q.Get("save") == "true"
	report, err := s.calc.Calculate(r.Context(), meters, duration, save)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, newResultResponse(report))
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	vdot, err := parseVDOT(q.Get("vdot"))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	meters, err := service.ParseDistance(q.Get("distance"))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	t, err := s.calc.Predict(vdot, meters)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, predictResponse{
		VDOT:    vdot,
		Meters:  meters,
		Seconds: t.Seconds(),
		Time:    service.FormatDuration(t),
	})
}

func (s *Server) handlePaces(w http.ResponseWriter, r *http.Request) {
	vdot, err := parseVDOT(r.URL.Query().Get("vdot"))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	paces, err := s.calc.Paces(vdot)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, newPaceResponses(paces))
}

// Table handlers

func (s *Server) handleTableRow(w http.ResponseWriter, r *http.Request) {
	vdot, err := parseVDOT(chi.URLParam(r, "vdot"))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	row, err := s.calc.LookupTable(r.Context(), vdot)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, export.NewRecord(*row))
}

// History handlers

func (s *Server) handleListCalculations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.respondError(w, r, http.StatusBadRequest, "invalid_input", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	entries, err := s.calc.History(r.Context(), limit)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, entries)
}

func (s *Server) handleGetCalculation(w http.ResponseWriter, r *http.Request) {
	report, err := s.calc.Recall(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, newResultResponse(report))
}

func (s *Server) handleClearCalculations(w http.ResponseWriter, r *http.Request) {
	if err := s.calc.ClearHistory(r.Context()); err != nil {
		s.respondErr(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, map[string]string{"status": "cleared"})
}
