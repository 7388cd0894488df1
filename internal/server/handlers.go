package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/joycelim/callheat/internal/analyzer"
	"github.com/joycelim/callheat/internal/core/model"
)

type apiError struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, apiError{Error: err.Error()})
}

// requestRecords applies the shared view/from/to query parameters and
// returns the filtered snapshot.
func (s *Server) requestRecords(r *http.Request) ([]model.CallRecord, model.View, error) {
	viewParam := r.URL.Query().Get("view")
	if viewParam == "" {
		viewParam = string(model.ViewLocal)
	}
	view, err := model.ParseView(viewParam)
	if err != nil {
		return nil, "", err
	}

	records, err := analyzer.FilterByMonthRange(
		s.dataset.Records(), view,
		r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		return nil, "", err
	}
	return records, view, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	records, _, err := s.requestRecords(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	respondJSON(w, http.StatusOK, analyzer.ComputeOverview(records))
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	records, _, err := s.requestRecords(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	respondJSON(w, http.StatusOK, analyzer.BuildHeatmap(records))
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	records, _, err := s.requestRecords(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	days := analyzer.ComputeCalendar(records)
	if days == nil {
		days = []analyzer.CalendarDay{}
	}
	respondJSON(w, http.StatusOK, days)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	records, view, err := s.requestRecords(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	interval := r.URL.Query().Get("interval")
	if interval == "" {
		interval = "day"
	}
	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = "total"
	}

	points, err := analyzer.ComputeTrend(records, view, interval, metric)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if points == nil {
		points = []analyzer.TrendPoint{}
	}
	respondJSON(w, http.StatusOK, points)
}

func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request) {
	records, _, err := s.requestRecords(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	bins := 30
	if binsParam := r.URL.Query().Get("bins"); binsParam != "" {
		parsed, err := strconv.Atoi(binsParam)
		if err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		bins = parsed
	}

	histogram, err := analyzer.ComputeDistribution(records, bins)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if histogram == nil {
		histogram = []analyzer.DistributionBin{}
	}
	respondJSON(w, http.StatusOK, histogram)
}
