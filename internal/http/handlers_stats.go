package http

import (
	"net/http"
)

func (s *Server) handleMonthlyStats(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID
	month, year := parseMonthYear(r)

	stats, err := s.deps.Stats.Monthly(r.Context(), owner, month, year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, monthlyStatsView{
		Month:   stats.Month.String(),
		Year:    stats.Year,
		Income:  newMoneyView(stats.Income),
		Expense: newMoneyView(stats.Expense),
		Net:     newMoneyView(stats.Net),
	})
}

func (s *Server) handleWeeklyStats(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID
	month, year := parseMonthYear(r)

	stats, err := s.deps.Stats.Weekly(r.Context(), owner, month, year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	weeks := make([]weekBucketView, 0, len(stats.Weeks))
	for _, bucket := range stats.Weeks {
		weeks = append(weeks, weekBucketView{
			Week:    bucket.Week,
			Income:  newMoneyView(bucket.Income),
			Expense: newMoneyView(bucket.Expense),
		})
	}
	writeJSON(w, r, http.StatusOK, weeklyStatsView{
		Month: stats.Month.String(),
		Year:  stats.Year,
		Weeks: weeks,
	})
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID
	month, year := parseMonthYear(r)

	stats, err := s.deps.Stats.Estimate(r.Context(), owner, month, year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, estimateView{
		Month:    stats.Month.String(),
		Year:     stats.Year,
		Estimate: newMoneyView(stats.Estimate),
	})
}
