package http

import (
	"net/http"
)

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	statuses, err := s.deps.Budgets.Statuses(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]budgetStatusView, 0, len(statuses))
	for _, st := range statuses {
		views = append(views, newBudgetStatusView(st))
	}
	writeJSON(w, r, http.StatusOK, views)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	var in budgetRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	b, err := in.toBudget(owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.deps.Budgets.Create(r.Context(), b)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateOwner(owner)
	writeJSON(w, r, http.StatusCreated, struct {
		ID           string    `json:"id"`
		CategoryName string    `json:"category_name"`
		Month        string    `json:"month"`
		Amount       moneyView `json:"amount"`
	}{
		ID:           created.ID,
		CategoryName: created.CategoryName,
		Month:        created.Month,
		Amount:       newMoneyView(created.Amount),
	})
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	if err := s.deps.Budgets.Delete(r.Context(), owner, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateOwner(owner)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBudgetOverview(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	overview, err := s.deps.Budgets.Overview(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, budgetOverviewView{
		TotalBudget:    newMoneyView(overview.TotalBudget),
		TotalSpent:     newMoneyView(overview.TotalSpent),
		TotalRemaining: newMoneyView(overview.TotalRemaining),
		Percent:        overview.Percent,
		Tier:           string(overview.Tier),
	})
}
