package http

import (
	"net/http"

	"soldi/internal/core"
)

func (s *Server) handleListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	methods, err := s.deps.PaymentMethods.List(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]paymentMethodView, 0, len(methods))
	for _, m := range methods {
		views = append(views, paymentMethodView{ID: m.ID, Name: m.Name, Icon: m.Icon})
	}
	writeJSON(w, r, http.StatusOK, views)
}

func (s *Server) handleCreatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	var in paymentMethodRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.deps.PaymentMethods.Create(r.Context(), core.PaymentMethod{
		Owner: owner,
		Name:  sanitizeInput(in.Name),
		Icon:  sanitizeInput(in.Icon),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, paymentMethodView{ID: created.ID, Name: created.Name, Icon: created.Icon})
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	goals, err := s.deps.Goals.List(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]goalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, newGoalView(g))
	}
	writeJSON(w, r, http.StatusOK, views)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	var in goalRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	g, err := in.toGoal(owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.deps.Goals.Create(r.Context(), g)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, newGoalView(created))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	var in goalRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	g, err := in.toGoal(owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	g.ID = r.PathValue("id")
	if err := s.deps.Goals.Update(r.Context(), g); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newGoalView(g))
}

func newGoalView(g core.Goal) goalView {
	return goalView{
		ID:     g.ID,
		Name:   g.Name,
		Icon:   g.Icon,
		Target: newMoneyView(g.Target),
		Saved:  newMoneyView(g.Saved),
	}
}
