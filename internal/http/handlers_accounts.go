package http

import (
	"net/http"

	"soldi/internal/core"
)

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	accounts, err := s.deps.Accounts.List(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	total, err := s.deps.Accounts.TotalBalance(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}

	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, newAccountView(a))
	}
	writeJSON(w, r, http.StatusOK, struct {
		Accounts []accountView `json:"accounts"`
		Total    moneyView     `json:"total"`
	}{Accounts: views, Total: newMoneyView(total)})
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	var in accountRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	a, err := in.toAccount(owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.deps.Accounts.Create(r.Context(), a)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateOwner(owner)
	writeJSON(w, r, http.StatusCreated, newAccountView(created))
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	var in accountRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	a, err := in.toAccount(owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	a.ID = r.PathValue("id")
	if err := s.deps.Accounts.Update(r.Context(), a); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateOwner(owner)
	writeJSON(w, r, http.StatusOK, newAccountView(a))
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	if err := s.deps.Accounts.Delete(r.Context(), owner, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateOwner(owner)
	w.WriteHeader(http.StatusNoContent)
}

// handleSetupAccounts creates the user's initial accounts in one
// atomic batch.
func (s *Server) handleSetupAccounts(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	var in setupRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	accounts := make([]core.Account, 0, len(in.Accounts))
	for _, req := range in.Accounts {
		a, err := req.toAccount(owner)
		if err != nil {
			writeError(w, r, err)
			return
		}
		accounts = append(accounts, a)
	}
	created, err := s.deps.Accounts.Setup(r.Context(), owner, accounts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateOwner(owner)

	views := make([]accountView, 0, len(created))
	for _, a := range created {
		views = append(views, newAccountView(a))
	}
	writeJSON(w, r, http.StatusCreated, views)
}
