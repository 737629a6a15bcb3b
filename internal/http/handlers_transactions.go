package http

import (
	"net/http"

	"soldi/internal/cache"
	"soldi/internal/core"
)

// handleListTransactions serves the merged feed. The unfiltered merge
// is cached per owner; type filter and search run on the cached copy.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID
	key := cache.Key(owner, cache.CollectionTransactions)

	items, ok := s.feedCache.Get(key)
	if !ok {
		var err error
		items, err = s.deps.Transactions.List(r.Context(), owner)
		if err != nil {
			writeError(w, r, err)
			return
		}
		s.feedCache.Set(key, items)
	}

	typeFilter := r.URL.Query().Get("type")
	term := r.URL.Query().Get("q")
	filtered := core.Filter(items, typeFilter, term)

	writeJSON(w, r, http.StatusOK, newTransactionViews(filtered))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	var in transactionRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	t, err := in.toTransaction(owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.deps.Transactions.Create(r.Context(), t)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateOwner(owner)
	writeJSON(w, r, http.StatusCreated, newTransactionView(core.TaggedTransaction{Tag: core.TagRegular, Regular: &created}))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	var in transactionRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	t, err := in.toTransaction(owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	t.ID = r.PathValue("id")
	if err := s.deps.Transactions.Update(r.Context(), t); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateOwner(owner)
	writeJSON(w, r, http.StatusOK, newTransactionView(core.TaggedTransaction{Tag: core.TagRegular, Regular: &t}))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	if err := s.deps.Transactions.Delete(r.Context(), owner, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateOwner(owner)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateTransfer(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	var in transferRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	t, err := in.toTransfer(owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.deps.Transactions.Transfer(r.Context(), t)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateOwner(owner)
	writeJSON(w, r, http.StatusCreated, newTransactionView(core.TaggedTransaction{Tag: core.TagTransfer, Transfer: &created}))
}
