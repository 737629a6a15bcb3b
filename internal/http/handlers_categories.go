package http

import (
	"net/http"

	"soldi/internal/cache"
	"soldi/internal/core"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID
	key := cache.Key(owner, cache.CollectionCategories)

	merged, ok := s.categoryCache.Get(key)
	if !ok {
		var err error
		merged, err = s.deps.Categories.List(r.Context(), owner)
		if err != nil {
			writeError(w, r, err)
			return
		}
		s.categoryCache.Set(key, merged)
	}

	views := make([]categoryView, 0, len(merged))
	for _, c := range merged {
		views = append(views, newCategoryView(c))
	}
	writeJSON(w, r, http.StatusOK, views)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	var in categoryRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.deps.Categories.Create(r.Context(), core.Category{
		Owner: owner,
		Name:  sanitizeInput(in.Name),
		Icon:  sanitizeInput(in.Icon),
		Kind:  core.Kind(in.Kind),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateOwner(owner)
	writeJSON(w, r, http.StatusCreated, newCategoryView(created))
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	owner := session(r).UserID

	if err := s.deps.Categories.Delete(r.Context(), owner, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateOwner(owner)
	w.WriteHeader(http.StatusNoContent)
}
