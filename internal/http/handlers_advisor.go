package http

import (
	"net/http"
)

// handleAdvisorChat answers a single assistant message. Without a
// configured completion backend the endpoint reports unavailable.
func (s *Server) handleAdvisorChat(w http.ResponseWriter, r *http.Request) {
	if s.deps.Advisor == nil {
		writeJSON(w, r, http.StatusServiceUnavailable, errorResponse{Error: "advisor is not configured"})
		return
	}
	owner := session(r).UserID

	var in chatRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	reply, err := s.deps.Advisor.Chat(r.Context(), owner, in.Message)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, chatView{Reply: reply})
}
