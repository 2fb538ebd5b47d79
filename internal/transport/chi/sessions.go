package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CreateSession handles POST /api/v1/sessions.
func (s *Server) CreateSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusCreated, sessionResponse{Session: string(s.personal.NewSession())})
}

// ListBookmarks handles GET /api/v1/sessions/{session}/bookmarks.
func (s *Server) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	session, err := sessionParam(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	ids, err := s.personal.Bookmarks(r.Context(), session)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	schemes, err := s.personal.BookmarkedSchemes(r.Context(), session)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bookmarksResponse{
		Session: string(session),
		IDs:     ids,
		Schemes: schemesToResponse(schemes),
	})
}

// ToggleBookmark handles PUT /api/v1/sessions/{session}/bookmarks/{id}.
func (s *Server) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	session, err := sessionParam(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	bookmarked, err := s.personal.ToggleBookmark(r.Context(), session, id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookmarkToggleResponse{ID: id, Bookmarked: bookmarked})
}

// RemoveBookmark handles DELETE /api/v1/sessions/{session}/bookmarks/{id}.
func (s *Server) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	session, err := sessionParam(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if err := s.personal.RemoveBookmark(r.Context(), session, chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearBookmarks handles DELETE /api/v1/sessions/{session}/bookmarks.
func (s *Server) ClearBookmarks(w http.ResponseWriter, r *http.Request) {
	session, err := sessionParam(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if err := s.personal.ClearBookmarks(r.Context(), session); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPreferences handles GET /api/v1/sessions/{session}/preferences.
func (s *Server) GetPreferences(w http.ResponseWriter, r *http.Request) {
	session, err := sessionParam(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	prefs, err := s.personal.Preferences(r.Context(), session)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preferencesResponse{Session: string(session), Preferences: prefs})
}

// SavePreferences handles PUT /api/v1/sessions/{session}/preferences.
// Fields absent from the body keep their stored values.
func (s *Server) SavePreferences(w http.ResponseWriter, r *http.Request) {
	session, err := sessionParam(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	prefs, err := s.personal.Preferences(r.Context(), session)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	saved, err := s.personal.SavePreferences(r.Context(), session, prefs)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preferencesResponse{Session: string(session), Preferences: saved})
}

// ResetPreferences handles DELETE /api/v1/sessions/{session}/preferences.
func (s *Server) ResetPreferences(w http.ResponseWriter, r *http.Request) {
	session, err := sessionParam(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	prefs, err := s.personal.ResetPreferences(r.Context(), session)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preferencesResponse{Session: string(session), Preferences: prefs})
}
