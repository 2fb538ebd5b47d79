package chi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yojanadost/yojana/internal/domain"
	logpkg "github.com/yojanadost/yojana/internal/logger"
	"github.com/yojanadost/yojana/internal/repository/dataset"
)

// ListSchemes handles GET /api/v1/schemes.
func (s *Server) ListSchemes(w http.ResponseWriter, r *http.Request) {
	state, err := s.stateFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	page, effective, err := s.queries.Query(state)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	logpkg.AddEventFields(r.Context(),
		zap.Int("result_count", page.ResultCount),
		zap.Int("page", page.PageNumber),
	)

	writeJSON(w, http.StatusOK, pageToResponse(page, effective))
}

// GetScheme handles GET /api/v1/schemes/{id}.
func (s *Server) GetScheme(w http.ResponseWriter, r *http.Request) {
	sch, err := s.catalog.Scheme(chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schemeToResponse(sch))
}

// ListCategories handles GET /api/v1/categories.
func (s *Server) ListCategories(w http.ResponseWriter, _ *http.Request) {
	summaries, err := s.catalog.Categories()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]categoryResponse, len(summaries))
	for i, c := range summaries {
		items[i] = categoryToResponse(c)
	}
	writeJSON(w, http.StatusOK, items)
}

// ListStates handles GET /api/v1/states.
func (s *Server) ListStates(w http.ResponseWriter, _ *http.Request) {
	summaries, err := s.catalog.Regions()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]regionResponse, len(summaries))
	for i, rs := range summaries {
		items[i] = regionToResponse(rs)
	}
	writeJSON(w, http.StatusOK, items)
}

// GetStats handles GET /api/v1/stats.
func (s *Server) GetStats(w http.ResponseWriter, _ *http.Request) {
	st, err := s.catalog.Stats()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Total:      st.Total,
		Central:    st.Central,
		State:      st.State,
		Categories: st.Categories,
		Regions:    st.Regions,
	})
}

// Suggest handles GET /api/v1/suggestions.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intParam(q, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	found, err := s.catalog.Suggest(q.Get("q"), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]suggestionResponse, len(found))
	for i, sch := range found {
		items[i] = suggestionResponse{ID: sch.ID(), Title: sch.Title(), Category: sch.Category()}
	}
	writeJSON(w, http.StatusOK, items)
}

// ExportDataset handles GET /data/schemes.json with the loaded snapshot in dataset format.
func (s *Server) ExportDataset(w http.ResponseWriter, _ *http.Request) {
	schemes, err := s.dataset.Schemes()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	raw, err := dataset.Encode(schemes)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// ReloadDataset handles POST /api/v1/admin/dataset/reload.
func (s *Server) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	n, err := s.dataset.Reload(r.Context())
	switch {
	case errors.Is(err, domain.ErrEmptyDataset):
		writeJSON(w, http.StatusOK, reloadResponse{Schemes: 0, Warning: err.Error()})
	case err != nil:
		s.handleDomainError(w, err)
	default:
		s.logger.Info("dataset reloaded", zap.Int("schemes", n))
		writeJSON(w, http.StatusOK, reloadResponse{Schemes: n})
	}
}
