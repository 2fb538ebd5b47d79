package chi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yojanadost/yojana/internal/domain/profile"
	"github.com/yojanadost/yojana/internal/domain/query"
)

// stateFromRequest builds a query state from URL parameters. Absent parameters take
// the configured defaults; malformed ones are rejected.
func (s *Server) stateFromRequest(r *http.Request) (query.State, error) {
	q := r.URL.Query()

	sortKey, err := query.ParseSortKey(q.Get("sort"))
	if err != nil {
		return query.State{}, err
	}

	def := s.queries.DefaultState()
	page, err := intParam(q, "page", def.PageNumber())
	if err != nil {
		return query.State{}, err
	}
	size, err := intParam(q, "page_size", def.PageSize())
	if err != nil {
		return query.State{}, err
	}
	if size < 1 {
		return query.State{}, fmt.Errorf("page_size must be positive, got %d", size)
	}

	return query.NewState(q.Get("search"), q.Get("category"), q.Get("state"), sortKey, page, size), nil
}

func intParam(q url.Values, name string, fallback int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

func sessionParam(r *http.Request) (profile.SessionID, error) {
	return profile.ParseSessionID(chi.URLParam(r, "session"))
}
