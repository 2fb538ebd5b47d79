package chi

import (
	"time"

	"github.com/yojanadost/yojana/internal/domain/profile"
	"github.com/yojanadost/yojana/internal/domain/query"
	"github.com/yojanadost/yojana/internal/domain/scheme"
	cataloguc "github.com/yojanadost/yojana/internal/usecase/catalog"
	chatuc "github.com/yojanadost/yojana/internal/usecase/chat"
)

type errorCode string

const (
	codeBadRequest         errorCode = "bad_request"
	codeValidationFailed   errorCode = "validation_failed"
	codeUnauthorized       errorCode = "unauthorized"
	codeSchemeNotFound     errorCode = "scheme_not_found"
	codeInvalidSession     errorCode = "invalid_session"
	codeDatasetUnavailable errorCode = "dataset_unavailable"
	codeChatProviderError  errorCode = "chat_provider_error"
	codeRateLimited        errorCode = "rate_limited"
	codeInternalError      errorCode = "internal_error"
)

// pageWindowRadius is how many page links surround the current page.
const pageWindowRadius = 2

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type schemeResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	State       string   `json:"state"`
	Type        string   `json:"type,omitempty"`
	Keywords    []string `json:"keywords"`
	DateAdded   *string  `json:"date_added,omitempty"`
	URL         string   `json:"url,omitempty"`
	Eligibility string   `json:"eligibility,omitempty"`
	Benefits    string   `json:"benefits,omitempty"`
	Level       string   `json:"level,omitempty"`
}

type queryResponse struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	State    string `json:"state"`
	Sort     string `json:"sort"`
}

type pageResponse struct {
	Items       []schemeResponse `json:"items"`
	ResultCount int              `json:"result_count"`
	PageCount   int              `json:"page_count"`
	Page        int              `json:"page"`
	PageSize    int              `json:"page_size"`
	HasPrev     bool             `json:"has_prev"`
	HasNext     bool             `json:"has_next"`
	// Pages lists pagination links; 0 marks a gap.
	Pages []int         `json:"pages"`
	Query queryResponse `json:"query"`
}

type categoryResponse struct {
	Key         string   `json:"key"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Count       int      `json:"count"`
	Central     int      `json:"central"`
	State       int      `json:"state"`
	Tags        []string `json:"tags"`
}

type regionResponse struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Count       int      `json:"count"`
	Categories  []string `json:"categories"`
}

type statsResponse struct {
	Total      int `json:"total"`
	Central    int `json:"central"`
	State      int `json:"state"`
	Categories int `json:"categories"`
	Regions    int `json:"regions"`
}

type suggestionResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string           `json:"response"`
	Rule     string           `json:"rule"`
	Schemes  []schemeResponse `json:"schemes"`
	Link     string           `json:"link,omitempty"`
}

type sessionResponse struct {
	Session string `json:"session"`
}

type bookmarksResponse struct {
	Session string           `json:"session"`
	IDs     []string         `json:"ids"`
	Schemes []schemeResponse `json:"schemes"`
}

type bookmarkToggleResponse struct {
	ID         string `json:"id"`
	Bookmarked bool   `json:"bookmarked"`
}

type preferencesResponse struct {
	Session     string              `json:"session"`
	Preferences profile.Preferences `json:"preferences"`
}

type reloadResponse struct {
	Schemes int    `json:"schemes"`
	Warning string `json:"warning,omitempty"`
}

func schemeToResponse(s scheme.Scheme) schemeResponse {
	d := s.Details()
	keywords := s.Keywords()
	if keywords == nil {
		keywords = []string{}
	}
	resp := schemeResponse{
		ID:          s.ID(),
		Title:       s.Title(),
		Description: s.Description(),
		Category:    s.Category(),
		State:       s.State(),
		Type:        string(s.Type()),
		Keywords:    keywords,
		URL:         d.URL,
		Eligibility: d.Eligibility,
		Benefits:    d.Benefits,
		Level:       d.Level,
	}
	if added, ok := s.DateAdded(); ok {
		v := added.Format(time.DateOnly)
		resp.DateAdded = &v
	}
	return resp
}

func schemesToResponse(schemes []scheme.Scheme) []schemeResponse {
	out := make([]schemeResponse, len(schemes))
	for i, s := range schemes {
		out[i] = schemeToResponse(s)
	}
	return out
}

func pageToResponse(p query.Page, st query.State) pageResponse {
	pages := p.Window(pageWindowRadius)
	if pages == nil {
		pages = []int{}
	}
	return pageResponse{
		Items:       schemesToResponse(p.Items),
		ResultCount: p.ResultCount,
		PageCount:   p.PageCount,
		Page:        p.PageNumber,
		PageSize:    p.PageSize,
		HasPrev:     p.HasPrev(),
		HasNext:     p.HasNext(),
		Pages:       pages,
		Query: queryResponse{
			Search:   st.SearchTerm(),
			Category: st.Category(),
			State:    st.Region(),
			Sort:     string(st.SortKey()),
		},
	}
}

func categoryToResponse(c cataloguc.CategorySummary) categoryResponse {
	return categoryResponse{
		Key:         c.Key,
		Title:       c.Info.Title,
		Description: c.Info.Description,
		Color:       c.Info.Color,
		Count:       c.Count,
		Central:     c.Central,
		State:       c.State,
		Tags:        c.Tags,
	}
}

func regionToResponse(r cataloguc.RegionSummary) regionResponse {
	return regionResponse{
		Key:         r.Key,
		Name:        r.Info.Name,
		Code:        r.Info.Code,
		Description: r.Info.Description,
		Count:       r.Count,
		Categories:  r.Categories,
	}
}

func replyToResponse(r chatuc.Reply) chatResponse {
	return chatResponse{
		Response: r.Text,
		Rule:     r.Rule,
		Schemes:  schemesToResponse(r.Schemes),
		Link:     r.Link,
	}
}
