package yojana

import "github.com/yojanadost/yojana/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrSchemeNotFound     = domain.ErrSchemeNotFound
	ErrInvalidQuery       = domain.ErrInvalidQuery
	ErrInvalidSession     = domain.ErrInvalidSession
	ErrInvalidPreferences = domain.ErrInvalidPreferences
	ErrDatasetUnavailable = domain.ErrDatasetUnavailable
	ErrEmptyDataset       = domain.ErrEmptyDataset
	ErrDuplicateScheme    = domain.ErrDuplicateScheme
	ErrChatProviderError  = domain.ErrChatProviderError
	ErrRateLimited        = domain.ErrRateLimited
)
