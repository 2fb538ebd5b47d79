package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDataset is a non-fatal warning: every query over the dataset returns zero results.
	ErrEmptyDataset = errors.New("empty dataset")
	// ErrDatasetUnavailable signals that no dataset snapshot has been loaded.
	ErrDatasetUnavailable = errors.New("dataset unavailable")
	// ErrDuplicateScheme signals two schemes sharing one id.
	ErrDuplicateScheme = errors.New("duplicate scheme id")
	// ErrSchemeNotFound signals a missing scheme.
	ErrSchemeNotFound = errors.New("scheme not found")
	// ErrInvalidQuery signals malformed query parameters.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidSession signals a malformed session identifier.
	ErrInvalidSession = errors.New("invalid session")
	// ErrInvalidPreferences signals preferences that fail validation.
	ErrInvalidPreferences = errors.New("invalid preferences")

	// ErrChatProviderError signals a remote chat responder failure.
	ErrChatProviderError = errors.New("chat provider error")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)

// DatasetLoadError wraps ErrDatasetUnavailable with the source that failed to load.
type DatasetLoadError struct {
	Source string
	Err    error
}

func (e *DatasetLoadError) Error() string {
	return fmt.Sprintf("load dataset from %s: %v", e.Source, e.Err)
}

func (e *DatasetLoadError) Unwrap() []error { return []error{ErrDatasetUnavailable, e.Err} }

// NewDatasetLoadError creates a dataset load error.
func NewDatasetLoadError(source string, err error) error {
	return &DatasetLoadError{Source: source, Err: err}
}
