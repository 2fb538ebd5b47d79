package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yojanadost/yojana/internal/domain"
	"github.com/yojanadost/yojana/internal/domain/scheme"
)

const maxDatasetBytes = 32 << 20

// Loader reads the schemes dataset from a file path or an http(s) URL.
type Loader struct {
	source  string
	timeout time.Duration
	client  *http.Client
}

// NewLoader creates a dataset loader. A zero timeout disables the deadline.
func NewLoader(source string, timeout time.Duration) *Loader {
	return &Loader{
		source:  source,
		timeout: timeout,
		client:  &http.Client{},
	}
}

// Source returns the configured dataset location.
func (l *Loader) Source() string { return l.source }

// Load fetches and decodes the dataset. Every failure is a *domain.DatasetLoadError.
func (l *Loader) Load(ctx context.Context) ([]scheme.Scheme, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	var (
		raw []byte
		err error
	)
	if isRemote(l.source) {
		raw, err = l.fetch(ctx)
	} else {
		raw, err = os.ReadFile(filepath.Clean(l.source))
	}
	if err != nil {
		return nil, domain.NewDatasetLoadError(l.source, err)
	}

	schemes, err := Decode(raw)
	if err != nil {
		return nil, domain.NewDatasetLoadError(l.source, err)
	}
	return schemes, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDatasetBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// Decode parses a JSON array of schemes, rejecting duplicate ids.
func Decode(raw []byte) ([]scheme.Scheme, error) {
	var dtos []schemeDTO
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&dtos); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode dataset: unexpected data after the scheme array")
	}

	seen := make(map[string]struct{}, len(dtos))
	schemes := make([]scheme.Scheme, 0, len(dtos))
	for i, d := range dtos {
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("record %d: %w: %q", i, domain.ErrDuplicateScheme, d.ID)
		}
		s, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		seen[d.ID] = struct{}{}
		schemes = append(schemes, s)
	}
	return schemes, nil
}

// Encode renders schemes as the dataset JSON array.
func Encode(schemes []scheme.Scheme) ([]byte, error) {
	dtos := make([]schemeDTO, len(schemes))
	for i, s := range schemes {
		dtos[i] = fromDomain(s)
	}
	b, err := json.Marshal(dtos)
	if err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}
	return b, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
