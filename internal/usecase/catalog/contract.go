package catalog

import "github.com/yojanadost/yojana/internal/domain/scheme"

// Dataset is the read side of the loaded schemes snapshot.
type Dataset interface {
	Schemes() ([]scheme.Scheme, error)
	Get(id string) (scheme.Scheme, error)
}
