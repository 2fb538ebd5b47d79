package chat

import (
	"context"

	"github.com/yojanadost/yojana/internal/domain/scheme"
)

// Dataset is the read side of the loaded schemes snapshot.
type Dataset interface {
	Schemes() ([]scheme.Scheme, error)
}

// Responder answers free-text messages the local rules could not.
type Responder interface {
	Reply(ctx context.Context, message string) (string, error)
}
