package ports

import (
	"context"

	"github.com/aretw0/shrdlite/pkg/domain"
)

// Parser turns one utterance into its parse trees. Implementations wrap
// an external grammar; the core never tokenizes text itself.
//
// An utterance with no parse returns domain.ErrNoParse.
type Parser interface {
	Parse(ctx context.Context, utterance string) ([]domain.ParseResult, error)
}
