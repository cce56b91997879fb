package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/pinboard/internal/domain"
)

type authorKey struct{}

// WithAuthor attaches the name of the person making a change to ctx. The
// note service stamps it on the notes that change.
func WithAuthor(ctx context.Context, author string) context.Context {
	return context.WithValue(ctx, authorKey{}, strings.TrimSpace(author))
}

// AuthorFrom returns the author attached to ctx, or fallback.
func AuthorFrom(ctx context.Context, fallback string) string {
	a, _ := ctx.Value(authorKey{}).(string)
	return domain.CoalesceStr(a, fallback)
}
