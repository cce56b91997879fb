package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorFrom(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "fallback", AuthorFrom(ctx, "fallback"))
	assert.Equal(t, "ada", AuthorFrom(WithAuthor(ctx, "  ada "), "fallback"))
	assert.Equal(t, "fallback", AuthorFrom(WithAuthor(ctx, "   "), "fallback"))
}
