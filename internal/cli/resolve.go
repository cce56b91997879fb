package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/pinboard/internal/domain"
)

// resolveNoteID accepts a full note ID or an unambiguous prefix of one.
func resolveNoteID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("note ID is required")
	}
	notes, err := app.Store.ListNotes(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, n := range notes {
		if n.ID == input {
			return n.ID, nil
		}
		if strings.HasPrefix(n.ID, input) {
			matches = append(matches, n.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("note not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("note ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTag finds a tag by exact ID, then by case-insensitive name, then
// by unambiguous ID prefix.
func resolveTag(tags []domain.Tag, input string) (domain.Tag, error) {
	for _, t := range tags {
		if t.ID == input {
			return t, nil
		}
	}
	for _, t := range tags {
		if strings.EqualFold(t.Name, input) {
			return t, nil
		}
	}
	var matches []domain.Tag
	for _, t := range tags {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Tag{}, fmt.Errorf("tag not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return domain.Tag{}, fmt.Errorf("tag %q is ambiguous (%d matches)", input, len(matches))
	}
}

func resolveTagIDs(ctx context.Context, app *App, inputs []string) ([]string, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	tags, err := app.Store.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		t, err := resolveTag(tags, in)
		if err != nil {
			return nil, err
		}
		ids = append(ids, t.ID)
	}
	return domain.NormalizeTagIDs(ids), nil
}

func parseColor(s string) (domain.Color, error) {
	c := domain.Color(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidColor, s)
	}
	return c, nil
}

func parseImportance(s string) (domain.Importance, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "med" {
		v = string(domain.ImportanceMedium)
	}
	i := domain.Importance(v)
	if !i.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidImportance, s)
	}
	return i, nil
}
