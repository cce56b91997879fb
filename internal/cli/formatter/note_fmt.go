package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pinboard/internal/domain"
)

// tagNames resolves tag IDs against the catalog; unknown IDs are skipped.
func tagNames(ids []string, catalog map[string]domain.Tag) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if t, ok := catalog[id]; ok {
			names = append(names, t.Name)
		}
	}
	return names
}

// FormatNoteList renders notes as a table in the given order.
func FormatNoteList(notes []*domain.Note, tags []domain.Tag) string {
	if len(notes) == 0 {
		return Dim("No notes on the board.") + "\n"
	}
	catalog := domain.TagIndex(tags)
	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		rows = append(rows, []string{
			TruncID(n.ID),
			ColorSwatch(n.Color),
			ImportanceBadge(n.Importance),
			LockIndicator(n.IsLocked),
			fmt.Sprintf("%.0f,%.0f", n.X, n.Y),
			fmt.Sprintf("%.0fx%.0f", n.Width, n.Height),
			fmt.Sprintf("%d", n.ZIndex),
			strings.Join(tagNames(n.TagIDs, catalog), ", "),
			n.Preview(40),
		})
	}
	return RenderTable([]string{"ID", "COLOR", "IMP", "", "POS", "SIZE", "Z", "TAGS", "CONTENT"}, rows)
}

// FormatNoteDetail renders one note with every field.
func FormatNoteDetail(n *domain.Note, tags []domain.Tag, now time.Time) string {
	catalog := domain.TagIndex(tags)
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", StyleDim.Render(fmt.Sprintf("%-11s", label)), value)
	}
	line("ID", n.ID)
	line("Color", ColorSwatch(n.Color))
	line("Importance", ImportanceBadge(n.Importance))
	if n.IsLocked {
		line("Locked", StyleRed.Render("yes"))
	} else {
		line("Locked", "no")
	}
	line("Position", fmt.Sprintf("%.0f, %.0f", n.X, n.Y))
	line("Size", fmt.Sprintf("%.0f x %.0f", n.Width, n.Height))
	line("Z-index", fmt.Sprintf("%d", n.ZIndex))
	if names := tagNames(n.TagIDs, catalog); len(names) > 0 {
		line("Tags", StylePurple.Render(strings.Join(names, ", ")))
	}
	if n.Author != "" {
		line("Author", n.Author)
	}
	line("Updated", RelativeTime(n.UpdatedAt, now))

	content := n.Content
	if strings.TrimSpace(content) == "" {
		content = Dim("(empty)")
	}
	b.WriteString("\n")
	b.WriteString(content)
	return RenderBox("Note", b.String())
}

// FormatTagList renders the tag catalog with the number of notes per tag.
func FormatTagList(tags []domain.Tag, notes []*domain.Note) string {
	if len(tags) == 0 {
		return Dim("No tags yet.") + "\n"
	}
	counts := make(map[string]int)
	for _, n := range notes {
		for _, id := range n.TagIDs {
			counts[id]++
		}
	}
	rows := make([][]string, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, []string{
			TruncID(t.ID),
			StylePurple.Render(t.Name),
			t.Color,
			fmt.Sprintf("%d", counts[t.ID]),
		})
	}
	return RenderTable([]string{"ID", "NAME", "COLOR", "NOTES"}, rows)
}
