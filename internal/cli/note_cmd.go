package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/pinboard/internal/board"
	"github.com/alexanderramin/pinboard/internal/cli/formatter"
	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes"},
		Short:   "Manage notes without opening the board",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			return requireStore(app)
		},
	}

	cmd.AddCommand(
		newNoteAddCmd(app),
		newNoteListCmd(app),
		newNoteShowCmd(app),
		newNoteEditCmd(app),
		newNoteMoveCmd(app),
		newNoteResizeCmd(app),
		newNoteLockCmd(app, true),
		newNoteLockCmd(app, false),
		newNoteTagCmd(app),
		newNoteRemoveCmd(app),
	)

	return cmd
}

func newNoteAddCmd(app *App) *cobra.Command {
	var (
		content, color, importance string
		x, y, width, height        float64
		tags                       []string
		locked, wizard             bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Pin a new note",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			n := &domain.Note{Content: content}

			if wizard || (content == "" && app.interactive()) {
				catalog, err := app.Store.ListTags(ctx)
				if err != nil {
					return err
				}
				v := noteFormValues{Color: color, Importance: importance}
				if err := newNoteForm(&v, catalog).Run(); err != nil {
					return err
				}
				n = v.note()
			} else {
				if color != "" {
					c, err := parseColor(color)
					if err != nil {
						return err
					}
					n.Color = c
				}
				if importance != "" {
					i, err := parseImportance(importance)
					if err != nil {
						return err
					}
					n.Importance = i
				}
				ids, err := resolveTagIDs(ctx, app, tags)
				if err != nil {
					return err
				}
				n.TagIDs = ids
			}

			n.ID = uuid.New().String()
			n.X, n.Y = x, y
			n.Width, n.Height = width, height
			n.IsLocked = locked

			created, err := app.Store.CreateNote(ctx, n)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pinned note %s at %.0f,%.0f\n", formatter.ShortID(created.ID), created.X, created.Y)
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Note text")
	cmd.Flags().StringVar(&color, "color", "", "Note color (yellow, green, blue, pink, purple, orange)")
	cmd.Flags().StringVar(&importance, "importance", "", "Importance (low, medium, high)")
	cmd.Flags().Float64Var(&x, "x", 0, "Canvas x position")
	cmd.Flags().Float64Var(&y, "y", 0, "Canvas y position")
	cmd.Flags().Float64Var(&width, "width", domain.DefaultNoteWidth, "Width in canvas units")
	cmd.Flags().Float64Var(&height, "height", domain.DefaultNoteHeight, "Height in canvas units")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag name or ID (repeatable)")
	cmd.Flags().BoolVar(&locked, "locked", false, "Create the note locked")
	cmd.Flags().BoolVarP(&wizard, "interactive", "i", false, "Fill in the note with a form")

	return cmd
}

func newNoteListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notes in stacking order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			notes, err := app.Store.ListNotes(ctx)
			if err != nil {
				return err
			}
			tags, err := app.Store.ListTags(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatNoteList(board.Stack(notes), tags))
			return nil
		},
	}
}

func newNoteShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			n, err := findNote(ctx, app, args[0])
			if err != nil {
				return err
			}
			tags, err := app.Store.ListTags(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNoteDetail(n, tags, time.Now()))
			return nil
		},
	}
}

func newNoteEditCmd(app *App) *cobra.Command {
	var content, color, importance string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a note's content, color or importance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.NotePatch
			if cmd.Flags().Changed("content") {
				patch = patch.Merge(domain.ContentPatch(content))
			}
			if color != "" {
				c, err := parseColor(color)
				if err != nil {
					return err
				}
				patch = patch.Merge(domain.ColorPatch(c))
			}
			if importance != "" {
				i, err := parseImportance(importance)
				if err != nil {
					return err
				}
				patch = patch.Merge(domain.ImportancePatch(i))
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to change: pass --content, --color or --importance")
			}
			return applyPatch(cmd, app, args[0], patch, "Updated")
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "New note text")
	cmd.Flags().StringVar(&color, "color", "", "New color")
	cmd.Flags().StringVar(&importance, "importance", "", "New importance")

	return cmd
}

func newNoteMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move ID X Y",
		Short: "Move a note to a canvas position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parsePair(args[1], args[2])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := resolveNoteID(ctx, app, args[0])
			if err != nil {
				return err
			}
			n, err := app.Store.UpdatePosition(ctx, id, x, y)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved note %s to %.0f,%.0f\n", formatter.ShortID(n.ID), n.X, n.Y)
			return nil
		},
	}
}

func newNoteResizeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resize ID WIDTH HEIGHT",
		Short: "Resize a note (never below the minimum size)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, h, err := parsePair(args[1], args[2])
			if err != nil {
				return err
			}
			w, h = domain.ClampSize(w, h)
			return applyPatch(cmd, app, args[0], domain.SizePatch(w, h), "Resized")
		},
	}
}

func newNoteLockCmd(app *App, lock bool) *cobra.Command {
	use, short, verb := "lock ID", "Lock a note against changes", "Locked"
	if !lock {
		use, short, verb = "unlock ID", "Unlock a note", "Unlocked"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyPatch(cmd, app, args[0], domain.LockPatch(lock), verb)
		},
	}
}

func newNoteTagCmd(app *App) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "tag ID [TAG...]",
		Short: "Replace a note's tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && !clear {
				return fmt.Errorf("name at least one tag, or pass --clear")
			}
			ids, err := resolveTagIDs(cmd.Context(), app, args[1:])
			if err != nil {
				return err
			}
			return applyPatch(cmd, app, args[0], domain.TagsPatch(ids), "Tagged")
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Remove every tag")

	return cmd
}

func newNoteRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			n, err := findNote(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !yes && app.interactive() {
				ok := false
				title := fmt.Sprintf("Delete note %q?", n.Preview(30))
				if err := confirmForm(title, &ok).Run(); err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Kept.")
					return nil
				}
			}
			if err := app.Store.DeleteNote(ctx, n.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted note %s\n", formatter.ShortID(n.ID))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func applyPatch(cmd *cobra.Command, app *App, input string, patch domain.NotePatch, verb string) error {
	ctx := cmd.Context()
	id, err := resolveNoteID(ctx, app, input)
	if err != nil {
		return err
	}
	n, err := app.Store.UpdateNote(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s note %s\n", verb, formatter.ShortID(n.ID))
	return nil
}

func findNote(ctx context.Context, app *App, input string) (*domain.Note, error) {
	id, err := resolveNoteID(ctx, app, input)
	if err != nil {
		return nil, err
	}
	notes, err := app.Store.ListNotes(ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, fmt.Errorf("note not found: %q", input)
}

func parsePair(a, b string) (float64, float64, error) {
	x, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", a)
	}
	y, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", b)
	}
	return x, y, nil
}
