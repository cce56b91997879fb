package cli

import (
	"fmt"

	"github.com/alexanderramin/pinboard/internal/cli/formatter"
	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/spf13/cobra"
)

func newTagCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tag",
		Aliases: []string{"tags"},
		Short:   "Manage the tag catalog",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			return requireStore(app)
		},
	}

	cmd.AddCommand(
		newTagAddCmd(app),
		newTagListCmd(app),
		newTagRemoveCmd(app),
	)

	return cmd
}

func newTagAddCmd(app *App) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add [NAME]",
		Short: "Add a tag to the catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			if name == "" {
				if !app.interactive() {
					return fmt.Errorf("tag name is required")
				}
				if err := newTagForm(&name, &color).Run(); err != nil {
					return err
				}
			}

			t, err := app.Store.CreateTag(cmd.Context(), &domain.Tag{Name: name, Color: color})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added tag %s (%s)\n", t.Name, formatter.ShortID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Display color, e.g. #83a598")

	return cmd
}

func newTagListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tags and how many notes carry each",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tags, err := app.Store.ListTags(ctx)
			if err != nil {
				return err
			}
			notes, err := app.Store.ListNotes(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTagList(tags, notes))
			return nil
		},
	}
}

func newTagRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm NAME|ID",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a tag and remove it from every note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tags, err := app.Store.ListTags(ctx)
			if err != nil {
				return err
			}
			t, err := resolveTag(tags, args[0])
			if err != nil {
				return err
			}
			if err := app.Store.DeleteTag(ctx, t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted tag %s\n", t.Name)
			return nil
		},
	}
}
