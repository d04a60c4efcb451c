package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schreier/pkg/catalog"
)

// catalogCommand creates the catalog command for managing named groups.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage named groups in the catalog",
		Long: `Store groups under names so later queries can refer to them without
re-entering generator lists. The catalog requires a configured MongoDB
(server.mongo_uri in the config file).`,
	}

	cmd.AddCommand(c.catalogSaveCommand())
	cmd.AddCommand(c.catalogListCommand())
	cmd.AddCommand(c.catalogShowCommand())
	cmd.AddCommand(c.catalogDeleteCommand())
	return cmd
}

// openCatalog connects to the configured catalog store.
func (c *CLI) openCatalog(ctx context.Context) (catalog.Store, error) {
	if c.Config.Server.MongoURI == "" {
		return nil, fmt.Errorf("no catalog configured: set server.mongo_uri in the config file")
	}
	return c.serverCatalog(ctx)
}

// catalogSaveCommand creates the "catalog save" subcommand.
func (c *CLI) catalogSaveCommand() *cobra.Command {
	var flags groupFlags

	cmd := &cobra.Command{
		Use:   "save <name> [generators...]",
		Short: "Compute a group's order and store it under a name",
		Example: `  schreier catalog save sym5 "(0 1)" "(0 1 2 3 4)"`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openCatalog(ctx)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			g, err := c.loadGroup(withLogger(ctx, c.Logger), &flags, args[1:])
			if err != nil {
				return err
			}
			entry, err := catalog.NewEntry(args[0], g)
			if err != nil {
				return err
			}
			if err := store.Put(ctx, entry); err != nil {
				return err
			}

			printSuccess("Saved %s", StyleHighlight.Render(entry.Name))
			printKeyValue("ID", entry.ID)
			printKeyValue("Order", entry.Order)
			return nil
		},
	}

	c.addGroupFlags(cmd, &flags)
	return cmd
}

// catalogListCommand creates the "catalog list" subcommand.
func (c *CLI) catalogListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openCatalog(ctx)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			entries, err := store.List(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("Catalog is empty")
				return nil
			}
			for _, e := range entries {
				printInfo("%s  %s", StyleValue.Render(e.Name),
					StyleDim.Render(fmt.Sprintf("degree %d · order %s", e.Degree, e.Order)))
			}
			return nil
		},
	}
}

// catalogShowCommand creates the "catalog show" subcommand.
func (c *CLI) catalogShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a stored group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openCatalog(ctx)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			e, err := store.GetByName(ctx, args[0])
			if err != nil {
				return err
			}
			printKeyValue("Name", e.Name)
			printKeyValue("ID", e.ID)
			printKeyValue("Degree", fmt.Sprintf("%d", e.Degree))
			printKeyValue("Generators", strings.Join(e.Generators, "  "))
			printKeyValue("Order", e.Order)
			printKeyValue("Verified", fmt.Sprintf("%t", e.Verified))
			return nil
		},
	}
}

// catalogDeleteCommand creates the "catalog delete" subcommand.
func (c *CLI) catalogDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openCatalog(ctx)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			e, err := store.GetByName(ctx, args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(ctx, e.ID); err != nil {
				return err
			}
			printSuccess("Deleted %s", e.Name)
			return nil
		},
	}
}
