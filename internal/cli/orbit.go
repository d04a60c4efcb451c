package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// orbitCommand creates the orbit command.
func (c *CLI) orbitCommand() *cobra.Command {
	var flags groupFlags

	cmd := &cobra.Command{
		Use:   "orbit <point> [generators...]",
		Short: "Compute the orbit of a point under a group",
		Long: `Compute every point reachable from the given point by repeatedly applying
the generators. Points are listed in discovery order; no stabilizer chain
is built.`,
		Example: `  # Orbit of 0 under a double transposition
  schreier orbit 0 "(0 1)(2 3)"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			point, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("point %q is not an integer", args[0])
			}

			g, err := c.loadGroup(withLogger(cmd.Context(), c.Logger), &flags, args[1:])
			if err != nil {
				return err
			}

			orbit, err := g.Orbit(point)
			if err != nil {
				return err
			}

			printSuccess("Orbit of %d: %v", point, orbit)
			printDetail("%d of %d points reachable", len(orbit), g.Degree())
			return nil
		},
	}

	c.addGroupFlags(cmd, &flags)
	return cmd
}
