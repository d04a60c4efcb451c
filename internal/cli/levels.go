package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schreier/pkg/errors"
	"github.com/matzehuels/schreier/pkg/groupio"
)

// levelsCommand creates the levels command.
func (c *CLI) levelsCommand() *cobra.Command {
	var flags groupFlags

	cmd := &cobra.Command{
		Use:   "levels [generators...]",
		Short: "Inspect the stabilizer chain level by level",
		Long: `Build the stabilizer chain and print one line per level: the base point,
its orbit under the level's generators, and the generator count. The orbit
sizes multiply to the group order.`,
		Example: `  schreier levels "(0 1)" "(0 1 2 3 4)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGroup(withLogger(cmd.Context(), c.Logger), &flags, args)
			if err != nil {
				return err
			}

			doc, err := groupio.Summarize(g)
			if errors.Is(err, errors.ErrCodeUnverifiedGroup) {
				printWarning("Chain not verified: orbit sizes are probable lower bounds")
			} else if err != nil {
				return err
			}

			printSuccess("Order %s over %d levels", StyleHighlight.Render(doc.Order), len(doc.Levels))
			printKeyValue("Base", fmt.Sprintf("%v", doc.Base))
			printNewline()
			for i, lv := range doc.Levels {
				printInfo("level %d: base %d, orbit size %d, %d generators",
					i, lv.BasePoint, len(lv.Orbit), len(lv.Generators))
				printDetail("orbit: %v", lv.Orbit)
				if len(lv.Generators) > 0 {
					printDetail("generators: %s", strings.Join(lv.Generators, "  "))
				}
			}
			return nil
		},
	}

	c.addGroupFlags(cmd, &flags)
	return cmd
}
