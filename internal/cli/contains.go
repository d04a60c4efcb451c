package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schreier/pkg/errors"
	"github.com/matzehuels/schreier/pkg/perm"
)

// containsCommand creates the contains command.
func (c *CLI) containsCommand() *cobra.Command {
	var flags groupFlags

	cmd := &cobra.Command{
		Use:   "contains <element> [generators...]",
		Short: "Test whether a permutation is a group element",
		Long: `Test membership by stripping the candidate through the stabilizer chain of
the group generated by the remaining arguments. The element and the
generators must act on the same domain.

The command exits 0 when the element is a member and 1 when it is not.`,
		Example: `  # Is (0 2) in the group generated by (0 1) and (1 2)?
  schreier contains "(0 2)" "(0 1)" "(1 2)"

  # Against a stored group document
  schreier contains "(0 2)" -f group.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGroup(withLogger(cmd.Context(), c.Logger), &flags, args[1:])
			if err != nil {
				return err
			}

			if err := errors.ValidateNotation(args[0]); err != nil {
				return err
			}
			element, err := perm.ParseCycles(args[0], g.Degree())
			if err != nil {
				return fmt.Errorf("element %q: %w", args[0], err)
			}

			ok, err := g.Contains(element)
			if errors.Is(err, errors.ErrCodeUnverifiedGroup) {
				printWarning("Chain not verified: membership is probable, not proven")
			} else if err != nil {
				return err
			}

			if ok {
				printSuccess("%s is an element", StyleHighlight.Render(perm.FormatCycles(element)))
				return nil
			}
			printInfo("%s is not an element", StyleValue.Render(perm.FormatCycles(element)))
			cmd.SilenceErrors = true
			return fmt.Errorf("not a member")
		},
	}

	c.addGroupFlags(cmd, &flags)
	return cmd
}
