package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schreier/pkg/errors"
	"github.com/matzehuels/schreier/pkg/perm"
	"github.com/matzehuels/schreier/pkg/render"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Generate SVG visualizations of cycles and orbits",
	}

	cmd.AddCommand(c.renderCycleCommand())
	cmd.AddCommand(c.renderOrbitCommand())
	return cmd
}

// renderCycleCommand creates the "render cycle" subcommand.
func (c *CLI) renderCycleCommand() *cobra.Command {
	var output string
	var dotOnly bool
	var showFixed bool
	var degree int

	cmd := &cobra.Command{
		Use:   "cycle <permutation>",
		Short: "Render the cycle structure of a permutation",
		Example: `  # Cycle diagram of a product of two cycles
  schreier render cycle "(0 1)(2 3 4)" -o cycles.svg

  # DOT source only
  schreier render cycle "(0 1 2)" --dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateNotation(args[0]); err != nil {
				return err
			}
			parseDegree := -1
			if degree != 0 {
				if err := errors.ValidateDegree(degree); err != nil {
					return err
				}
				parseDegree = degree
			}
			p, err := perm.ParseCycles(args[0], parseDegree)
			if err != nil {
				return err
			}

			dot := render.CycleDOT(p, render.Options{ShowFixedPoints: showFixed})
			if dotOnly {
				return writeOutput([]byte(dot), output)
			}

			svg, err := render.RenderSVG(cmd.Context(), dot)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			if err := writeOutput(svg, output); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Cycle diagram generated")
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&dotOnly, "dot", false, "emit DOT source instead of SVG")
	cmd.Flags().BoolVar(&showFixed, "fixed", false, "include fixed points")
	cmd.Flags().IntVarP(&degree, "degree", "n", 0, "domain size (inferred if omitted)")
	return cmd
}

// renderOrbitCommand creates the "render orbit" subcommand.
func (c *CLI) renderOrbitCommand() *cobra.Command {
	var flags groupFlags
	var output string
	var dotOnly bool

	cmd := &cobra.Command{
		Use:   "orbit <point> [generators...]",
		Short: "Render the orbit of a point as an action graph",
		Example: `  schreier render orbit 0 "(0 1)(2 3)" "(1 2)" -o orbit.svg`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			point, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("point %q is not an integer", args[0])
			}

			g, err := c.loadGroup(withLogger(cmd.Context(), c.Logger), &flags, args[1:])
			if err != nil {
				return err
			}

			dot, err := render.OrbitDOT(g.Degree(), point, g.Generators())
			if err != nil {
				return err
			}
			if dotOnly {
				return writeOutput([]byte(dot), output)
			}

			svg, err := render.RenderSVG(cmd.Context(), dot)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			if err := writeOutput(svg, output); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Orbit diagram generated")
				printFile(output)
			}
			return nil
		},
	}

	c.addGroupFlags(cmd, &flags)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&dotOnly, "dot", false, "emit DOT source instead of SVG")
	return cmd
}

// writeOutput writes data to the given file, or stdout when path is empty.
func writeOutput(data []byte, path string) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
