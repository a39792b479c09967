package cli

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/antcolor/pkg/errors"
	pkgio "github.com/matzehuels/antcolor/pkg/io"
	"github.com/matzehuels/antcolor/pkg/pipeline"
)

// generateCommand creates the generate command for writing random graphs.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output  string
		density float64
		seed    uint64
	)

	cmd := &cobra.Command{
		Use:   "generate [vertices]",
		Short: "Write a random graph as an adjacency list",
		Long: `Write a random graph as an adjacency list.

Every pair of vertices is joined with probability --density. The output lists
each edge from both endpoints, one line per vertex. Without -o the list is
written to stdout; an -o path ending in .json writes the JSON graph form.

Examples:
  antcolor generate 15 -o graph.txt
  antcolor generate 100 --density 0.1 --seed 3 > big.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "vertex count must be a number, got %q", args[0])
			}
			if !cmd.Flags().Changed("seed") {
				seed = rand.Uint64()
			}

			g, err := pipeline.GenerateGraph(n, density, seed)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("Generated graph",
				"vertices", g.N(), "edges", g.EdgeCount(), "seed", seed)

			if output == "" {
				w := bufio.NewWriter(os.Stdout)
				if err := pkgio.WriteAdjacencyList(g, w); err != nil {
					return err
				}
				return w.Flush()
			}
			if err := pipeline.SaveGraph(g, output); err != nil {
				return err
			}
			printSuccess("Generated %d vertices, %d edges", g.N(), g.EdgeCount())
			printFile(output)
			printNewline()
			printNextStep("Color it", fmt.Sprintf("%s color %s", appName, output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().Float64Var(&density, "density", defaultDensity, "edge probability")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default: random)")

	return cmd
}
