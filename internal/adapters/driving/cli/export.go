package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
	"github.com/custodia-labs/repoviz-cli/internal/viz"
)

var (
	exportOut  string
	exportKind string
	exportSize int
)

var exportCmd = &cobra.Command{
	Use:   "export [repository-url]",
	Short: "Export a repository visualization as SVG",
	Long: `Fetches a repository and writes a visualization to an SVG file.

Kinds:
  radial   - radial tree of the repository structure
  commits  - line chart of the last 12 months of commit activity`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "repoviz.svg", "output file path")
	exportCmd.Flags().StringVar(&exportKind, "kind", "radial", "visualization kind: radial or commits")
	exportCmd.Flags().IntVar(&exportSize, "size", 800, "canvas size in pixels")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if config == nil || config.SessionService == nil || config.VisualizerService == nil {
		return errors.New("services not configured")
	}

	ctx := cmd.Context()

	if _, err := config.SessionService.Resume(ctx); err != nil {
		if errors.Is(err, domain.ErrAuthRequired) {
			return errors.New("not logged in: run 'repoviz login' first")
		}
		return fmt.Errorf("restoring session: %w", err)
	}

	snap, err := config.VisualizerService.Visualize(ctx, args[0])
	if err != nil {
		return fmt.Errorf("fetching repository: %w", err)
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	switch exportKind {
	case "radial":
		viz.RenderRadialTree(f, snap.Hierarchy, exportSize)
	case "commits":
		months := domain.ComputeInsights(snap, time.Now()).MonthlyCommits
		if len(months) == 0 {
			return errors.New("commit statistics are still being computed, try again shortly")
		}
		viz.RenderCommitActivity(f, months, exportSize, exportSize/2)
	default:
		return fmt.Errorf("unknown kind %q: use radial or commits", exportKind)
	}

	cmd.Printf("Wrote %s visualization for %s to %s\n", exportKind, snap.Details.FullName, exportOut)
	return nil
}
