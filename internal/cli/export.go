package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/spf13/cobra"
)

var exportForce bool

var exportCmd = &cobra.Command{
	Use:   "export <document>...",
	Short: "Write <document>.bkm from each document's own outline",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.OutOrStdout(), newResolver(), args, exportForce)
	},
}

func init() {
	exportCmd.Flags().BoolVarP(&exportForce, "force", "f", false, "Overwrite existing .bkm files")
	rootCmd.AddCommand(exportCmd)
}

func runExport(w io.Writer, r *outline.Resolver, docs []string, overwrite bool) error {
	failed := 0
	for _, doc := range docs {
		out, err := r.Export(doc, overwrite)
		switch {
		case err == nil:
			fmt.Fprintf(w, "%s %s\n", successStyle.Render("wrote"), out)
		case errors.Is(err, outline.ErrExists):
			fmt.Fprintf(w, "%s %s %s\n", warnStyle.Render("skipped"), doc, dimStyle.Render("(exists, use --force)"))
		default:
			failed++
			fmt.Fprintf(w, "%s %s: %v\n", errorStyle.Render("failed"), doc, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d exports failed", failed, len(docs))
	}
	return nil
}
