package cli

import (
	"fmt"
	"io"

	"github.com/dgallion1/docoutline/internal/bkm"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/spf13/cobra"
)

var showRaw bool

var showCmd = &cobra.Command{
	Use:   "show <document>",
	Short: "Print the outline shown for a document",
	Long: `Print the outline shown for a document: its <document>.bkm file when that
loads, and the outline the document carries itself otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd.OutOrStdout(), newResolver(), args[0], showRaw)
	},
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "bkm", false, "Print the outline in .bkm form")
	rootCmd.AddCommand(showCmd)
}

func runShow(w io.Writer, r *outline.Resolver, doc string, raw bool) error {
	res, err := r.Resolve(doc)
	if err != nil {
		return err
	}
	if !raw {
		renderOutline(w, doc, res)
		return nil
	}
	if !res.HasEntries() {
		return fmt.Errorf("%s: %w", doc, bkm.ErrEmptyDocument)
	}
	_, err = w.Write(bkm.Marshal(res.Set))
	return err
}
