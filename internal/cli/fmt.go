package cli

import (
	"fmt"
	"io"

	"github.com/dgallion1/docoutline/internal/bkm"
	"github.com/spf13/cobra"
)

var fmtWrite bool

var fmtCmd = &cobra.Command{
	Use:   "fmt <file.bkm>...",
	Short: "Rewrite .bkm files in canonical form",
	Long: `Parse each .bkm file and print it in canonical form. With -w the files are
rewritten in place instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFmt(cmd.OutOrStdout(), args, fmtWrite)
	},
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Write result to the source file instead of stdout")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(w io.Writer, paths []string, write bool) error {
	for _, path := range paths {
		var set bkm.Set
		if err := bkm.ParseFile(path, &set); err != nil {
			return err
		}
		if !write {
			if err := bkm.NewEncoder(w).Encode(set); err != nil {
				return err
			}
			continue
		}
		if err := bkm.Export(set, path); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
