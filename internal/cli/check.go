package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/dgallion1/docoutline/internal/bkm"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.bkm>...",
	Short: "Validate .bkm files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(w io.Writer, paths []string) error {
	bad := 0
	for _, path := range paths {
		var set bkm.Set
		err := bkm.ParseFile(path, &set)
		if err == nil {
			fmt.Fprintf(w, "%s %s %s\n", successStyle.Render("ok"), path,
				dimStyle.Render(fmt.Sprintf("(%d entries)", set[0].Count())))
			continue
		}
		bad++
		var perr *bkm.ParseError
		if errors.As(err, &perr) {
			fmt.Fprintf(w, "%s %s:%d: %v\n", errorStyle.Render("invalid"), path, perr.Line, perr.Err)
		} else {
			fmt.Fprintf(w, "%s %s: %v\n", errorStyle.Render("invalid"), path, err)
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d files invalid", bad, len(paths))
	}
	return nil
}
