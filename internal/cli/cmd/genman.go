package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// NewGenManCmd returns the command that writes a section 1 man page for
// photoframe and each of its control subcommands into a directory.
func NewGenManCmd(rootCmd *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "genman <output-dir>",
		Short: "Write man pages for photoframe and its control commands",
		Long: `Writes photoframe.1 plus one page per subcommand (status, next, stop)
into output-dir, which must already exist.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "PHOTOFRAME",
				Section: "1",
				Source:  "photoframe",
				Manual:  "Photoframe Manual",
			}
			return doc.GenManTree(rootCmd, header, filepath.Clean(args[0]))
		},
	}
}
