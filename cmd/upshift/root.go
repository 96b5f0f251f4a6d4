package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conn-castle/upshift/internal/catalog"
	"github.com/conn-castle/upshift/internal/messages"
	"github.com/conn-castle/upshift/internal/terminal"
)

var (
	getwd         = os.Getwd
	loadCatalog   = catalog.Default
	isInteractive = terminal.IsInteractive
	isTerminal    = terminal.IsTerminal
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	root    string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().Bool("version", false, messages.RootVersionFlag)
	cmd.PersistentFlags().StringVar(&opts.root, "root", "", messages.RootFlagRoot)
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, messages.RootFlagVerbose)

	cmd.AddCommand(
		newRunCmd(opts),
		newPlanCmd(opts),
		newListCmd(),
	)
	return cmd
}

// projectRoot returns the absolute project root from --root or the working
// directory.
func (o *rootOptions) projectRoot() (string, error) {
	root := strings.TrimSpace(o.root)
	if root == "" {
		return getwd()
	}
	return filepath.Abs(root)
}
