package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/conn-castle/upshift/internal/catalog"
	"github.com/conn-castle/upshift/internal/messages"
)

func newListCmd() *cobra.Command {
	var (
		format    string
		jsonOut   bool
		showRules bool
	)
	cmd := &cobra.Command{
		Use:   messages.ListUse,
		Short: messages.ListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := outputFormat(format, jsonOut)
			if err != nil {
				return err
			}
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			releases := cat.Releases()
			if outFormat != messages.FormatText {
				return writeStructured(cmd.OutOrStdout(), outFormat, releases)
			}
			return renderReleasesText(cmd.OutOrStdout(), releases, showRules)
		},
	}
	cmd.Flags().StringVar(&format, "format", messages.FormatText, messages.RunFlagFormat)
	cmd.Flags().BoolVar(&jsonOut, "json", false, messages.RunFlagJSON)
	cmd.Flags().BoolVar(&showRules, "rules", false, messages.ListFlagRules)
	return cmd
}

func renderReleasesText(out io.Writer, releases []catalog.Release, showRules bool) error {
	ew := &errWriter{w: out}
	for _, release := range releases {
		ew.printf(messages.ListReleaseFmt, release.Version)
		for _, def := range release.Codemods {
			ew.printf(messages.ListCodemodFmt, def.ID, def.Description)
			if !showRules {
				continue
			}
			for _, rule := range def.Rules {
				ew.printf(messages.ListRuleFmt, rule.Kind, rule.From, rule.To)
			}
		}
	}
	return ew.err
}
