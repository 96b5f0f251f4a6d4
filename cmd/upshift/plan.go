package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/conn-castle/upshift/internal/messages"
	"github.com/conn-castle/upshift/internal/migrate"
)

func newPlanCmd(root *rootOptions) *cobra.Command {
	var (
		to      string
		from    string
		format  string
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   messages.PlanUse,
		Short: messages.PlanShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := outputFormat(format, jsonOut)
			if err != nil {
				return err
			}
			env, err := loadEnvironment(root)
			if err != nil {
				return err
			}
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			plan, err := migrate.Resolve(cat, env.installedVersion(cmd, from), env.targetVersion(to))
			if err != nil {
				return err
			}
			if outFormat != messages.FormatText {
				return writeStructured(cmd.OutOrStdout(), outFormat, plan)
			}
			return renderPlanText(cmd.OutOrStdout(), plan)
		},
	}
	cmd.Flags().StringVar(&to, "to", "", messages.RunFlagTo)
	cmd.Flags().StringVar(&from, "from", "", messages.RunFlagFrom)
	cmd.Flags().StringVar(&format, "format", messages.FormatText, messages.RunFlagFormat)
	cmd.Flags().BoolVar(&jsonOut, "json", false, messages.RunFlagJSON)
	return cmd
}

func renderPlanText(out io.Writer, plan *migrate.Plan) error {
	ew := &errWriter{w: out}
	ew.printf(messages.PlanHeaderFmt, displayVersion(plan.From), displayVersion(plan.To))
	if len(plan.Transforms) == 0 {
		ew.println(messages.ReportUpToDate)
		return ew.err
	}
	writeTransformSection(ew, plan.Transforms)
	return ew.err
}
