package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/conn-castle/upshift/internal/config"
	"github.com/conn-castle/upshift/internal/messages"
	"github.com/conn-castle/upshift/internal/project"
)

// environment is what every command needs before doing real work.
type environment struct {
	root   string
	config *config.Config
}

func loadEnvironment(opts *rootOptions) (environment, error) {
	root, err := opts.projectRoot()
	if err != nil {
		return environment{}, err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return environment{}, err
	}
	return environment{root: root, config: cfg}, nil
}

// targetVersion picks --to, then the configured target, then latest.
func (e environment) targetVersion(flag string) string {
	if to := strings.TrimSpace(flag); to != "" {
		return to
	}
	if to := strings.TrimSpace(e.config.Target); to != "" {
		return to
	}
	return "latest"
}

// installedVersion returns --from when given, otherwise the version found in
// the project. Detection problems are warnings: the run falls back to the
// earliest release.
func (e environment) installedVersion(cmd *cobra.Command, flag string) string {
	if from := strings.TrimSpace(flag); from != "" {
		return from
	}
	stderr := cmd.ErrOrStderr()
	pkg := e.config.Package()
	det, err := project.Detect(e.root, pkg)
	if err != nil {
		warn(stderr, messages.RunFromDetectFailedFmt, err)
		return ""
	}
	if !det.Found {
		warn(stderr, messages.RunFromUnknownFmt, pkg, messages.RunManifestSource)
		return ""
	}
	source := messages.RunManifestSource
	if det.Source == project.SourceInstalled {
		source = fmt.Sprintf(messages.RunInstalledSourceFmt, pkg)
	}
	_, _ = fmt.Fprintf(stderr, messages.RunFromDetectedFmt, det.Version, source)
	return det.Version.String()
}

func warn(out io.Writer, format string, args ...any) {
	_, _ = color.New(color.FgYellow).Fprintf(out, format, args...)
}

// outputFormat resolves --format and its --json shorthand.
func outputFormat(format string, jsonOut bool) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if jsonOut {
		if format != "" && format != messages.FormatText && format != messages.FormatJSON {
			return "", fmt.Errorf(messages.OutputFormatFlagsClash, format)
		}
		return messages.FormatJSON, nil
	}
	switch format {
	case "", messages.FormatText:
		return messages.FormatText, nil
	case messages.FormatJSON, messages.FormatYAML:
		return format, nil
	}
	return "", fmt.Errorf(messages.RunUnknownFormatFmt, format)
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(out io.Writer, format string, v any) error {
	switch format {
	case messages.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case messages.FormatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return errors.Join(err, encoder.Close())
		}
		return encoder.Close()
	}
	return fmt.Errorf(messages.RunUnknownFormatFmt, format)
}

// errWriter wraps an io.Writer and accumulates the first error encountered,
// allowing sequential writes without per-call error checks.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, args...)
}

// colorPrintf writes through c so that color.NoColor is honoured.
func (ew *errWriter) colorPrintf(c *color.Color, format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = c.Fprintf(ew.w, format, args...)
}
