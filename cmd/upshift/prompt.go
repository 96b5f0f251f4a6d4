package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/conn-castle/upshift/internal/messages"
)

var runFormFunc = func(ctx context.Context, form *huh.Form) error {
	return form.RunWithContext(ctx)
}

// confirmForm asks prompt with a huh confirm field. Aborting the form with
// ctrl+c cancels the run rather than declining it.
func confirmForm(ctx context.Context, prompt string) (bool, error) {
	ok := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(prompt).
			Affirmative(messages.ConfirmApplyAffirm).
			Negative(messages.ConfirmApplyNegative).
			Value(&ok),
	))
	if err := runFormFunc(ctx, form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, context.Canceled
		}
		return false, err
	}
	return ok, nil
}

// confirmLine reads a yes/no answer from in. Anything but an explicit yes
// declines once input runs out, so piped input never writes by accident.
func confirmLine(in io.Reader, out io.Writer, prompt string) (bool, error) {
	scanner := bufio.NewScanner(in)
	for {
		if _, err := fmt.Fprintf(out, messages.PromptConfirmFmt, prompt); err != nil {
			return false, err
		}
		if !scanner.Scan() {
			return false, scanner.Err()
		}
		switch answer := strings.ToLower(strings.TrimSpace(scanner.Text())); answer {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
		if _, err := fmt.Fprintln(out, messages.PromptRetryYesNo); err != nil {
			return false, err
		}
	}
}

// printFilePaths prints a list of file paths with a header.
func printFilePaths(out io.Writer, header string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, header); err != nil {
		return err
	}
	for _, path := range paths {
		if _, err := fmt.Fprintf(out, messages.ReportLineFmt, path); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	return nil
}
