// Package ui picks stations through fzf. Items are piped to fzf on stdin as
// plain text; no preview commands or shell strings are built.
package ui

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// ErrCancelled is returned when the user dismisses the picker.
var ErrCancelled = errors.New("selection cancelled")

// Select presents items via fzf and returns the chosen item's index.
// Items may carry ANSI colour codes.
func Select(prompt string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no items to select from")
	}

	fzfPath, err := exec.LookPath("fzf")
	if err != nil {
		return -1, fmt.Errorf("fzf not found in PATH: %w", err)
	}

	cmd := exec.Command(fzfPath, fzfArgs(prompt)...)
	cmd.Stdin = strings.NewReader(numbered(items))
	cmd.Stderr = os.Stderr

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		// 130: interrupted, 1: no match
		if errors.As(err, &exitErr) && (exitErr.ExitCode() == 130 || exitErr.ExitCode() == 1) {
			return -1, ErrCancelled
		}
		return -1, fmt.Errorf("fzf failed: %w", err)
	}

	return parseSelection(stdout.String(), len(items))
}

func fzfArgs(prompt string) []string {
	return []string{
		"--prompt", prompt + " > ",
		"--height", "40%",
		"--reverse",
		"--ansi",
		"--with-nth", "2..", // hide the index column
		"--delimiter", "\t",
		"--no-multi",
		"--cycle",
	}
}

// numbered prefixes each item with its index so the choice maps back
// reliably even when two lines render the same.
func numbered(items []string) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d\t%s\n", i, strings.ReplaceAll(item, "\n", " "))
	}
	return b.String()
}

func parseSelection(out string, n int) (int, error) {
	selected := strings.TrimSpace(out)
	if selected == "" {
		return -1, ErrCancelled
	}

	idxField, _, _ := strings.Cut(selected, "\t")
	idx, err := strconv.Atoi(idxField)
	if err != nil {
		return -1, fmt.Errorf("parsing selection index: %w", err)
	}
	if idx < 0 || idx >= n {
		return -1, fmt.Errorf("selection index %d out of range", idx)
	}
	return idx, nil
}
