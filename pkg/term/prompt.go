package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ErrNonInteractive is returned when a prompt is needed but the caller
// disallowed prompting (e.g. --non-interactive or no TTY).
var ErrNonInteractive = errors.New("input required but prompting is disabled")

// Prompter collects user input. Flows accept this interface instead of
// reading stdin directly.
type Prompter interface {
	Input(label string) (string, error)
	Password(label string) (string, error)
	Confirm(label string, defaultYes bool) (bool, error)
	Select(label string, options []string) (string, error)
}

// Terminal is the stdin/stdout backed Prompter used by the CLI.
type Terminal struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stdout}
}

func (t *Terminal) Input(label string) (string, error) {
	_, _ = fmt.Fprintf(t.out(), "%s ", label)
	line, err := t.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (t *Terminal) Password(label string) (string, error) {
	_, _ = fmt.Fprintf(t.out(), "%s ", label)
	if f, ok := t.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(t.out())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}
	// Not a terminal (tests, piped input): fall back to a plain line read.
	line, err := t.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *Terminal) Confirm(label string, defaultYes bool) (bool, error) {
	hint := "[Y/n]"
	if !defaultYes {
		hint = "[y/N]"
	}
	_, _ = fmt.Fprintf(t.out(), "%s %s ", label, hint)
	line, err := t.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected y or n, got %q", strings.TrimSpace(line))
	}
}

func (t *Terminal) Select(label string, options []string) (string, error) {
	if len(options) == 0 {
		return "", errors.New("no options to select from")
	}
	_, _ = fmt.Fprintln(t.out(), label)
	for i, opt := range options {
		_, _ = fmt.Fprintf(t.out(), "  %d) %s\n", i+1, opt)
	}
	_, _ = fmt.Fprintf(t.out(), "Enter choice [1-%d]: ", len(options))
	line, err := t.readLine()
	if err != nil {
		return "", err
	}
	choice := strings.TrimSpace(line)
	if idx, err := strconv.Atoi(choice); err == nil {
		if idx < 1 || idx > len(options) {
			return "", fmt.Errorf("choice out of range: %d", idx)
		}
		return options[idx-1], nil
	}
	for _, opt := range options {
		if strings.EqualFold(opt, choice) {
			return opt, nil
		}
	}
	return "", fmt.Errorf("invalid choice: %q", choice)
}

func (t *Terminal) readLine() (string, error) {
	if t.reader == nil {
		t.reader = bufio.NewReader(t.In)
	}
	line, err := t.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return line, nil
}

func (t *Terminal) out() io.Writer {
	if t.Out != nil {
		return t.Out
	}
	return os.Stdout
}

// NonInteractive fails every prompt. Used when --non-interactive is set.
type NonInteractive struct{}

func (NonInteractive) Input(string) (string, error)            { return "", ErrNonInteractive }
func (NonInteractive) Password(string) (string, error)         { return "", ErrNonInteractive }
func (NonInteractive) Confirm(string, bool) (bool, error)      { return false, ErrNonInteractive }
func (NonInteractive) Select(string, []string) (string, error) { return "", ErrNonInteractive }
