package display

import (
	"bytes"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"codeberg.org/telvik/displayctl/internal/errors"
)

const xrandrBin = "xrandr"

// xrandrBackend drives the X RandR extension through the xrandr CLI.
// The exec call sits behind a function value so tests can script it.
type xrandrBackend struct {
	run func(args ...string) ([]byte, error)
}

func newXrandrBackend() *xrandrBackend {
	return &xrandrBackend{
		run: func(args ...string) ([]byte, error) {
			return exec.Command(xrandrBin, args...).Output()
		},
	}
}

func (*xrandrBackend) Name() string {
	return xrandrBin
}

func (*xrandrBackend) Available() error {
	errFactory := errors.New()

	if _, err := exec.LookPath(xrandrBin); err != nil {
		return errFactory.Wrap(ErrBackendUnavailable, err)
	}

	return nil
}

func (b *xrandrBackend) CurrentMode() (Mode, error) {
	errFactory := errors.New()

	out, err := b.run("--query")
	if err != nil {
		return Mode{}, errFactory.Wrap(ErrBackendUnavailable, execError(err))
	}

	_, mode, err := parseQuery(string(out))
	if err != nil {
		return Mode{}, err
	}

	return mode, nil
}

func (b *xrandrBackend) ApplyMode(mode Mode) error {
	errFactory := errors.New()

	out, err := b.run("--query")
	if err != nil {
		return errFactory.Wrap(ErrBackendUnavailable, execError(err))
	}

	output, _, err := parseQuery(string(out))
	if err != nil {
		return err
	}

	if _, err := b.run(applyArgs(output, mode)...); err != nil {
		return errFactory.Wrap(ErrApplyFailed, execError(err))
	}

	return nil
}

// execError surfaces captured stderr alongside the exit status
func execError(err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return fmt.Errorf("%w: %s", err, bytes.TrimSpace(exitErr.Stderr))
	}

	return err
}

type xrandrOutput struct {
	name    string
	primary bool
	modes   []string
}

// parseQuery extracts the connected output (primary preferred) and its
// active mode from `xrandr --query` text
func parseQuery(out string) (string, Mode, error) {
	errFactory := errors.New()

	var outputs []xrandrOutput
	var current *xrandrOutput

	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}

		if line[0] == ' ' || line[0] == '\t' {
			if current != nil {
				current.modes = append(current.modes, line)
			}
			continue
		}

		current = nil

		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == "connected" {
			outputs = append(outputs, xrandrOutput{
				name:    fields[0],
				primary: len(fields) >= 3 && fields[2] == "primary",
			})
			current = &outputs[len(outputs)-1]
		}
	}

	pick := -1
	for i := range outputs {
		if outputs[i].primary {
			pick = i
			break
		}
	}
	if pick < 0 && len(outputs) > 0 {
		pick = 0
	}
	if pick < 0 {
		return "", Mode{}, errFactory.WithMessage(ErrParseFailed, "no connected output found")
	}

	for _, modeLine := range outputs[pick].modes {
		if mode, ok := parseModeLine(modeLine); ok {
			return outputs[pick].name, mode, nil
		}
	}

	return "", Mode{}, errFactory.WithMessage(ErrParseFailed, "no active mode found")
}

// parseModeLine reads one indented mode line; only the line whose rate
// carries the `*` marker describes the active mode
func parseModeLine(line string) (Mode, bool) {
	if !strings.Contains(line, "*") {
		return Mode{}, false
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Mode{}, false
	}

	width, height, ok := parseResolution(fields[0])
	if !ok {
		return Mode{}, false
	}

	for _, field := range fields[1:] {
		if !strings.Contains(field, "*") {
			continue
		}

		rate, err := strconv.ParseFloat(strings.TrimRight(field, "*+"), 64)
		if err != nil {
			return Mode{}, false
		}

		return Mode{
			Width:       width,
			Height:      height,
			RefreshRate: int(math.Round(rate)),
		}, true
	}

	return Mode{}, false
}

func parseResolution(s string) (int, int, bool) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}

	width, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}

	height, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}

	if width <= 0 || height <= 0 {
		return 0, 0, false
	}

	return width, height, true
}

func applyArgs(output string, mode Mode) []string {
	return []string{
		"--output", output,
		"--mode", fmt.Sprintf("%dx%d", mode.Width, mode.Height),
		"--rate", strconv.Itoa(mode.RefreshRate),
	}
}
