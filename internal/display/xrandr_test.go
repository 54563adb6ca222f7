package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/telvik/displayctl/internal/errors"
)

const xrandrSingleOutput = `Screen 0: minimum 320 x 200, current 3840 x 2160, maximum 16384 x 16384
eDP-1 connected primary 3840x2160+0+0 (normal left inverted right x axis y axis) 344mm x 194mm
   3840x2160    120.00*+  60.00    48.00
   1920x1080    120.00    60.00
HDMI-1 disconnected (normal left inverted right x axis y axis)
`

const xrandrSecondaryPrimary = `Screen 0: minimum 320 x 200, current 5760 x 2160, maximum 16384 x 16384
HDMI-1 connected 1920x1080+3840+0 (normal left inverted right x axis y axis) 509mm x 286mm
   1920x1080     60.00*+
DP-1 connected primary 3840x2160+0+0 (normal left inverted right x axis y axis) 600mm x 340mm
   3840x2160    119.88*+  59.94
`

const xrandrNoPrimary = `Screen 0: minimum 320 x 200, current 1920 x 1080, maximum 16384 x 16384
HDMI-1 connected 1920x1080+0+0 (normal left inverted right x axis y axis) 509mm x 286mm
   1920x1080     60.00*+
   1280x720      60.00
`

func TestParseQuery(t *testing.T) {
	output, mode, err := parseQuery(xrandrSingleOutput)
	require.NoError(t, err)

	assert.Equal(t, "eDP-1", output)
	assert.Equal(t, Mode{Width: 3840, Height: 2160, RefreshRate: 120}, mode)
}

func TestParseQueryPrefersPrimary(t *testing.T) {
	output, mode, err := parseQuery(xrandrSecondaryPrimary)
	require.NoError(t, err)

	assert.Equal(t, "DP-1", output)
	assert.Equal(t, Mode{Width: 3840, Height: 2160, RefreshRate: 120}, mode)
}

func TestParseQueryFallsBackToFirstConnected(t *testing.T) {
	output, mode, err := parseQuery(xrandrNoPrimary)
	require.NoError(t, err)

	assert.Equal(t, "HDMI-1", output)
	assert.Equal(t, Mode{Width: 1920, Height: 1080, RefreshRate: 60}, mode)
}

func TestParseQueryIgnoresDisconnectedModeLines(t *testing.T) {
	const out = `Screen 0: minimum 320 x 200, current 3840 x 2160, maximum 16384 x 16384
DP-2 disconnected (normal left inverted right x axis y axis)
   1280x720      60.00*
eDP-1 connected primary 3840x2160+0+0 (normal left inverted right x axis y axis) 344mm x 194mm
   3840x2160    120.00*+
`

	output, mode, err := parseQuery(out)
	require.NoError(t, err)

	assert.Equal(t, "eDP-1", output)
	assert.Equal(t, Mode{Width: 3840, Height: 2160, RefreshRate: 120}, mode)
}

func TestParseQueryNoConnectedOutput(t *testing.T) {
	const out = `Screen 0: minimum 320 x 200, current 0 x 0, maximum 16384 x 16384
HDMI-1 disconnected (normal left inverted right x axis y axis)
`

	_, _, err := parseQuery(out)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrParseFailed))
}

func TestParseQueryNoActiveMode(t *testing.T) {
	const out = `Screen 0: minimum 320 x 200, current 0 x 0, maximum 16384 x 16384
eDP-1 connected primary (normal left inverted right x axis y axis) 344mm x 194mm
   3840x2160    120.00 +  60.00
`

	_, _, err := parseQuery(out)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrParseFailed))
}

func TestParseModeLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		mode Mode
		ok   bool
	}{
		{
			name: "active and preferred",
			line: "   3840x2160    120.00*+  60.00",
			mode: Mode{Width: 3840, Height: 2160, RefreshRate: 120},
			ok:   true,
		},
		{
			name: "active only",
			line: "   1920x1080     59.94*",
			mode: Mode{Width: 1920, Height: 1080, RefreshRate: 60},
			ok:   true,
		},
		{
			name: "preferred but inactive",
			line: "   3840x2160    120.00 +  60.00",
			ok:   false,
		},
		{
			name: "no marker",
			line: "   1280x720      60.00",
			ok:   false,
		},
		{
			name: "unparseable resolution",
			line: "   garbage    60.00*",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, ok := parseModeLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.mode, mode)
			}
		})
	}
}

func TestApplyArgs(t *testing.T) {
	args := applyArgs("eDP-1", Mode{Width: 3840, Height: 2160, RefreshRate: 120})
	assert.Equal(t, []string{"--output", "eDP-1", "--mode", "3840x2160", "--rate", "120"}, args)
}

func TestXrandrBackendCurrentMode(t *testing.T) {
	var calls [][]string
	backend := &xrandrBackend{
		run: func(args ...string) ([]byte, error) {
			calls = append(calls, args)
			return []byte(xrandrSingleOutput), nil
		},
	}

	mode, err := backend.CurrentMode()
	require.NoError(t, err)

	assert.Equal(t, Mode{Width: 3840, Height: 2160, RefreshRate: 120}, mode)
	assert.Equal(t, [][]string{{"--query"}}, calls)
}

func TestXrandrBackendApplyMode(t *testing.T) {
	var calls [][]string
	backend := &xrandrBackend{
		run: func(args ...string) ([]byte, error) {
			calls = append(calls, args)
			if len(calls) == 1 {
				return []byte(xrandrSingleOutput), nil
			}
			return nil, nil
		},
	}

	require.NoError(t, backend.ApplyMode(Mode{Width: 1920, Height: 1080, RefreshRate: 60}))

	require.Len(t, calls, 2)
	assert.Equal(t, []string{"--query"}, calls[0])
	assert.Equal(t, []string{"--output", "eDP-1", "--mode", "1920x1080", "--rate", "60"}, calls[1])
}

func TestXrandrBackendApplyModeFailure(t *testing.T) {
	var calls [][]string
	backend := &xrandrBackend{
		run: func(args ...string) ([]byte, error) {
			calls = append(calls, args)
			if len(calls) == 1 {
				return []byte(xrandrSingleOutput), nil
			}
			return nil, errors.New().New(errors.ErrOperationFailed)
		},
	}

	err := backend.ApplyMode(Mode{Width: 1920, Height: 1080, RefreshRate: 60})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrApplyFailed))
}

func TestXrandrBackendQueryFailure(t *testing.T) {
	backend := &xrandrBackend{
		run: func(args ...string) ([]byte, error) {
			return nil, errors.New().New(errors.ErrOperationFailed)
		},
	}

	_, err := backend.CurrentMode()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrBackendUnavailable))
}
