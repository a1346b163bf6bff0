package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/devport/internal/model"
)

// TestFormatPortsList verifies run collapsing and the empty marker.
func TestFormatPortsList(t *testing.T) {
	tests := []struct {
		name  string
		ports []int
		want  string
	}{
		{"empty", nil, "-"},
		{"single", []int{3000}, "3000"},
		{"no runs", []int{22, 80, 443}, "22,80,443"},
		{"one run", []int{8080, 8081, 8082}, "8080-8082"},
		{"mixed", []int{22, 80, 8080, 8081, 8082, 9000}, "22,80,8080-8082,9000"},
		{"pair", []int{1, 2}, "1-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPortsList(tt.ports))
		})
	}
}

func TestWriteScanResult_Text(t *testing.T) {
	color.NoColor = true
	r, err := model.NewPortRange(30000, 30010)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeScanResult(&buf, scanResult{Range: r, Direction: model.Ascending, Found: true, Ports: []int{30000, 30002}}, false))
	assert.Equal(t, "30000\n30002\n", buf.String())

	buf.Reset()
	require.NoError(t, writeScanResult(&buf, scanResult{Range: r, Direction: model.Ascending}, false))
	assert.Empty(t, buf.String(), "nothing found prints nothing on stdout")
}

func TestInputError(t *testing.T) {
	assert.NoError(t, inputError(nil))

	_, rangeErr := model.NewPortRange(0, 10)
	err := inputError(rangeErr)
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitInvalidInput, cliErr.Code)
	assert.True(t, errors.Is(err, model.ErrOutOfRange))

	dirErr := inputError(fmt.Errorf("%w: %q", model.ErrInvalidDirection, "up"))
	require.True(t, errors.As(dirErr, &cliErr))
	assert.Equal(t, model.ExitInvalidInput, cliErr.Code)

	other := errors.New("boom")
	assert.Same(t, other, inputError(other))
}

func TestParsePortArg(t *testing.T) {
	v, err := parsePortArg("START", " 8080 ")
	require.NoError(t, err)
	assert.Equal(t, 8080, v)

	_, err = parsePortArg("START", "http")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "START must be a number")
}
