package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Parallel()

	for _, mode := range []bool{true, false} {
		logger, err := New("info", mode)
		require.NoError(t, err)
		require.NotNil(t, logger)
	}

	logger, err := New("debug", false)
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_BadLevel(t *testing.T) {
	t.Parallel()

	_, err := New("noisy", true)
	require.Error(t, err)
}
