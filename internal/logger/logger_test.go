package logger

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestPrepareLogger(t *testing.T) {
	t.Run("level", func(t *testing.T) {
		require.NoError(t, PrepareLogger(Config{Level: "ERROR"}))
		require.Equal(t, log.ErrorLevel, log.GetLevel())

		require.NoError(t, PrepareLogger(Config{Level: "debug", Format: "json"}))
		require.Equal(t, log.DebugLevel, log.GetLevel())
	})

	t.Run("incorrect level", func(t *testing.T) {
		require.Error(t, PrepareLogger(Config{Level: "LOUD"}))
	})

	t.Run("incorrect format", func(t *testing.T) {
		require.Error(t, PrepareLogger(Config{Level: "warn", Format: "xml"}))
	})
}
