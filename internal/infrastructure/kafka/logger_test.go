package kafka

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/OliveiraNt/kafka-admin-api/internal/utils"
)

func TestKgoLoggerLevel(t *testing.T) {
	utils.InitLogger()
	l := newKgoLogger("dev")

	utils.SetLogLevel("debug")
	require.Equal(t, kgo.LogLevelDebug, l.Level())

	utils.SetLogLevel("info")
	require.Equal(t, kgo.LogLevelWarn, l.Level())

	utils.SetLogLevel("error")
	require.Equal(t, kgo.LogLevelError, l.Level())

	require.NotPanics(t, func() { l.Log(kgo.LogLevelError, "broker unreachable", "broker", 1) })
	utils.SetLogLevel("info")
}
