package kafka

import (
	chlog "github.com/charmbracelet/log"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/OliveiraNt/kafka-admin-api/internal/utils"
)

// kgoLogger forwards franz-go client logs to utils.Logger. Client chatter is
// kept at warn unless the application logs at debug.
type kgoLogger struct {
	cluster string
}

func newKgoLogger(cluster string) kgo.Logger {
	return kgoLogger{cluster: cluster}
}

func (l kgoLogger) Level() kgo.LogLevel {
	if utils.Logger == nil {
		return kgo.LogLevelNone
	}
	switch utils.Logger.GetLevel() {
	case chlog.DebugLevel:
		return kgo.LogLevelDebug
	case chlog.InfoLevel, chlog.WarnLevel:
		return kgo.LogLevelWarn
	}
	return kgo.LogLevelError
}

func (l kgoLogger) Log(level kgo.LogLevel, msg string, keyvals ...any) {
	if utils.Logger == nil {
		return
	}
	kv := append([]any{"cluster", l.cluster, "source", "kgo"}, keyvals...)
	switch level {
	case kgo.LogLevelError:
		utils.Logger.Error(msg, kv...)
	case kgo.LogLevelWarn:
		utils.Logger.Warn(msg, kv...)
	case kgo.LogLevelInfo:
		utils.Logger.Info(msg, kv...)
	case kgo.LogLevelDebug:
		utils.Logger.Debug(msg, kv...)
	}
}
