package logger

import (
	"context"
	"fmt"
	"github.com/maxaizer/uninotify/pkg/loki"
	log "github.com/sirupsen/logrus"
	"path/filepath"
	"strconv"
)

// lokiSource marks the pusher's own log lines so they are never pushed back to Loki.
const lokiSource = "loki"

type pusherLogger struct{}

func (pusherLogger) Error(msg string, args ...any) {
	log.WithFields(log.Fields{"args": args, "source": lokiSource}).Error(msg)
}

type entryPusher interface {
	Push(entry loki.LogEntry)
}

// lokiHook ships entries at or above minLevel. The error type travels as its own field,
// every other logrus field is flattened to text.
type lokiHook struct {
	pusher   entryPusher
	minLevel log.Level
}

func (h *lokiHook) Fire(entry *log.Entry) error {
	if entry.Data["source"] == lokiSource {
		return nil
	}
	h.pusher.Push(toLokiEntry(entry))
	return nil
}

func toLokiEntry(entry *log.Entry) loki.LogEntry {
	caller := ""
	if entry.Caller != nil {
		caller = filepath.Base(entry.Caller.Function) + ":" + strconv.Itoa(entry.Caller.Line)
	}

	var errorType string
	var fields map[string]string
	for key, value := range entry.Data {
		if key == ErrorTypeField {
			errorType, _ = value.(string)
			continue
		}
		if fields == nil {
			fields = make(map[string]string, len(entry.Data))
		}
		fields[key] = fmt.Sprint(value)
	}

	return loki.LogEntry{
		Level:     entry.Level.String(),
		Message:   entry.Message,
		Caller:    caller,
		ErrorType: errorType,
		Fields:    fields,
		Time:      entry.Time,
	}
}

func (h *lokiHook) Levels() []log.Level {
	var levels []log.Level
	for _, level := range log.AllLevels {
		if level <= h.minLevel {
			levels = append(levels, level)
		}
	}
	return levels
}

func addLokiHook(ctx context.Context, cfg loki.Config, minLevel log.Level) error {
	pusher, err := loki.New(ctx, cfg, pusherLogger{})
	if err != nil {
		return err
	}
	lokiPusher = pusher
	log.AddHook(&lokiHook{pusher: pusher, minLevel: minLevel})
	log.Infof("shipping logs from %s and above to loki", minLevel)
	return nil
}
