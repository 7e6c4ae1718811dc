package aggregator

import (
	"fmt"

	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
)

// Diagnostics receives the events emitted by the Aggregator while
// collecting jokes. None of the events affect the outcome of an
// aggregation.
type Diagnostics interface {
	// SourceConsulted is emitted before a source's quota is checked.
	SourceConsulted(source string, quota int)
	// SourceSkipped is emitted when a source has a quota of zero or less.
	SourceSkipped(source string, quota int)
	// SourceFailed is emitted when a source's fetch returned an error or
	// panicked. The source contributes no jokes.
	SourceFailed(source string, err error)
	// SourceOverDelivered is emitted when a source returned more jokes than
	// it was asked for. The surplus is dropped.
	SourceOverDelivered(source string, asked, got int)
	// Shortfall is emitted when fewer jokes than requested, but at least
	// one, were collected.
	Shortfall(requested, returned int)
	// NoJokes is emitted when no source contributed any joke.
	NoJokes(requested int)
}

// NopDiagnostics discards all events.
type NopDiagnostics struct{}

// SourceConsulted implements Diagnostics.
func (NopDiagnostics) SourceConsulted(string, int) {}

// SourceSkipped implements Diagnostics.
func (NopDiagnostics) SourceSkipped(string, int) {}

// SourceFailed implements Diagnostics.
func (NopDiagnostics) SourceFailed(string, error) {}

// SourceOverDelivered implements Diagnostics.
func (NopDiagnostics) SourceOverDelivered(string, int, int) {}

// Shortfall implements Diagnostics.
func (NopDiagnostics) Shortfall(int, int) {}

// NoJokes implements Diagnostics.
func (NopDiagnostics) NoJokes(int) {}

// MultiDiagnostics passes each event on to all of its diagnostics, in order.
type MultiDiagnostics []Diagnostics

// SourceConsulted implements Diagnostics.
func (m MultiDiagnostics) SourceConsulted(source string, quota int) {
	for _, d := range m {
		d.SourceConsulted(source, quota)
	}
}

// SourceSkipped implements Diagnostics.
func (m MultiDiagnostics) SourceSkipped(source string, quota int) {
	for _, d := range m {
		d.SourceSkipped(source, quota)
	}
}

// SourceFailed implements Diagnostics.
func (m MultiDiagnostics) SourceFailed(source string, err error) {
	for _, d := range m {
		d.SourceFailed(source, err)
	}
}

// SourceOverDelivered implements Diagnostics.
func (m MultiDiagnostics) SourceOverDelivered(source string, asked, got int) {
	for _, d := range m {
		d.SourceOverDelivered(source, asked, got)
	}
}

// Shortfall implements Diagnostics.
func (m MultiDiagnostics) Shortfall(requested, returned int) {
	for _, d := range m {
		d.Shortfall(requested, returned)
	}
}

// NoJokes implements Diagnostics.
func (m MultiDiagnostics) NoJokes(requested int) {
	for _, d := range m {
		d.NoJokes(requested)
	}
}

// LogDiagnostics writes the events to a logger, using INFO for consulted
// sources, WARN for skipped sources, over-delivery and shortfalls, and ERROR
// for failed sources and when no jokes were found.
type LogDiagnostics struct {
	write func(logRecord)
}

// NewLogDiagnostics creates a new LogDiagnostics that logs to the given
// logger, such as:
//
//	aggregator.NewLogDiagnostics(logger.NewScoped("AGGREGATOR"))
func NewLogDiagnostics(log logger.Logger) LogDiagnostics {
	return LogDiagnostics{write: loggerWriter(log)}
}

type logField struct {
	key   string
	str   string
	num   int
	isNum bool
}

func stringField(key, value string) logField {
	return logField{key: key, str: value}
}

func intField(key string, value int) logField {
	return logField{key: key, num: value, isNum: true}
}

// logRecord is a single diagnostics log message before it is handed to the
// logger.
type logRecord struct {
	level   logger.Level
	message string
	err     error
	fields  []logField
}

func loggerWriter(log logger.Logger) func(logRecord) {
	return func(rec logRecord) {
		var ev logger.Event
		switch rec.level {
		case logger.LevelDebug:
			ev = log.Debug()
		case logger.LevelInfo:
			ev = log.Info()
		case logger.LevelWarn:
			ev = log.Warn()
		default:
			ev = log.Error()
		}
		if rec.err != nil {
			ev = ev.WithError(rec.err)
		}
		for _, f := range rec.fields {
			if f.isNum {
				ev = ev.WithInt(f.key, f.num)
			} else {
				ev = ev.WithString(f.key, f.str)
			}
		}
		ev.Message(rec.message)
	}
}

// SourceConsulted implements Diagnostics.
func (d LogDiagnostics) SourceConsulted(source string, quota int) {
	d.write(logRecord{
		level:   logger.LevelInfo,
		message: "Fetching jokes from source.",
		fields:  []logField{stringField("source", source), intField("quota", quota)},
	})
}

// SourceSkipped implements Diagnostics.
func (d LogDiagnostics) SourceSkipped(source string, quota int) {
	d.write(logRecord{
		level:   logger.LevelWarn,
		message: "Joke quota for source is not configured or not over 0. Skipping it.",
		fields:  []logField{stringField("source", source), intField("quota", quota)},
	})
}

// SourceFailed implements Diagnostics.
func (d LogDiagnostics) SourceFailed(source string, err error) {
	d.write(logRecord{
		level:   logger.LevelError,
		message: "Failed to fetch jokes from source.",
		err:     err,
		fields:  []logField{stringField("source", source)},
	})
}

// SourceOverDelivered implements Diagnostics.
func (d LogDiagnostics) SourceOverDelivered(source string, asked, got int) {
	d.write(logRecord{
		level:   logger.LevelWarn,
		message: "Source returned more jokes than asked for. Dropping the surplus.",
		fields: []logField{
			stringField("source", source),
			intField("asked", asked),
			intField("got", got),
		},
	})
}

// Shortfall implements Diagnostics.
func (d LogDiagnostics) Shortfall(requested, returned int) {
	d.write(logRecord{
		level:   logger.LevelWarn,
		message: fmt.Sprintf("Requested %d jokes but could only return %d.", requested, returned),
		fields:  []logField{intField("requested", requested), intField("returned", returned)},
	})
}

// NoJokes implements Diagnostics.
func (d LogDiagnostics) NoJokes(requested int) {
	d.write(logRecord{
		level:   logger.LevelError,
		message: "Unable to retrieve jokes from the available sources. Please ensure the configuration is set up correctly.",
		fields:  []logField{intField("requested", requested)},
	})
}
