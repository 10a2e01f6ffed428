package config

import "fmt"

// ColorMode controls when ANSI styling is emitted.
type ColorMode uint8

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses a --color flag value.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("unsupported color mode %q (want always, auto, or never)", s)
}

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// TimestampFormat controls how an integer timestamp field is rendered.
// Auto, Seconds and Millis convert to ISO form; Raw prints the integer as-is.
type TimestampFormat uint8

const (
	TimestampAuto TimestampFormat = iota
	TimestampSeconds
	TimestampMillis
	TimestampRaw
)

// ParseTimestampFormat parses a --timestamp-format flag value.
func ParseTimestampFormat(s string) (TimestampFormat, error) {
	switch s {
	case "auto":
		return TimestampAuto, nil
	case "seconds":
		return TimestampSeconds, nil
	case "millis":
		return TimestampMillis, nil
	case "raw":
		return TimestampRaw, nil
	}
	return TimestampAuto, fmt.Errorf("unsupported timestamp format %q (want auto, seconds, millis, or raw)", s)
}

func (f TimestampFormat) String() string {
	switch f {
	case TimestampSeconds:
		return "seconds"
	case TimestampMillis:
		return "millis"
	case TimestampRaw:
		return "raw"
	default:
		return "auto"
	}
}

// Config is the immutable per-process configuration consumed by the
// transform pipeline. It is constructed once before processing starts and
// never mutated afterwards.
type Config struct {
	// PriorityFields are rendered first, in this order, without a key prefix.
	PriorityFields  []string
	Color           ColorMode
	TimestampFormat TimestampFormat
	// TimestampField names the field formatted per TimestampFormat when it
	// holds a number.
	TimestampField string
	// LevelField names the field colorized by severity when it holds a string.
	LevelField string
	// FlushEveryLine flushes output after each record so a human watching a
	// terminal sees lines as they arrive. On by default.
	FlushEveryLine bool
}

// DefaultPriorityFields mirrors the default --no-key-fields flag value.
var DefaultPriorityFields = []string{"time", "timestamp", "ts", "level", "msg", "message"}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		PriorityFields:  DefaultPriorityFields,
		Color:           ColorAuto,
		TimestampFormat: TimestampAuto,
		TimestampField:  "timestamp",
		LevelField:      "level",
		FlushEveryLine:  true,
	}
}
