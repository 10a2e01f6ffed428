package config

import "testing"

func TestParseColorMode(t *testing.T) {
	cases := map[string]ColorMode{
		"always": ColorAlways,
		"auto":   ColorAuto,
		"never":  ColorNever,
	}
	for in, want := range cases {
		got, err := ParseColorMode(in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		if got != want {
			t.Errorf("%q: expected %v, got %v", in, want, got)
		}
		if got.String() != in {
			t.Errorf("%q: round-trip gave %q", in, got.String())
		}
	}

	if _, err := ParseColorMode("sometimes"); err == nil {
		t.Error("expected error for unsupported color mode")
	}
}

func TestParseTimestampFormat(t *testing.T) {
	cases := map[string]TimestampFormat{
		"auto":    TimestampAuto,
		"seconds": TimestampSeconds,
		"millis":  TimestampMillis,
		"raw":     TimestampRaw,
	}
	for in, want := range cases {
		got, err := ParseTimestampFormat(in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		if got != want {
			t.Errorf("%q: expected %v, got %v", in, want, got)
		}
		if got.String() != in {
			t.Errorf("%q: round-trip gave %q", in, got.String())
		}
	}

	if _, err := ParseTimestampFormat("nanos"); err == nil {
		t.Error("expected error for unsupported timestamp format")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if len(cfg.PriorityFields) == 0 || cfg.PriorityFields[0] != "time" {
		t.Errorf("unexpected default priority fields: %v", cfg.PriorityFields)
	}
	if cfg.TimestampField != "timestamp" || cfg.LevelField != "level" {
		t.Errorf("unexpected default field names: %+v", cfg)
	}
	if !cfg.FlushEveryLine {
		t.Error("per-line flushing must be the default")
	}
}
