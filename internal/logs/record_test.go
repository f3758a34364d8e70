package logs

import (
	"strings"
	"testing"
	"time"
)

func TestLevelString(t *testing.T) {
	cases := []struct {
		level Level
		want  string
	}{
		{LevelInfo, "INFO"},
		{LevelWarning, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.level.String(); got != c.want {
			t.Errorf("Level(%d).String() = %q, want %q", c.level, got, c.want)
		}
	}
}

func TestRecordFormat(t *testing.T) {
	ts := time.Date(2026, 7, 30, 12, 0, 0, 0, time.Local)
	r := Record{Time: ts, Level: LevelInfo, Message: "started"}
	got := r.Format()
	if !strings.Contains(got, "2026-07-30 12:00:00") {
		t.Errorf("Format() = %q, missing timestamp", got)
	}
	if !strings.Contains(got, "INFO") {
		t.Errorf("Format() = %q, missing level", got)
	}
	if !strings.Contains(got, "started") {
		t.Errorf("Format() = %q, missing message", got)
	}
	if strings.Contains(got, WrappedLinePrefix) {
		t.Errorf("Format() = %q, should not carry wrapped prefix when Wrapped is false", got)
	}
}

func TestRecordFormatWrappedPrefix(t *testing.T) {
	r := Record{Time: time.Now(), Level: LevelInfo, Message: "child output", Wrapped: true}
	got := r.Format()
	if !strings.Contains(got, WrappedLinePrefix+"child output") {
		t.Errorf("Format() = %q, want wrapped prefix before message", got)
	}
}
