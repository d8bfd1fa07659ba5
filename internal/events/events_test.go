// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package events

import (
	"bytes"
	"strings"
	"testing"
)

func TestEmitNilSink(t *testing.T) {
	// Must not panic.
	Emit(nil, "discovery", "searching", StatusInfo, "query")
}

func TestWriterSinkFormat(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	Emit(sink, "discovery", "found 3 sources", StatusSuccess, "URLs ready")
	Emit(sink, "fetch", "loading complete", StatusInfo, "")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0] != "[success] discovery: found 3 sources (URLs ready)" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "[info] fetch: loading complete" {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestMultiFansOut(t *testing.T) {
	var a, b bytes.Buffer
	m := Multi{NewWriterSink(&a), nil, NewWriterSink(&b)}

	Emit(m, "pipeline", "run started", StatusInfo, "")

	if a.String() != b.String() {
		t.Errorf("sinks diverged: %q vs %q", a.String(), b.String())
	}
	if a.Len() == 0 {
		t.Error("first sink received nothing")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a longer detail string", 8, "a longer..."},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
