package terminal

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

// sleepRecorder records every requested delay instead of sleeping.
type sleepRecorder struct {
	calls []time.Duration
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.calls = append(s.calls, d)
	return nil
}

func TestDisplayString(t *testing.T) {
	var buf bytes.Buffer
	rec := &sleepRecorder{}
	r := NewRenderer(&buf, 10*time.Millisecond, WithSleep(rec.sleep))

	r.Display(context.Background(), "Line 1\nLine 2\n\nLine 4")

	if got, want := buf.String(), "Line 1\nLine 2\n\nLine 4\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if len(rec.calls) != 4 {
		t.Errorf("expected 4 sleeps, got %d", len(rec.calls))
	}
}

func TestDisplaySlice(t *testing.T) {
	var buf bytes.Buffer
	rec := &sleepRecorder{}
	r := NewRenderer(&buf, 10*time.Millisecond, WithSleep(rec.sleep))

	lines := []string{"First line.", "Second line.", "Third."}
	r.Display(context.Background(), lines)

	if got, want := buf.String(), strings.Join(lines, "\n")+"\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if len(rec.calls) != len(lines) {
		t.Errorf("expected %d sleeps, got %d", len(lines), len(rec.calls))
	}
}

func TestDisplayUsesConfiguredDelayForEveryLine(t *testing.T) {
	rec := &sleepRecorder{}
	r := NewRenderer(&bytes.Buffer{}, time.Second, WithSleep(rec.sleep))

	r.Display(context.Background(), []string{"a", "b", "c"})

	for i, d := range rec.calls {
		if d != time.Second {
			t.Errorf("sleep %d = %v, want 1s", i, d)
		}
	}
}

func TestDisplayWithDelayOverride(t *testing.T) {
	rec := &sleepRecorder{}
	r := NewRenderer(&bytes.Buffer{}, time.Second, WithSleep(rec.sleep))

	r.DisplayWithDelay(context.Background(), "only", 5*time.Millisecond)

	if len(rec.calls) != 1 || rec.calls[0] != 5*time.Millisecond {
		t.Errorf("unexpected sleeps: %v", rec.calls)
	}
}

func TestDisplayUnsupportedType(t *testing.T) {
	var buf bytes.Buffer
	rec := &sleepRecorder{}
	r := NewRenderer(&buf, time.Second, WithSleep(rec.sleep))

	r.Display(context.Background(), 12345)

	if !strings.Contains(buf.String(), "Error: Cannot display text") {
		t.Errorf("expected in-band error, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "int") {
		t.Errorf("expected type name in message, got %q", buf.String())
	}
	if len(rec.calls) != 0 {
		t.Errorf("expected no sleeps, got %d", len(rec.calls))
	}
}

func TestDisplayStopsWhenCancelled(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Real sleep: a cancelled context interrupts after the first line.
	r := NewRenderer(&buf, time.Hour)
	r.Display(ctx, []string{"one", "two", "three"})

	if got := buf.String(); got != "one\n" {
		t.Errorf("output = %q, want only the first line", got)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single", "alone", []string{"alone"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"double trailing newline", "a\n\n", []string{"a", ""}},
		{"crlf", "a\r\nb", []string{"a", "b"}},
		{"bare cr", "a\rb", []string{"a", "b"}},
		{"leading blank", "\nx", []string{"", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("SplitLines(%q) = %q, want %q", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("SplitLines(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.expected[i])
				}
			}
		})
	}
}
