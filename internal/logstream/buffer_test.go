package logstream

import (
	"fmt"
	"testing"

	"github.com/taloswatch/taloswatch/pkg/models"
)

func TestBuffer_NeverExceedsCapacity(t *testing.T) {
	b := NewBuffer(500)

	for i := 0; i < 1200; i++ {
		b.Append(models.LogLine{Raw: fmt.Sprintf("line %d", i), Severity: models.SeverityInfo})
		if b.Len() > 500 {
			t.Fatalf("buffer length %d exceeds capacity after %d appends", b.Len(), i+1)
		}
	}

	if b.Len() != 500 {
		t.Fatalf("Len() = %d, want 500", b.Len())
	}

	// The most recent 500 lines survive, in arrival order.
	lines := b.Lines()
	if got, want := lines[0].Raw, "line 700"; got != want {
		t.Errorf("oldest retained = %q, want %q", got, want)
	}
	if got, want := lines[499].Raw, "line 1199"; got != want {
		t.Errorf("newest retained = %q, want %q", got, want)
	}
}

func TestBuffer_AppendReportsEvictions(t *testing.T) {
	b := NewBuffer(3)

	for i := 0; i < 3; i++ {
		if n := b.Append(models.LogLine{Raw: fmt.Sprintf("%d", i)}); n != 0 {
			t.Fatalf("Append under capacity evicted %d", n)
		}
	}
	if n := b.Append(models.LogLine{Raw: "3"}); n != 1 {
		t.Fatalf("Append over capacity evicted %d, want 1", n)
	}
}

func TestBuffer_DefaultCapacity(t *testing.T) {
	if got := NewBuffer(0).Cap(); got != DefaultCapacity {
		t.Errorf("Cap() = %d, want %d", got, DefaultCapacity)
	}
	if got := NewBuffer(-5).Cap(); got != DefaultCapacity {
		t.Errorf("Cap() = %d, want %d", got, DefaultCapacity)
	}
}
