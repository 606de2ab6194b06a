package conversation

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/hammamikhairi/levain/internal/logger"
)

func TestCLINotifier(t *testing.T) {
	var lines []string
	capture := func(format string, a ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, a...))
	}
	n := NewCLINotifier(logger.New(logger.LevelOff, nil), capture)
	ctx := context.Background()

	if err := n.Notify(ctx, "Reloaded 3 presets"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := n.NotifyUrgent(ctx, "Could not save your inputs."); err != nil {
		t.Fatalf("notify urgent: %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "Reloaded 3 presets") {
		t.Errorf("unexpected notify line %q", lines[0])
	}
	if !strings.Contains(lines[1], "Warning: Could not save") {
		t.Errorf("unexpected urgent line %q", lines[1])
	}
}
