package conversation

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/hammamikhairi/levain/internal/domain"
	"github.com/hammamikhairi/levain/internal/logger"
)

func TestKeywordParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewKeywordParser(log)
	ctx := context.Background()

	tests := []struct {
		input    string
		wantType domain.CommandType
		wantArgs []string
	}{
		// Session
		{"quit", domain.CommandQuit, nil},
		{"exit", domain.CommandQuit, nil},
		{"q", domain.CommandQuit, nil},
		{"help", domain.CommandHelp, nil},
		{"?", domain.CommandHelp, nil},

		// Presets
		{"presets", domain.CommandListPresets, nil},
		{"list", domain.CommandListPresets, nil},
		{"preset focaccia", domain.CommandSelectPreset, []string{"focaccia"}},
		{"use 2", domain.CommandSelectPreset, []string{"2"}},
		{"3", domain.CommandSelectPreset, []string{"3"}},
		{"search wet", domain.CommandSearchPresets, []string{"wet"}},
		{"search  whole   wheat", domain.CommandSearchPresets, []string{"whole wheat"}},

		// Anchor
		{"mode batch", domain.CommandSetMode, []string{"batch"}},
		{"flour", domain.CommandSetMode, []string{"flour"}},
		{"total", domain.CommandSetMode, []string{"dough"}},
		{"flour 500", domain.CommandSetFlour, []string{"500"}},
		{"flour 500g", domain.CommandSetFlour, []string{"500"}},
		{"FLOUR 750 g", domain.CommandSetFlour, []string{"750"}},
		{"dough 1000", domain.CommandSetDough, []string{"1000"}},
		{"total 950.5g", domain.CommandSetDough, []string{"950.5"}},
		{"batch 6 250", domain.CommandSetBatch, []string{"6", "250"}},
		{"batch 6 x 250g", domain.CommandSetBatch, []string{"6", "250"}},
		{"batch 12x80", domain.CommandSetBatch, []string{"12", "80"}},

		// Ratios
		{"hydration 75", domain.CommandSetHydration, []string{"75"}},
		{"h 85%", domain.CommandSetHydration, []string{"85"}},
		{"salt 2.5%", domain.CommandSetSalt, []string{"2.5"}},
		{"starter 20", domain.CommandSetStarter, []string{"20"}},
		{"sh 50", domain.CommandSetStarterHydration, []string{"50"}},
		{"starter hydration 125", domain.CommandSetStarterHydration, []string{"125"}},
		{"starter-hydration 100%", domain.CommandSetStarterHydration, []string{"100"}},

		// Calculations
		{"calc", domain.CommandCalculate, nil},
		{"c", domain.CommandCalculate, nil},
		{"=", domain.CommandCalculate, nil},
		{"levain", domain.CommandSetLevainRatio, nil},
		{"levain 2", domain.CommandSetLevainRatio, []string{"2"}},
		{"temp", domain.CommandTemperature, nil},
		{"temp 22 22 2 26", domain.CommandTemperature, []string{"22", "22", "2", "26"}},
		{"temperature 20c 19.5 2 26°C", domain.CommandTemperature, []string{"20", "19.5", "2", "26"}},

		// State
		{"show", domain.CommandShow, nil},
		{"status", domain.CommandShow, nil},
		{"history", domain.CommandHistory, nil},
		{"reset", domain.CommandReset, nil},

		// Unknown
		{"knead for ten minutes", domain.CommandUnknown, []string{"knead for ten minutes"}},
		{"temp 22 22", domain.CommandUnknown, []string{"temp 22 22"}},
		{"hydration", domain.CommandUnknown, []string{"hydration"}},
		{"", domain.CommandUnknown, nil},
		{"   ", domain.CommandUnknown, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, err := parser.Parse(ctx, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cmd.Type != tt.wantType {
				t.Errorf("input=%q: got type %s, want %s", tt.input, cmd.Type, tt.wantType)
			}
			if diff := cmp.Diff(tt.wantArgs, cmd.Args, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("input=%q: args mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestCommandArg(t *testing.T) {
	cmd := &domain.Command{Type: domain.CommandSetBatch, Args: []string{"6", "250"}}
	if cmd.Arg(1) != "250" {
		t.Fatalf("expected 250, got %q", cmd.Arg(1))
	}
	if cmd.Arg(2) != "" || cmd.Arg(-1) != "" {
		t.Fatal("expected empty string for out-of-range args")
	}
}
