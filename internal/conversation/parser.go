// Package conversation turns REPL input into commands and delivers
// notifications back to the user.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/levain/internal/domain"
	"github.com/hammamikhairi/levain/internal/logger"
)

// Compile-time interface check.
var _ domain.CommandParser = (*KeywordParser)(nil)

// Argument fragments. Numbers are captured without their unit suffix so
// "500g" and "2.5%" parse the same as "500" and "2.5".
const (
	grams   = `(\S+?)\s*g?`
	percent = `(\S+?)\s*%?`
	degrees = `(\S+?)\s*(?:°?c)?`
)

// KeywordParser matches user input to commands using keyword patterns.
// Capture groups become the command arguments.
type KeywordParser struct {
	log   *logger.Logger
	rules []commandRule
}

type commandRule struct {
	regex   *regexp.Regexp
	command domain.CommandType
	fixed   []string // arguments supplied by the rule itself
}

func rule(pattern string, cmd domain.CommandType, fixed ...string) commandRule {
	return commandRule{regex: regexp.MustCompile(`(?i)^` + pattern + `$`), command: cmd, fixed: fixed}
}

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.rules = []commandRule{
		rule(`(?:quit|exit|q)`, domain.CommandQuit),
		rule(`(?:help|\?)`, domain.CommandHelp),
		rule(`(?:presets|list)`, domain.CommandListPresets),
		rule(`(?:preset|use)\s+(\S+)`, domain.CommandSelectPreset),
		rule(`search\s+(.+)`, domain.CommandSearchPresets),
		rule(`mode\s+(\S+)`, domain.CommandSetMode),

		// Bare anchor keywords switch mode without touching the weight.
		rule(`flour`, domain.CommandSetMode, "flour"),
		rule(`(?:dough|total)`, domain.CommandSetMode, "dough"),
		rule(`batch`, domain.CommandSetMode, "batch"),

		rule(`flour\s+`+grams, domain.CommandSetFlour),
		rule(`(?:dough|total)\s+`+grams, domain.CommandSetDough),
		rule(`batch\s+(\S+?)\s*(?:x|×|\*|\s)\s*`+grams, domain.CommandSetBatch),

		rule(`(?:sh|starter-hydration|starter\s+hydration)\s+`+percent, domain.CommandSetStarterHydration),
		rule(`(?:hydration|hyd|h)\s+`+percent, domain.CommandSetHydration),
		rule(`salt\s+`+percent, domain.CommandSetSalt),
		rule(`starter\s+`+percent, domain.CommandSetStarter),

		rule(`(?:calc|calculate|c|=)`, domain.CommandCalculate),
		rule(`levain(?:\s+(\S+))?`, domain.CommandSetLevainRatio),
		rule(`temp(?:erature)?(?:\s+`+degrees+`\s+`+degrees+`\s+`+degrees+`\s+`+degrees+`)?`, domain.CommandTemperature),
		rule(`(?:show|status)`, domain.CommandShow),
		rule(`history`, domain.CommandHistory),
		rule(`(?:reset|clear)`, domain.CommandReset),
	}
	return p
}

// Parse converts user input into a command. Unmatched input yields
// CommandUnknown with the trimmed input as its only argument.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Command, error) {
	trimmed := strings.Join(strings.Fields(input), " ")
	if trimmed == "" {
		return &domain.Command{Type: domain.CommandUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	// A bare number picks a preset by its list position.
	if len(trimmed) <= 2 && isDigits(trimmed) {
		return &domain.Command{Type: domain.CommandSelectPreset, Args: []string{trimmed}}, nil
	}

	for _, r := range p.rules {
		m := r.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		args := append([]string(nil), r.fixed...)
		for _, group := range m[1:] {
			if group != "" {
				args = append(args, group)
			}
		}
		p.log.Debug("matched command: %s args=%q", r.command, args)
		return &domain.Command{Type: r.command, Args: args}, nil
	}

	p.log.Debug("no match, returning unknown command")
	return &domain.Command{Type: domain.CommandUnknown, Args: []string{trimmed}}, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
