package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hammamikhairi/levain/internal/display"
	"github.com/hammamikhairi/levain/internal/domain"
	"github.com/hammamikhairi/levain/internal/engine"
	"github.com/hammamikhairi/levain/internal/logger"
	"github.com/hammamikhairi/levain/internal/validate"
)

// historyLimit is how many snapshots the history command shows.
const historyLimit = 10

// output is the part of display.UI the REPL writes to.
type output interface {
	PrintChat(text string)
	PrintHeading(text string)
	PrintLine(text string)
	PrintHint(text string)
	PrintUrgent(text string)
	PrintBlock(block string)
}

var _ output = (*display.UI)(nil)

// cliApp is the interactive calculator. The raw form is kept between
// commands; it is only parsed into numbers when something is computed.
type cliApp struct {
	engine     *engine.Engine
	presets    domain.PresetSource
	store      domain.SnapshotStore
	parser     domain.CommandParser
	notifier   domain.Notifier
	log        *logger.Logger
	out        output
	quit       func()
	buildRatio float64

	mu          sync.Mutex // guards the fields below; the status bar reads them
	form        domain.RecipeForm
	temp        domain.TemperatureForm
	levainRatio string
	presetID    string
	presetName  string
}

func (a *cliApp) run(ctx context.Context, input <-chan string) {
	a.restore(ctx)

	for {
		var line string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case line, ok = <-input:
			if !ok {
				return
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cmd, err := a.parser.Parse(ctx, line)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}

		a.log.Debug("command: %s (args=%q)", cmd.Type, cmd.Args)
		if done := a.handleCommand(ctx, cmd); done {
			return
		}
	}
}

// handleCommand executes one command. It reports true when the REPL
// should stop.
func (a *cliApp) handleCommand(ctx context.Context, cmd *domain.Command) bool {
	switch cmd.Type {
	case domain.CommandHelp:
		a.showHelp()
	case domain.CommandQuit:
		a.out.PrintChat("Happy baking!")
		if a.quit != nil {
			a.quit()
		}
		return true
	case domain.CommandListPresets:
		a.listPresets(ctx)
	case domain.CommandSelectPreset:
		a.selectPreset(ctx, cmd.Arg(0))
	case domain.CommandSearchPresets:
		a.searchPresets(ctx, cmd.Arg(0))
	case domain.CommandSetMode:
		a.setMode(cmd.Arg(0))
	case domain.CommandSetFlour:
		a.setAnchor(domain.ModeFlour, validate.FieldFlour, cmd.Arg(0), func(f *domain.RecipeForm, v string) { f.Flour = v })
	case domain.CommandSetDough:
		a.setAnchor(domain.ModeDough, validate.FieldDough, cmd.Arg(0), func(f *domain.RecipeForm, v string) { f.Dough = v })
	case domain.CommandSetBatch:
		a.setBatch(cmd.Arg(0), cmd.Arg(1))
	case domain.CommandSetHydration:
		a.setRatio(validate.FieldHydration, cmd.Arg(0), func(f *domain.RecipeForm, v string) { f.Hydration = v })
	case domain.CommandSetSalt:
		a.setRatio(validate.FieldSalt, cmd.Arg(0), func(f *domain.RecipeForm, v string) { f.Salt = v })
	case domain.CommandSetStarter:
		a.setRatio(validate.FieldStarter, cmd.Arg(0), func(f *domain.RecipeForm, v string) { f.Starter = v })
	case domain.CommandSetStarterHydration:
		a.setRatio(validate.FieldStarterHydration, cmd.Arg(0), func(f *domain.RecipeForm, v string) { f.StarterHydration = v })
	case domain.CommandCalculate:
		a.calculate(ctx)
	case domain.CommandSetLevainRatio:
		a.levain(cmd.Arg(0))
	case domain.CommandTemperature:
		a.temperature(ctx, cmd.Args)
	case domain.CommandShow:
		a.show()
	case domain.CommandHistory:
		a.history(ctx)
	case domain.CommandReset:
		a.reset()
	default:
		a.out.PrintHint(fmt.Sprintf("I didn't understand %q. Type 'help' for commands.", cmd.Arg(0)))
	}
	return false
}

// restore loads the most recent snapshot into the form.
func (a *cliApp) restore(ctx context.Context) {
	snap, err := a.store.Latest(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return
	}
	if err != nil {
		a.log.Error("restoring last inputs: %v", err)
		return
	}

	a.mu.Lock()
	a.form = snap.Recipe
	a.temp = snap.Temperature
	a.levainRatio = snap.LevainRatio
	a.presetID = snap.PresetID
	a.presetName = ""
	a.mu.Unlock()

	if snap.PresetID != "" {
		if p, err := a.presets.Get(ctx, snap.PresetID); err == nil {
			a.mu.Lock()
			a.presetName = p.Name
			a.mu.Unlock()
		}
	}

	a.log.Info("restored snapshot %s", snap.ID)
	a.out.PrintHint("Restored your last inputs: " + display.SummarizeForm(snap.Recipe))
}

func (a *cliApp) save(ctx context.Context) {
	a.mu.Lock()
	snap := &domain.Snapshot{
		PresetID:    a.presetID,
		Recipe:      a.form,
		Temperature: a.temp,
		LevainRatio: a.levainRatio,
	}
	a.mu.Unlock()

	if err := a.store.Save(ctx, snap); err != nil {
		a.log.Error("saving snapshot: %v", err)
		_ = a.notifier.NotifyUrgent(ctx, "Could not save your inputs; they will not be restored next time.")
	}
}

func (a *cliApp) listPresets(ctx context.Context) {
	list, err := a.presets.List(ctx)
	if err != nil {
		a.out.PrintUrgent(errorMessage(err))
		return
	}
	a.out.PrintHeading("Presets:")
	a.out.PrintBlock(display.RenderPresets(list))
	a.out.PrintChat("Pick one with 'preset <name>' or its number.")
}

func (a *cliApp) searchPresets(ctx context.Context, query string) {
	list, err := a.presets.Search(ctx, query)
	if err != nil {
		a.out.PrintUrgent(errorMessage(err))
		return
	}
	a.out.PrintHeading(fmt.Sprintf("Presets matching %q:", query))
	a.out.PrintBlock(display.RenderPresets(list))
}

func (a *cliApp) selectPreset(ctx context.Context, id string) {
	p, err := a.presets.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		a.out.PrintUrgent(fmt.Sprintf("No preset %q. Type 'presets' to see them all.", id))
		return
	}
	if err != nil {
		a.out.PrintUrgent(errorMessage(err))
		return
	}

	a.mu.Lock()
	applyPreset(&a.form, p)
	a.presetID = p.ID
	a.presetName = p.Name
	a.mu.Unlock()

	a.out.PrintChat(fmt.Sprintf("%s: %s%% water, %s%% salt, %s%% starter.",
		p.Name, formatNumber(p.Hydration), formatNumber(p.Salt), formatNumber(p.Starter)))
	if p.Tip != "" {
		a.out.PrintHint("Tip: " + p.Tip)
	}
}

func (a *cliApp) setMode(name string) {
	mode, ok := domain.AnchorModeFromString(strings.ToLower(name))
	if !ok {
		a.out.PrintUrgent("Mode must be flour, dough or batch.")
		return
	}
	a.mu.Lock()
	a.form.Mode = mode.String()
	a.mu.Unlock()
	a.out.PrintHint("Mode: " + mode.String())
}

func (a *cliApp) setAnchor(mode domain.AnchorMode, field, raw string, set func(*domain.RecipeForm, string)) {
	if _, err := validate.ParseNumber(field, raw); err != nil {
		a.out.PrintUrgent(errorMessage(err))
		return
	}
	a.mu.Lock()
	a.form.Mode = mode.String()
	set(&a.form, raw)
	a.mu.Unlock()
	a.out.PrintHint(fmt.Sprintf("Mode: %s, %sg", mode, raw))
}

func (a *cliApp) setBatch(count, unit string) {
	if _, err := validate.ParseNumber(validate.FieldBatchCount, count); err != nil {
		a.out.PrintUrgent(errorMessage(err))
		return
	}
	if _, err := validate.ParseNumber(validate.FieldBatchUnit, unit); err != nil {
		a.out.PrintUrgent(errorMessage(err))
		return
	}
	a.mu.Lock()
	a.form.Mode = domain.ModeBatch.String()
	a.form.BatchCount = count
	a.form.BatchUnit = unit
	a.mu.Unlock()
	a.out.PrintHint(fmt.Sprintf("Mode: batch, %s × %sg", count, unit))
}

// setRatio stores a percentage. Editing a ratio by hand detaches the
// form from its preset.
func (a *cliApp) setRatio(field, raw string, set func(*domain.RecipeForm, string)) {
	if _, err := validate.ParseNumber(field, raw); err != nil {
		a.out.PrintUrgent(errorMessage(err))
		return
	}
	a.mu.Lock()
	set(&a.form, raw)
	a.presetID = ""
	a.presetName = ""
	a.mu.Unlock()
}

func (a *cliApp) calculate(ctx context.Context) {
	a.mu.Lock()
	form, title, ratio := a.form, a.presetName, a.levainRatio
	a.mu.Unlock()

	report, err := computeReport(a.engine, form, title, ratio, a.buildRatio)
	if err != nil {
		a.out.PrintUrgent(errorMessage(err))
		return
	}
	a.out.PrintBlock(report.render())
	a.save(ctx)
}

func (a *cliApp) levain(raw string) {
	if raw != "" {
		if _, err := a.engine.Validator().ParseLevainRatio(raw); err != nil {
			a.out.PrintUrgent(errorMessage(err))
			return
		}
		a.mu.Lock()
		a.levainRatio = raw
		a.mu.Unlock()
	}

	a.mu.Lock()
	form, title, ratio := a.form, a.presetName, a.levainRatio
	a.mu.Unlock()

	report, err := computeReport(a.engine, form, title, ratio, a.buildRatio)
	if err != nil {
		// Without a complete recipe there is no starter weight to build.
		a.out.PrintHint("Levain ratio 1:" + a.ratioLabel(ratio) + ":" + a.ratioLabel(ratio) + ". Calculate a recipe to size the build.")
		return
	}
	a.out.PrintBlock(display.RenderLevain(report.levain))
}

func (a *cliApp) ratioLabel(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return formatNumber(a.buildRatio)
	}
	return strings.TrimSpace(raw)
}

func (a *cliApp) temperature(ctx context.Context, args []string) {
	if len(args) == 4 {
		a.mu.Lock()
		a.temp = domain.TemperatureForm{Room: args[0], Flour: args[1], Friction: args[2], Target: args[3]}
		a.mu.Unlock()
	}

	a.mu.Lock()
	form := a.temp
	a.mu.Unlock()

	in, err := a.engine.Validator().ParseTemperature(form)
	if err != nil {
		a.out.PrintUrgent(errorMessage(err))
		a.out.PrintHint("Usage: temp <room> <flour> <friction> <target>")
		return
	}
	res, err := a.engine.WaterTemperature(in)
	if err != nil {
		a.out.PrintUrgent(errorMessage(err))
		return
	}
	a.out.PrintBlock(display.RenderTemperature(in, res))
	a.save(ctx)
}

func (a *cliApp) show() {
	a.mu.Lock()
	form, temp, ratio, name := a.form, a.temp, a.levainRatio, a.presetName
	a.mu.Unlock()

	if name == "" {
		name = "custom"
	}
	a.out.PrintHeading("Current inputs:")
	a.out.PrintLine("Preset:  " + name)
	a.out.PrintLine("Recipe:  " + display.SummarizeForm(form))
	a.out.PrintLine("Levain:  1:" + a.ratioLabel(ratio) + ":" + a.ratioLabel(ratio))
	if temp != (domain.TemperatureForm{}) {
		a.out.PrintLine(fmt.Sprintf("Temp:    room %s, flour %s, friction %s, target %s",
			temp.Room, temp.Flour, temp.Friction, temp.Target))
	}
}

func (a *cliApp) history(ctx context.Context) {
	snaps, err := a.store.List(ctx, historyLimit)
	if err != nil {
		a.out.PrintUrgent(errorMessage(err))
		return
	}
	a.out.PrintHeading("Recent calculations:")
	a.out.PrintBlock(display.RenderHistory(snaps))
}

func (a *cliApp) reset() {
	a.mu.Lock()
	a.form = domain.RecipeForm{}
	a.temp = domain.TemperatureForm{}
	a.levainRatio = ""
	a.presetID = ""
	a.presetName = ""
	a.mu.Unlock()
	a.out.PrintHint("Inputs cleared.")
}

// status reports the current inputs for the status bar.
func (a *cliApp) status() []display.StatusField {
	a.mu.Lock()
	defer a.mu.Unlock()

	name := a.presetName
	if name == "" {
		name = "custom"
	}
	return []display.StatusField{
		{Label: "preset", Value: name},
		{Label: "recipe", Value: display.SummarizeForm(a.form)},
	}
}

func (a *cliApp) showHelp() {
	a.out.PrintHeading("Recipe:")
	a.out.PrintLine("  flour <g>                  Scale from the flour weight")
	a.out.PrintLine("  dough <g> / total <g>      Scale to a total dough weight")
	a.out.PrintLine("  batch <count> <g>          Scale to count pieces of g each")
	a.out.PrintLine("  mode flour|dough|batch     Switch the anchor")
	a.out.PrintLine("  hydration|h <%>            Water as % of flour")
	a.out.PrintLine("  salt <%>                   Salt as % of flour")
	a.out.PrintLine("  starter <%>                Starter as % of flour")
	a.out.PrintLine("  sh <%>                     Starter hydration (default 100)")
	a.out.PrintLine("  calc / c / =               Calculate the recipe")
	a.out.PrintHeading("Presets:")
	a.out.PrintLine("  presets / list             Show built-in and file presets")
	a.out.PrintLine("  preset <name|n>            Load a preset's ratios")
	a.out.PrintLine("  search <text>              Find presets by name, tip or tag")
	a.out.PrintHeading("Tools:")
	a.out.PrintLine("  levain [ratio]             Levain build for the recipe's starter")
	a.out.PrintLine("  temp <room> <flour> <friction> <target>")
	a.out.PrintLine("                             Mixing water temperature (°C)")
	a.out.PrintHeading("Session:")
	a.out.PrintLine("  show / status              Show the current inputs")
	a.out.PrintLine("  history                    Recent calculations")
	a.out.PrintLine("  reset                      Clear all inputs")
	a.out.PrintLine("  help                       Show this message")
	a.out.PrintLine("  quit / exit                Exit")
}
