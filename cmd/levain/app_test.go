package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/levain/internal/conversation"
	"github.com/hammamikhairi/levain/internal/domain"
	"github.com/hammamikhairi/levain/internal/engine"
	"github.com/hammamikhairi/levain/internal/logger"
	"github.com/hammamikhairi/levain/internal/recipe"
	"github.com/hammamikhairi/levain/internal/storage"
)

// recordingOutput captures everything the REPL prints.
type recordingOutput struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordingOutput) add(kind, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, kind+": "+text)
}

func (r *recordingOutput) PrintChat(text string)    { r.add("chat", text) }
func (r *recordingOutput) PrintHeading(text string) { r.add("heading", text) }
func (r *recordingOutput) PrintLine(text string)    { r.add("line", text) }
func (r *recordingOutput) PrintHint(text string)    { r.add("hint", text) }
func (r *recordingOutput) PrintUrgent(text string)  { r.add("urgent", text) }
func (r *recordingOutput) PrintBlock(block string)  { r.add("block", block) }

func (r *recordingOutput) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.lines, "\n")
}

func (r *recordingOutput) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = nil
}

func setupApp(t *testing.T) (*cliApp, *recordingOutput, *storage.MemoryStore) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	out := &recordingOutput{}
	store := storage.NewMemoryStore(log)
	app := &cliApp{
		engine:     engine.New(log),
		presets:    recipe.NewMemorySource(log),
		store:      store,
		parser:     conversation.NewKeywordParser(log),
		notifier:   conversation.NewCLINotifier(log, func(format string, a ...interface{}) { out.add("notify", fmt.Sprintf(format, a...)) }),
		log:        log,
		out:        out,
		buildRatio: engine.DefaultLevainRatio,
	}
	return app, out, store
}

// exec parses and handles each line in order.
func exec(t *testing.T, app *cliApp, lines ...string) {
	t.Helper()
	ctx := context.Background()
	for _, line := range lines {
		cmd, err := app.parser.Parse(ctx, line)
		require.NoError(t, err)
		app.handleCommand(ctx, cmd)
	}
}

func TestPresetThenCalculate(t *testing.T) {
	app, out, store := setupApp(t)

	exec(t, app, "preset focaccia", "dough 1000", "calc")

	text := out.String()
	assert.Contains(t, text, "Focaccia: 85% water, 2.5% salt, 15% starter.")
	assert.Contains(t, text, "Tip: Very sticky dough. Use olive oil on hands!")
	assert.Contains(t, text, "Focaccia: 1000g of dough")
	assert.Contains(t, text, "494g")
	assert.Contains(t, text, "Levain build 1:5:5 for 74g")

	snaps, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, "focaccia", snaps[0].PresetID)
	assert.Equal(t, "dough", snaps[0].Recipe.Mode)
	assert.Equal(t, "1000", snaps[0].Recipe.Dough)
	assert.Equal(t, "85", snaps[0].Recipe.Hydration)
}

func TestPresetByNumber(t *testing.T) {
	app, out, _ := setupApp(t)

	exec(t, app, "presets", "1")

	assert.Contains(t, out.String(), "[1] Bagel")
	assert.Contains(t, out.String(), "Bagel: 58% water, 2% salt, 1% starter.")
}

func TestUnknownPreset(t *testing.T) {
	app, out, _ := setupApp(t)

	exec(t, app, "preset brioche")

	assert.Contains(t, out.String(), `urgent: No preset "brioche"`)
}

func TestRejectsBadNumbersAtEntry(t *testing.T) {
	app, out, _ := setupApp(t)

	exec(t, app, "flour 500", "flour abc", "salt lots")

	assert.Contains(t, out.String(), "urgent: Flour weight must be a number.")
	assert.Contains(t, out.String(), "urgent: Salt must be a number.")
	assert.Equal(t, "500", app.form.Flour)
	assert.Empty(t, app.form.Salt)
}

func TestCalculateReportsMissingInputs(t *testing.T) {
	app, out, store := setupApp(t)

	exec(t, app, "hydration 70", "salt 2", "starter 20", "calc")

	assert.Contains(t, out.String(), "urgent: Flour weight is required.")
	snaps, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, snaps, "failed calculations are not saved")
}

func TestCalculateBatch(t *testing.T) {
	app, out, _ := setupApp(t)

	exec(t, app, "h 70", "salt 2", "starter 0", "batch 4 x 250g", "calc")

	text := out.String()
	assert.Contains(t, text, "Custom: 4 × 250g")
	assert.Contains(t, text, "1000g")
	assert.NotContains(t, text, "Levain build", "no starter means no levain build")
}

func TestImplausibleHydrationWarns(t *testing.T) {
	app, out, _ := setupApp(t)

	exec(t, app, "h 125", "salt 2", "starter 20", "flour 500", "c")

	assert.Contains(t, out.String(), "Warning: Hydration is over 120. This is likely a soup, not dough.")
	assert.Contains(t, out.String(), "625g")
}

func TestEditingRatioDetachesPreset(t *testing.T) {
	app, _, _ := setupApp(t)

	exec(t, app, "preset pizza")
	assert.Equal(t, "pizza", app.presetID)

	exec(t, app, "h 65")
	assert.Empty(t, app.presetID)
	assert.Equal(t, "65", app.form.Hydration)
	assert.Equal(t, "3", app.form.Salt, "other preset ratios are kept")
}

func TestLevainCommand(t *testing.T) {
	app, out, _ := setupApp(t)

	exec(t, app, "levain 2")
	assert.Contains(t, out.String(), "Levain ratio 1:2:2. Calculate a recipe to size the build.")

	out.reset()
	exec(t, app, "preset sourdough", "dough 1000", "levain")
	assert.Contains(t, out.String(), "Levain build 1:2:2 for 102g")

	out.reset()
	exec(t, app, "levain -1")
	assert.Contains(t, out.String(), "urgent:")
	assert.Equal(t, "2", app.levainRatio)
}

func TestTemperatureCommand(t *testing.T) {
	app, out, store := setupApp(t)

	exec(t, app, "temp")
	assert.Contains(t, out.String(), "urgent: Room temperature is required.")

	out.reset()
	exec(t, app, "temp 22 22 2 26")
	assert.Contains(t, out.String(), "32°C")

	out.reset()
	exec(t, app, "temp")
	assert.Contains(t, out.String(), "32°C", "temp reuses the last inputs")

	latest, err := store.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.TemperatureForm{Room: "22", Flour: "22", Friction: "2", Target: "26"}, latest.Temperature)
}

func TestShowAndReset(t *testing.T) {
	app, out, _ := setupApp(t)

	exec(t, app, "preset bagel", "flour 1000", "show")
	text := out.String()
	assert.Contains(t, text, "Preset:  Bagel")
	assert.Contains(t, text, "Recipe:  flour 1000g, 58/2/1%, starter 100%")
	assert.Contains(t, text, "Levain:  1:5:5")

	exec(t, app, "reset")
	assert.Equal(t, domain.RecipeForm{}, app.form)
	assert.Empty(t, app.presetID)
}

func TestHistoryCommand(t *testing.T) {
	app, out, _ := setupApp(t)

	exec(t, app, "history")
	assert.Contains(t, out.String(), "No saved calculations yet.")

	out.reset()
	exec(t, app, "preset ciabatta", "flour 500", "calc", "history")
	assert.Contains(t, out.String(), "ciabatta")
}

func TestUnknownCommand(t *testing.T) {
	app, out, _ := setupApp(t)

	exec(t, app, "knead well")

	assert.Contains(t, out.String(), `I didn't understand "knead well"`)
}

func TestRestoreLatestSnapshot(t *testing.T) {
	app, out, store := setupApp(t)
	ctx := context.Background()

	form := domain.RecipeForm{Mode: "dough", Dough: "900", Hydration: "80", Salt: "2.2", Starter: "40", StarterHydration: "100"}
	require.NoError(t, store.Save(ctx, &domain.Snapshot{PresetID: "ciabatta", Recipe: form, LevainRatio: "3"}))

	app.restore(ctx)

	assert.Equal(t, form, app.form)
	assert.Equal(t, "3", app.levainRatio)
	assert.Equal(t, "Ciabatta", app.presetName)
	assert.Contains(t, out.String(), "Restored your last inputs: dough 900g")
}

func TestRunStopsOnQuit(t *testing.T) {
	app, out, _ := setupApp(t)
	quit := make(chan struct{})
	app.quit = func() { close(quit) }

	input := make(chan string, 4)
	input <- "flour 500"
	input <- "quit"

	done := make(chan struct{})
	go func() {
		app.run(context.Background(), input)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after quit")
	}
	<-quit
	assert.Contains(t, out.String(), "Happy baking!")
}

func TestRunStopsOnCancel(t *testing.T) {
	app, _, _ := setupApp(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		app.run(ctx, make(chan string))
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestStatusFields(t *testing.T) {
	app, _, _ := setupApp(t)

	exec(t, app, "preset pizza", "batch 6 250")

	fields := app.status()
	require.Len(t, fields, 2)
	assert.Equal(t, "Pizza", fields[0].Value)
	assert.Equal(t, "batch 6 × 250g, 62/3/15%, starter 100%", fields[1].Value)
}
