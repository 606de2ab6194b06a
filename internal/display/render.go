package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/hammamikhairi/levain/internal/domain"
)

// Renderers return plain multi-line strings so the REPL and the one-shot
// subcommands print the same output.

var tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52525b"))

// RecipeView is everything RenderRecipe shows.
type RecipeView struct {
	Title  string // preset name, or empty for custom ratios
	Ratios domain.Ratios
	Anchor domain.Anchor
	Result *domain.Result
}

// RenderRecipe renders the weight table, true hydration and the
// correction note.
func RenderRecipe(v RecipeView) string {
	res := v.Result
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Inherit(headingStyle)
			}
			if col > 0 {
				s = s.Align(lipgloss.Right)
			}
			return s.Inherit(primaryStyle)
		}).
		Headers("Ingredient", "Weight", "Baker's %").
		Row("Flour", grams(res.Flour), "100%").
		Row("Water", grams(res.Water), pct(v.Ratios.Hydration)).
		Row("Salt", grams(res.Salt), pct(v.Ratios.Salt)).
		Row("Starter", grams(res.Starter), pct(v.Ratios.Starter)).
		Row("Total", grams(res.Total), "")

	var b strings.Builder
	b.WriteString(headingStyle.Render(recipeTitle(v)))
	b.WriteByte('\n')
	b.WriteString(t.Render())
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%s %s %s\n",
		labelStyle.Render("True hydration:"),
		valueStyle.Render(fmt.Sprintf("%.1f%%", res.TrueHydration)),
		secondaryStyle.Render("("+res.Feel.String()+")"))
	if res.Correction != 0 {
		b.WriteString(secondaryStyle.Render(fmt.Sprintf("Adjusted water by %+dg so the total matches.", res.Correction)))
		b.WriteByte('\n')
	}
	for _, w := range res.Warnings {
		b.WriteString(warningStyle.Render("Warning: " + w.Msg))
		b.WriteByte('\n')
	}
	return b.String()
}

func recipeTitle(v RecipeView) string {
	name := v.Title
	if name == "" {
		name = "Custom"
	}
	switch v.Anchor.Mode {
	case domain.ModeDough:
		return fmt.Sprintf("%s: %s of dough", name, gramsF(v.Anchor.Total))
	case domain.ModeBatch:
		return fmt.Sprintf("%s: %s × %s", name, num(v.Anchor.Count), gramsF(v.Anchor.UnitWeight))
	default:
		return fmt.Sprintf("%s: %s of flour", name, gramsF(v.Anchor.Flour))
	}
}

// RenderLevain renders a levain build. A nil build means the recipe
// needs no starter.
func RenderLevain(b *domain.LevainBuild) string {
	if b == nil {
		return secondaryStyle.Render("No starter in this recipe, so no levain build is needed.") + "\n"
	}
	r := num(b.Ratio)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", headingStyle.Render(fmt.Sprintf("Levain build 1:%s:%s for %s", r, r, grams(b.Target))))
	fmt.Fprintf(&sb, "%s %s   %s %s   %s %s\n",
		labelStyle.Render("Seed"), valueStyle.Render(grams(b.Seed)),
		labelStyle.Render("Flour"), valueStyle.Render(grams(b.Flour)),
		labelStyle.Render("Water"), valueStyle.Render(grams(b.Water)))
	if sum := b.Sum(); sum != b.Target {
		fmt.Fprintf(&sb, "%s\n", secondaryStyle.Render(fmt.Sprintf("Builds %s after rounding.", grams(sum))))
	}
	return sb.String()
}

// RenderTemperature renders the mixing-water temperature and its band.
func RenderTemperature(in domain.TemperatureInputs, res *domain.TemperatureResult) string {
	var b strings.Builder
	style := valueStyle
	switch res.Band {
	case domain.BandScalding:
		style = urgentOutputStyle
	case domain.BandIce:
		style = chatStyle
	}
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Water temperature:"), style.Render(fmt.Sprintf("%d°C", res.Water)))
	fmt.Fprintf(&b, "%s\n", secondaryStyle.Render(fmt.Sprintf(
		"target %s°C × 3 - (room %s°C + flour %s°C + friction %s°C)",
		num(in.Target), num(in.Room), num(in.Flour), num(in.Friction))))
	switch res.Band {
	case domain.BandScalding:
		b.WriteString(warningStyle.Render("Too hot to handle. Warm the flour or the room instead."))
		b.WriteByte('\n')
	case domain.BandIce:
		b.WriteString(warningStyle.Render("Below freezing. Use ice water and chill the flour."))
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderPresets renders a numbered preset list. Numbers match the
// positions accepted by the preset command.
func RenderPresets(presets []domain.PresetSummary) string {
	if len(presets) == 0 {
		return secondaryStyle.Render("No presets found.") + "\n"
	}
	var b strings.Builder
	for i, p := range presets {
		fmt.Fprintf(&b, "%s %s %s\n",
			labelStyle.Render(fmt.Sprintf("[%d]", i+1)),
			primaryStyle.Render(p.Name),
			secondaryStyle.Render("("+p.ID+")"))
		if p.Tip != "" {
			fmt.Fprintf(&b, "    %s\n", secondaryStyle.Render(p.Tip))
		}
		if len(p.Tags) > 0 {
			fmt.Fprintf(&b, "    %s\n", secondaryStyle.Render("Tags: "+strings.Join(p.Tags, ", ")))
		}
	}
	return b.String()
}

// RenderHistory renders saved snapshots, newest first.
func RenderHistory(snaps []*domain.Snapshot) string {
	if len(snaps) == 0 {
		return secondaryStyle.Render("No saved calculations yet.") + "\n"
	}
	var b strings.Builder
	for _, s := range snaps {
		preset := s.PresetID
		if preset == "" {
			preset = "custom"
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			labelStyle.Render(s.SavedAt.Local().Format("2006-01-02 15:04")),
			primaryStyle.Render(preset),
			secondaryStyle.Render(SummarizeForm(s.Recipe)))
	}
	return b.String()
}

// SummarizeForm describes a recipe form in one line, e.g.
// "dough 1000g, 75/2/20%, starter 100%".
func SummarizeForm(f domain.RecipeForm) string {
	mode := f.Mode
	if mode == "" {
		mode = domain.ModeFlour.String()
	}
	var anchor string
	switch mode {
	case "dough", "total":
		anchor = "dough " + orDash(f.Dough) + "g"
	case "batch":
		anchor = "batch " + orDash(f.BatchCount) + " × " + orDash(f.BatchUnit) + "g"
	default:
		anchor = "flour " + orDash(f.Flour) + "g"
	}
	sh := f.StarterHydration
	if strings.TrimSpace(sh) == "" {
		sh = strconv.Itoa(domain.DefaultStarterHydration)
	}
	return fmt.Sprintf("%s, %s/%s/%s%%, starter %s%%",
		anchor, orDash(f.Hydration), orDash(f.Salt), orDash(f.Starter), sh)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return strings.TrimSpace(s)
}

func grams(g int) string { return strconv.Itoa(g) + "g" }

func gramsF(g float64) string { return num(g) + "g" }

func pct(p float64) string { return num(p) + "%" }

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
