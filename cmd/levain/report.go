package main

import (
	"strconv"
	"strings"

	"github.com/hammamikhairi/levain/internal/display"
	"github.com/hammamikhairi/levain/internal/domain"
	"github.com/hammamikhairi/levain/internal/engine"
)

// recipeReport is a computed recipe plus the levain build for its starter.
type recipeReport struct {
	view   display.RecipeView
	levain *domain.LevainBuild
}

// computeReport validates form, computes the recipe and sizes the levain
// build for the resulting starter weight. A blank ratio uses fallback.
func computeReport(eng *engine.Engine, form domain.RecipeForm, title, rawRatio string, fallback float64) (*recipeReport, error) {
	ratios, anchor, err := eng.Validator().ParseRecipe(form)
	if err != nil {
		return nil, err
	}
	res, err := eng.ComputeRecipe(ratios, anchor)
	if err != nil {
		return nil, err
	}

	ratio := fallback
	if strings.TrimSpace(rawRatio) != "" {
		if ratio, err = eng.Validator().ParseLevainRatio(rawRatio); err != nil {
			return nil, err
		}
	}
	build, err := eng.BuildLevain(float64(res.Starter), ratio)
	if err != nil {
		return nil, err
	}

	return &recipeReport{
		view:   display.RecipeView{Title: title, Ratios: ratios, Anchor: anchor, Result: res},
		levain: build,
	}, nil
}

func (r *recipeReport) render() string {
	out := display.RenderRecipe(r.view)
	if r.levain != nil {
		out += "\n" + display.RenderLevain(r.levain)
	}
	return out
}

// applyPreset copies a preset's ratios into the form's text fields.
func applyPreset(form *domain.RecipeForm, p *domain.Preset) {
	r := p.Ratios()
	form.Hydration = formatNumber(r.Hydration)
	form.Salt = formatNumber(r.Salt)
	form.Starter = formatNumber(r.Starter)
	form.StarterHydration = formatNumber(r.StarterHydration)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// errorMessage returns the user-facing text for err.
func errorMessage(err error) string {
	if ve, ok := domain.AsValidation(err); ok && ve.Msg != "" {
		return ve.Msg
	}
	return "Error: " + err.Error()
}
