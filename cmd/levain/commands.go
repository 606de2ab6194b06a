package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/levain/internal/display"
	"github.com/hammamikhairi/levain/internal/domain"
	"github.com/hammamikhairi/levain/internal/validate"
)

// depsFunc returns the dependencies built by the root command's
// PersistentPreRunE.
type depsFunc func() *deps

func newRecipeCmd(getDeps depsFunc) *cobra.Command {
	var (
		form        domain.RecipeForm
		presetID    string
		levainRatio string
	)

	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Calculate a recipe from ratios and one anchor weight",
		Long: `Calculates ingredient weights from baker's percentages.

Give exactly one anchor: --flour, --dough, or --count with --unit.
--preset fills in the ratios; explicit ratio flags override it.

Example:
  levain recipe --preset focaccia --dough 1000
  levain recipe --hydration 70 --salt 2 --starter 20 --count 6 --unit 250`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := getDeps()
			ctx := cmd.Context()

			title := ""
			if presetID != "" {
				p, err := d.presets.Get(ctx, presetID)
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("no preset %q (see 'levain presets')", presetID)
				}
				if err != nil {
					return err
				}
				base := domain.RecipeForm{}
				applyPreset(&base, p)
				fl := cmd.Flags()
				if !fl.Changed("hydration") {
					form.Hydration = base.Hydration
				}
				if !fl.Changed("salt") {
					form.Salt = base.Salt
				}
				if !fl.Changed("starter") {
					form.Starter = base.Starter
				}
				if !fl.Changed("starter-hydration") {
					form.StarterHydration = base.StarterHydration
				}
				title = p.Name
				presetID = p.ID
			}

			if form.Mode == "" {
				form.Mode = inferMode(form)
			}

			report, err := computeReport(d.engine, form, title, levainRatio, d.cfg.BuildRatio)
			if err != nil {
				return errors.New(errorMessage(err))
			}
			fmt.Fprint(cmd.OutOrStdout(), report.render())

			snap := &domain.Snapshot{PresetID: presetID, Recipe: form, LevainRatio: levainRatio}
			if err := d.store.Save(ctx, snap); err != nil {
				d.log.Error("saving snapshot: %v", err)
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&presetID, "preset", "p", "", "preset name or list number")
	fl.StringVar(&form.Mode, "mode", "", "anchor mode: flour, dough or batch (inferred when empty)")
	fl.StringVar(&form.Flour, "flour", "", "flour weight in grams")
	fl.StringVar(&form.Dough, "dough", "", "total dough weight in grams")
	fl.StringVar(&form.BatchCount, "count", "", "number of pieces in a batch")
	fl.StringVar(&form.BatchUnit, "unit", "", "weight of each piece in grams")
	fl.StringVar(&form.Hydration, "hydration", "", "water as % of flour")
	fl.StringVar(&form.Salt, "salt", "", "salt as % of flour")
	fl.StringVar(&form.Starter, "starter", "", "starter as % of flour")
	fl.StringVar(&form.StarterHydration, "starter-hydration", "", "starter hydration % (default 100)")
	fl.StringVar(&levainRatio, "levain-ratio", "", "levain build ratio (default from LEVAIN_BUILD_RATIO)")
	return cmd
}

// inferMode picks the anchor from whichever weight was given.
func inferMode(f domain.RecipeForm) string {
	switch {
	case f.Dough != "":
		return domain.ModeDough.String()
	case f.BatchCount != "" || f.BatchUnit != "":
		return domain.ModeBatch.String()
	default:
		return domain.ModeFlour.String()
	}
}

func newLevainCmd(getDeps depsFunc) *cobra.Command {
	var ratio string

	cmd := &cobra.Command{
		Use:   "levain <starter grams>",
		Short: "Split a starter weight into a 1:r:r levain build",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := getDeps()
			target, err := validate.ParseNumber(validate.FieldLevainTarget, args[0])
			if err != nil {
				return errors.New(errorMessage(err))
			}
			r := d.cfg.BuildRatio
			if ratio != "" {
				if r, err = d.engine.Validator().ParseLevainRatio(ratio); err != nil {
					return errors.New(errorMessage(err))
				}
			}
			build, err := d.engine.BuildLevain(target, r)
			if err != nil {
				return errors.New(errorMessage(err))
			}
			fmt.Fprint(cmd.OutOrStdout(), display.RenderLevain(build))
			return nil
		},
	}
	cmd.Flags().StringVarP(&ratio, "ratio", "r", "", "flour and water parts per part of seed (default from LEVAIN_BUILD_RATIO)")
	return cmd
}

func newTempCmd(getDeps depsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "temp <room> <flour> <friction> <target>",
		Short: "Mixing-water temperature for a target dough temperature (°C)",
		Long: `Uses the three-factor rule: water = target × 3 - (room + flour + friction).

Example:
  levain temp 22 22 2 26`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := getDeps()
			form := domain.TemperatureForm{Room: args[0], Flour: args[1], Friction: args[2], Target: args[3]}
			in, err := d.engine.Validator().ParseTemperature(form)
			if err != nil {
				return errors.New(errorMessage(err))
			}
			res, err := d.engine.WaterTemperature(in)
			if err != nil {
				return errors.New(errorMessage(err))
			}
			fmt.Fprint(cmd.OutOrStdout(), display.RenderTemperature(in, res))
			return nil
		},
	}
}

func newPresetsCmd(getDeps depsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "presets [query]",
		Short: "List presets, or search them by name, tip or tag",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := getDeps()
			ctx := cmd.Context()

			var (
				list []domain.PresetSummary
				err  error
			)
			if len(args) == 1 {
				list, err = d.presets.Search(ctx, args[0])
			} else {
				list, err = d.presets.List(ctx)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), display.RenderPresets(list))
			return nil
		},
	}
}

func newHistoryCmd(getDeps depsFunc) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently saved calculations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := getDeps()
			snaps, err := d.store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), display.RenderHistory(snaps))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", historyLimit, "number of entries to show (0 for all)")
	return cmd
}
