package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"brewlog/internal/bootstrap"
	shotdto "brewlog/internal/modules/shot/dto"
	statsdto "brewlog/internal/modules/stats/dto"
	"brewlog/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var journalPath string

	root := &cobra.Command{
		Use:           "brewlog",
		Short:         "Espresso brew journal and grind advisor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&journalPath, "journal", ".", "brew journal path")

	root.AddCommand(newTUICmd(&journalPath))
	root.AddCommand(newGrinderCmd(&journalPath))
	root.AddCommand(newBeanCmd(&journalPath))
	root.AddCommand(newShotCmd(&journalPath))
	root.AddCommand(newGuidanceCmd(&journalPath))
	root.AddCommand(newAdherenceCmd(&journalPath))
	root.AddCommand(newStatsCmd(&journalPath))
	root.AddCommand(newReindexCmd(&journalPath))
	return root
}

func loadApp(journalPath string) (*bootstrap.App, error) {
	cfg, err := config.New(journalPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(journalPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run brewlog terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*journalPath)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newGrinderCmd(journalPath *string) *cobra.Command {
	grinder := &cobra.Command{Use: "grinder", Short: "Grinder scale configuration"}

	var scaleMin, scaleMax, stepSize float64
	set := &cobra.Command{
		Use:   "set --min <value> --max <value> --step <value>",
		Short: "Configure the grinder adjustment scale",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*journalPath)
			if err != nil {
				return err
			}
			out, err := app.GrinderCLI.Set(context.Background(), scaleMin, scaleMax, stepSize)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "grinder scale set: %.2f..%.2f step %.2f (%d points)\n", out.ScaleMin, out.ScaleMax, out.StepSize, out.Points)
			return nil
		},
	}
	set.Flags().Float64Var(&scaleMin, "min", 0, "lowest grind setting")
	set.Flags().Float64Var(&scaleMax, "max", 0, "highest grind setting")
	set.Flags().Float64Var(&stepSize, "step", 0, "smallest adjustment increment")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the configured grinder scale",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*journalPath)
			if err != nil {
				return err
			}
			out, err := app.GrinderCLI.Get(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "scale: %.2f..%.2f\nstep: %.2f\npoints: %d\nupdated: %s\n", out.ScaleMin, out.ScaleMax, out.StepSize, out.Points, out.UpdatedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}

	grinder.AddCommand(set, show)
	return grinder
}

func newBeanCmd(journalPath *string) *cobra.Command {
	bean := &cobra.Command{Use: "bean", Short: "Coffee bean registry"}

	var roaster, roast, origin string
	var tags []string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a coffee bean",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*journalPath)
			if err != nil {
				return err
			}
			out, err := app.BeanCLI.Add(context.Background(), args[0], roaster, roast, origin, tags)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s) note=%s\n", out.Name, out.ID, out.NotePath)
			return nil
		},
	}
	add.Flags().StringVar(&roaster, "roaster", "", "roaster name")
	add.Flags().StringVar(&roast, "roast", "medium", "roast level: light|medium|medium-dark|dark")
	add.Flags().StringVar(&origin, "origin", "", "bean origin")
	add.Flags().StringSliceVar(&tags, "tags", nil, "tags")

	bean.AddCommand(add)

	bean.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered beans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*journalPath)
			if err != nil {
				return err
			}
			beans, err := app.BeanCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(beans) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no beans")
				return nil
			}
			for _, b := range beans {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", b.ID, b.Slug, b.Roaster, b.Name)
			}
			return nil
		},
	})

	bean.AddCommand(&cobra.Command{
		Use:   "show <id-or-slug>",
		Short: "Show bean details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*journalPath)
			if err != nil {
				return err
			}
			b, err := app.BeanCLI.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nname: %s\nroaster: %s\nroast: %s\norigin: %s\ntags: %s\nnote: %s\nadded: %s\n",
				b.ID, b.Name, b.Roaster, b.Roast, b.Origin, strings.Join(b.Tags, ", "), b.NotePath, b.AddedAt.Format("2006-01-02"))
			return nil
		},
	})

	return bean
}

func newShotCmd(journalPath *string) *cobra.Command {
	shot := &cobra.Command{Use: "shot", Short: "Espresso shot log"}

	var beanRef, notes, taste, strength string
	var dose, yield, grind, extraction float64
	record := &cobra.Command{
		Use:   "record --bean <id-or-slug> --dose <g> --yield <g> --grind <setting>",
		Short: "Record a pulled shot and get grind advice",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(beanRef) == "" {
				return fmt.Errorf("--bean is required")
			}
			app, err := loadApp(*journalPath)
			if err != nil {
				return err
			}
			input := shotdto.RecordInput{
				Bean:         beanRef,
				DoseGrams:    dose,
				YieldGrams:   yield,
				GrindSetting: grind,
				Notes:        notes,
				Taste:        taste,
				Strength:     strength,
			}
			if cmd.Flags().Changed("time") {
				input.ExtractionSeconds = &extraction
			}
			out, err := app.ShotCLI.Record(context.Background(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "shot recorded: %s ratio=1:%.2f\n", out.Shot.ID, out.Shot.Ratio)
			printGuidanceSummary(cmd, out.Guidance)
			if out.FollowEvaluated {
				if out.FollowedPrior {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "followed prior suggestion of %.2f\n", out.PriorSuggested)
				} else {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "prior suggestion of %.2f not followed\n", out.PriorSuggested)
				}
			}
			return nil
		},
	}
	record.Flags().StringVar(&beanRef, "bean", "", "bean id or slug")
	record.Flags().Float64Var(&dose, "dose", 0, "dose in grams")
	record.Flags().Float64Var(&yield, "yield", 0, "yield in grams")
	record.Flags().Float64Var(&grind, "grind", 0, "grind setting used")
	record.Flags().Float64Var(&extraction, "time", 0, "extraction time in seconds")
	record.Flags().StringVar(&notes, "notes", "", "free-form notes")
	record.Flags().StringVar(&taste, "taste", "", "taste verdict: sour|perfect|bitter")
	record.Flags().StringVar(&strength, "strength", "", "strength verdict: weak|strong")

	var tasteShotID string
	tasteCmd := &cobra.Command{
		Use:   "taste --shot-id <id> --taste <verdict>",
		Short: "Attach or revise tasting notes on a shot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(tasteShotID) == "" {
				return fmt.Errorf("--shot-id is required")
			}
			app, err := loadApp(*journalPath)
			if err != nil {
				return err
			}
			out, err := app.ShotCLI.Taste(context.Background(), tasteShotID, taste, strength)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "shot %s tasted: %s %s\n", out.ID, out.Taste, out.Strength)
			return nil
		},
	}
	tasteCmd.Flags().StringVar(&tasteShotID, "shot-id", "", "shot id")
	tasteCmd.Flags().StringVar(&taste, "taste", "", "taste verdict: sour|perfect|bitter")
	tasteCmd.Flags().StringVar(&strength, "strength", "", "strength verdict: weak|strong")

	var listBean string
	var listLimit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recorded shots, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*journalPath)
			if err != nil {
				return err
			}
			beanID := ""
			if strings.TrimSpace(listBean) != "" {
				bean, err := app.BeanCLI.Get(context.Background(), listBean)
				if err != nil {
					return err
				}
				beanID = bean.ID
			}
			shots, err := app.ShotCLI.List(context.Background(), beanID, listLimit)
			if err != nil {
				return err
			}
			if len(shots) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no shots")
				return nil
			}
			for _, s := range shots {
				timeStr := "untimed"
				if s.ExtractionSeconds != nil {
					timeStr = fmt.Sprintf("%.1fs", *s.ExtractionSeconds)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tgrind=%.2f\t1:%.2f\t%s\t%s\n",
					s.ID, s.PulledAt.Format("2006-01-02 15:04"), s.GrindSetting, s.Ratio, timeStr, s.Taste)
			}
			return nil
		},
	}
	list.Flags().StringVar(&listBean, "bean", "", "filter by bean id or slug")
	list.Flags().IntVar(&listLimit, "limit", 0, "limit results (0 = all)")

	deleteCmd := &cobra.Command{
		Use:   "delete <shot-id>",
		Short: "Delete a shot and its recommendation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*journalPath)
			if err != nil {
				return err
			}
			if err := app.ShotCLI.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "shot %s deleted\n", args[0])
			return nil
		},
	}

	shot.AddCommand(record, tasteCmd, list, deleteCmd)
	return shot
}

func printGuidanceSummary(cmd *cobra.Command, g shotdto.GuidanceSummary) {
	switch g.Direction {
	case "no_change":
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "guidance: keep %.2f (%s, %s confidence)\n", g.SuggestedSetting, g.Reason, g.Confidence)
	default:
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "guidance: go %s to %.2f, %d step(s) (%s, %s confidence)\n", g.Direction, g.SuggestedSetting, g.Steps, g.Reason, g.Confidence)
	}
}

func newGuidanceCmd(journalPath *string) *cobra.Command {
	var beanRef string
	guidance := &cobra.Command{
		Use:   "guidance --bean <id-or-slug>",
		Short: "Show the latest grind guidance for a bean",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(beanRef) == "" {
				return fmt.Errorf("--bean is required")
			}
			app, err := loadApp(*journalPath)
			if err != nil {
				return err
			}
			bean, err := app.BeanCLI.Get(context.Background(), beanRef)
			if err != nil {
				return err
			}
			g, err := app.AdvisorCLI.Guidance(context.Background(), bean.ID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "bean: %s\nsuggested: %.2f (%s, %d step(s))\nconfidence: %s\nreason: %s\nfollowed: %t\nfrom shot: %s at %s\n",
				bean.Name, g.SuggestedSetting, g.Direction, g.Steps, g.Confidence, g.Reason, g.WasFollowed, g.ShotID, g.CreatedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
	guidance.Flags().StringVar(&beanRef, "bean", "", "bean id or slug")
	return guidance
}

func newAdherenceCmd(journalPath *string) *cobra.Command {
	var beanRef string
	adherence := &cobra.Command{
		Use:   "adherence --bean <id-or-slug>",
		Short: "Report how often suggestions were followed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(beanRef) == "" {
				return fmt.Errorf("--bean is required")
			}
			app, err := loadApp(*journalPath)
			if err != nil {
				return err
			}
			bean, err := app.BeanCLI.Get(context.Background(), beanRef)
			if err != nil {
				return err
			}
			out, err := app.AdvisorCLI.Adherence(context.Background(), bean.ID)
			if err != nil {
				return err
			}
			if out.Total == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no recommendations yet")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "followed %d of %d recommendations (%.0f%%)\n", out.Followed, out.Total, out.Rate*100)
			for _, c := range out.ByConfidence {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d/%d (%.0f%%)\n", c.Confidence, c.Followed, c.Total, c.Rate*100)
			}
			return nil
		},
	}
	adherence.Flags().StringVar(&beanRef, "bean", "", "bean id or slug")
	return adherence
}

func newStatsCmd(journalPath *string) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Shot statistics"}

	var beanRef string
	resolveBean := func(app *bootstrap.App) (string, error) {
		if strings.TrimSpace(beanRef) == "" {
			return "", nil
		}
		bean, err := app.BeanCLI.Get(context.Background(), beanRef)
		if err != nil {
			return "", err
		}
		return bean.ID, nil
	}

	ratio := &cobra.Command{
		Use:   "ratio",
		Short: "Brew ratio distribution and banding",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*journalPath)
			if err != nil {
				return err
			}
			beanID, err := resolveBean(app)
			if err != nil {
				return err
			}
			out, err := app.StatsCLI.Ratio(context.Background(), beanID)
			if err != nil {
				return err
			}
			if out.Insufficient {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "not enough shots: need %d with usable dose and yield\n", out.Required)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "shots: %d (excluded %d)\n", out.Count, out.Excluded)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ratio: mean 1:%.2f median 1:%.2f range 1:%.2f..1:%.2f\n", out.Mean, out.Median, out.Min, out.Max)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "bands: under %.0f%% typical %.0f%% optimal %.0f%% over %.0f%%\n", out.PctUnder, out.PctTypical, out.PctOptimal, out.PctOver)
			return nil
		},
	}

	timeCmd := &cobra.Command{
		Use:   "time",
		Short: "Extraction time distribution and banding",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*journalPath)
			if err != nil {
				return err
			}
			beanID, err := resolveBean(app)
			if err != nil {
				return err
			}
			out, err := app.StatsCLI.Time(context.Background(), beanID)
			if err != nil {
				return err
			}
			if out.Insufficient {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "not enough shots: need %d timed shots\n", out.Required)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "timed shots: %d (untimed %d)\n", out.Count, out.Excluded)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "time: mean %.1fs median %.1fs range %.1fs..%.1fs\n", out.Mean, out.Median, out.Min, out.Max)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "bands: fast %.0f%% optimal %.0f%% slow %.0f%%\n", out.PctFast, out.PctOptimal, out.PctSlow)
			return nil
		},
	}

	trends := &cobra.Command{
		Use:   "trends",
		Short: "Compare earlier and later shot halves",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*journalPath)
			if err != nil {
				return err
			}
			beanID, err := resolveBean(app)
			if err != nil {
				return err
			}
			out, err := app.StatsCLI.Trends(context.Background(), beanID)
			if err != nil {
				return err
			}
			if out.Insufficient {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "not enough shots: need %d\n", out.Required)
				return nil
			}
			printHalf := func(label string, h statsdto.HalfSummary) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d shots, mean ratio 1:%.2f, mean time %.1fs\n", label, h.Shots, h.MeanRatio, h.MeanTime)
			}
			printHalf("earlier", out.Earlier)
			printHalf("later", out.Later)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deltas: ratio %+.2f time %+.1fs\n", out.RatioDelta, out.TimeDelta)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "trend: %s\n", out.Class)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pace: %.1f shots/day over %d day(s)\n", out.ShotsPerDay, out.DaysAnalyzed)
			return nil
		},
	}

	for _, c := range []*cobra.Command{ratio, timeCmd, trends} {
		c.Flags().StringVar(&beanRef, "bean", "", "filter by bean id or slug")
	}

	stats.AddCommand(ratio, timeCmd, trends)
	return stats
}

func newReindexCmd(journalPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild SQLite projections from journal markdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*journalPath)
			if err != nil {
				return err
			}
			if err := app.BeanCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
			return nil
		},
	}
}
