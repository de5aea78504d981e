package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/khadim210/WolumaProject-sub000/internal/cli"
	"github.com/khadim210/WolumaProject-sub000/internal/model"
	"github.com/khadim210/WolumaProject-sub000/internal/service"
	"github.com/khadim210/WolumaProject-sub000/internal/stats"
)

func statsCmd() *cobra.Command {
	var (
		watch    bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show portfolio statistics and risk flags",
		Long: `Aggregates the project collection into dashboard figures: status counts,
active portfolio size, success rate, heuristic risk flags and a recent
activity feed. With --watch the view refreshes on an interval until
interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			fetch := func(ctx context.Context) ([]model.Project, error) {
				return store.ListProjects(ctx, service.ProjectFilter{})
			}

			if !watch {
				projects, err := fetch(ctx)
				if err != nil {
					return fmt.Errorf("failed to load projects: %w", err)
				}
				printSnapshot(stats.Aggregate(projects, time.Now()))
				return nil
			}

			poller := stats.NewPoller(fetch, interval, func(s stats.Snapshot) {
				fmt.Print("\033[H\033[2J") // clear screen between refreshes
				printSnapshot(s)
				fmt.Println(cli.SubtleStyle.Render("Press Ctrl+C to stop"))
			})
			poller.Start(ctx)
			defer poller.Stop()

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "refresh continuously")
	cmd.Flags().DurationVar(&interval, "interval", stats.DefaultInterval, "refresh interval with --watch")
	return cmd
}

func printSnapshot(s stats.Snapshot) {
	fmt.Println(cli.TitleStyle.Render("Portfolio overview"))
	fmt.Printf("Projects: %s  Active: %s  Success rate: %s\n",
		cli.BoldStyle.Render(fmt.Sprintf("%d", s.Total)),
		cli.BoldStyle.Render(fmt.Sprintf("%d", s.Active)),
		cli.BoldStyle.Render(fmt.Sprintf("%d%%", s.SuccessRate)))

	if len(s.StatusCounts) > 0 {
		fmt.Println(cli.SubtitleStyle.Render("By status"))
		for _, status := range []model.ProjectStatus{
			model.StatusDraft, model.StatusSubmitted, model.StatusEligible,
			model.StatusIneligible, model.StatusUnderReview, model.StatusPreSelected,
			model.StatusSelected, model.StatusRejected, model.StatusFormalization,
			model.StatusFinanced, model.StatusMonitoring, model.StatusClosed,
		} {
			if count := s.StatusCounts[status]; count > 0 {
				fmt.Printf("  %s %d\n", cli.RenderStatus(status), count)
			}
		}
	}

	fmt.Println(cli.SubtitleStyle.Render("Risks"))
	for _, risk := range s.Risks {
		fmt.Println("  " + cli.RenderRisk(risk))
	}

	if len(s.RecentUpdates) > 0 {
		fmt.Println(cli.SubtitleStyle.Render("Recent activity"))
		for _, update := range s.RecentUpdates {
			fmt.Printf("  %s  %s  %s %s\n",
				cli.SubtleStyle.Render(update.At.Format("2006-01-02 15:04")),
				cli.BoldStyle.Render(update.Title),
				cli.InfoStyle.Render(string(update.Kind)),
				cli.RenderStatus(update.Status))
		}
	}
}
