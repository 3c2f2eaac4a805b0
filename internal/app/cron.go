package app

import (
	"context"

	"github.com/easynews/core/internal/modules/ingest"
	pkgcron "github.com/easynews/core/internal/pkg/cron"
	"go.uber.org/zap"
)

// registerCronJobs registers scheduled background jobs.
func (a *App) registerCronJobs(ingestSvc *ingest.Service) {
	cronLogger := a.logger.Named("CronService")

	a.sched.Register(pkgcron.Job{
		Name:        "fetch_news",
		Description: "Fetch, simplify and store new articles",
		Interval:    a.cfg.News.FetchInterval,
		Fn: func(ctx context.Context) error {
			summary, err := ingestSvc.Run(ctx)
			if err != nil {
				cronLogger.Warn("scheduled fetch failed", zap.Error(err))
				return err
			}
			cronLogger.Info("scheduled fetch finished",
				zap.Int("totalFetched", summary.TotalFetched),
				zap.Int("processed", summary.Processed),
				zap.Int("skipped", summary.Skipped))
			return nil
		},
	})
}
