package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medconnect/config"
	"medconnect/cron"
	"medconnect/utils"

	"github.com/spf13/cobra"
)

func workerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the availability refresh worker and snapshot scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorker()
		},
	}
}

func runWorker() error {
	logger := utils.GetLogger()

	a, err := newApp()
	if err != nil {
		return err
	}

	w, err := cron.NewWorker(utils.QueueRedisOpt(), a.service, config.AppConfig.SnapshotCron)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("worker: shutting down...")

	w.Shutdown()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.close(ctx)
	return nil
}
