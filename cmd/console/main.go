package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/nvraghu/garage-console/internal/config"
	"github.com/nvraghu/garage-console/internal/console"
	"github.com/nvraghu/garage-console/internal/notify"
	"github.com/nvraghu/garage-console/internal/scheduler"
	customersvc "github.com/nvraghu/garage-console/internal/service/customers"
	dashboardsvc "github.com/nvraghu/garage-console/internal/service/dashboard"
	servicingsvc "github.com/nvraghu/garage-console/internal/service/servicing"
	stocksvc "github.com/nvraghu/garage-console/internal/service/stocks"
	"github.com/nvraghu/garage-console/internal/session"
	"github.com/nvraghu/garage-console/pkg/clients/garage"
	"github.com/nvraghu/garage-console/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	sessions := session.Open(cfg.Session.Path)
	apiClient := garage.NewClient(cfg.API.BaseURL, cfg.API.Timeout, sessions, baseLogger.Named("client.garage"))
	notifier := notify.NewConsole(os.Stdout, baseLogger.Named("notify"))

	// The shell supplies the delete-confirmation prompt, but it needs
	// the controllers first; close over the pointer assigned below.
	var shell *console.Shell
	confirm := func(prompt string) bool { return shell.Confirm(prompt) }

	customerCtrl := customersvc.NewController(apiClient, notifier, confirm, baseLogger.Named("svc.customers"))
	stockCtrl := stocksvc.NewController(apiClient, notifier, confirm, baseLogger.Named("svc.stocks"))
	servicingCtrl := servicingsvc.NewController(apiClient, apiClient, apiClient, notifier, confirm, cfg.Bills.Dir, baseLogger.Named("svc.servicing"))

	renderer := console.NewTextRenderer(os.Stdout)
	dashboardAgg := dashboardsvc.NewAggregator(apiClient, renderer, notifier, cfg.Dashboard.RecentLimit, baseLogger.Named("svc.dashboard"))

	shell = console.New(os.Stdin, os.Stdout, sessions, apiClient,
		customerCtrl, stockCtrl, servicingCtrl, dashboardAgg, notifier, baseLogger.Named("shell"))

	if cfg.Dashboard.AutoRefresh {
		sched := scheduler.NewScheduler(cfg.Dashboard.RefreshCron, dashboardAgg, sessions, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := shell.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		baseLogger.Fatal("console crashed", zap.Error(err))
	}

	baseLogger.Info("console exited")
}
