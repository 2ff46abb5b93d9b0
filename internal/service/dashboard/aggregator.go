package dashboard

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nvraghu/garage-console/internal/domain/models"
	"github.com/nvraghu/garage-console/internal/notify"
)

// DefaultRecentLimit caps the recent-services table when no limit is
// configured.
const DefaultRecentLimit = 8

// Gateway is the slice of the garage API the aggregator needs.
type Gateway interface {
	Summary(ctx context.Context) (*models.DashboardSummary, error)
	MonthlyServiceCount(ctx context.Context) (*models.MonthlyServiceCount, error)
	MonthlyRevenue(ctx context.Context) (*models.MonthlyRevenue, error)
	StockUsage(ctx context.Context) (*models.StockUsage, error)
	RecentServices(ctx context.Context, limit int) ([]models.RecentService, error)
}

// Snapshot bundles the five dashboard payloads fetched in one load.
// A snapshot is always complete: partial loads are discarded.
type Snapshot struct {
	Summary      models.DashboardSummary
	ServiceCount models.MonthlyServiceCount
	Revenue      models.MonthlyRevenue
	StockUsage   models.StockUsage
	Recent       []models.RecentService
}

// Renderer consumes a complete snapshot. Chart drawing lives behind it;
// the shell supplies a plain-text implementation.
type Renderer interface {
	Render(ctx context.Context, snap *Snapshot)
}

// Aggregator fans out the five dashboard reads concurrently and joins
// them before rendering. One failed request fails the whole load.
type Aggregator struct {
	gw          Gateway
	renderer    Renderer
	notifier    notify.Notifier
	logger      *zap.Logger
	recentLimit int
	loading     bool
}

// NewAggregator wires a dashboard aggregator. recentLimit <= 0 falls
// back to DefaultRecentLimit.
func NewAggregator(gw Gateway, renderer Renderer, notifier notify.Notifier, recentLimit int, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}
	return &Aggregator{
		gw:          gw,
		renderer:    renderer,
		notifier:    notifier,
		logger:      logger,
		recentLimit: recentLimit,
	}
}

// Loading reports whether a load is in flight.
func (a *Aggregator) Loading() bool {
	return a.loading
}

// Load fetches all five payloads concurrently. On any failure nothing
// is rendered, the loading state clears and one notification is shown;
// the errgroup context also cancels the sibling requests.
func (a *Aggregator) Load(ctx context.Context) (*Snapshot, error) {
	a.loading = true
	defer func() { a.loading = false }()

	snap := new(Snapshot)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summary, err := a.gw.Summary(gctx)
		if err != nil {
			return err
		}
		snap.Summary = *summary
		return nil
	})
	g.Go(func() error {
		counts, err := a.gw.MonthlyServiceCount(gctx)
		if err != nil {
			return err
		}
		snap.ServiceCount = *counts
		return nil
	})
	g.Go(func() error {
		revenue, err := a.gw.MonthlyRevenue(gctx)
		if err != nil {
			return err
		}
		snap.Revenue = *revenue
		return nil
	})
	g.Go(func() error {
		usage, err := a.gw.StockUsage(gctx)
		if err != nil {
			return err
		}
		snap.StockUsage = *usage
		return nil
	})
	g.Go(func() error {
		recent, err := a.gw.RecentServices(gctx, a.recentLimit)
		if err != nil {
			return err
		}
		snap.Recent = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		a.logger.Error("dashboard load failed", zap.Error(err))
		a.notifier.Error("Failed to load dashboard.")
		return nil, err
	}

	// Skip rendering when the caller went away mid-load; the snapshot
	// is still returned for whoever asked.
	if a.renderer != nil && ctx.Err() == nil {
		a.renderer.Render(ctx, snap)
	}
	return snap, nil
}
