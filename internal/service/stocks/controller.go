package stocks

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/nvraghu/garage-console/internal/domain/models"
	"github.com/nvraghu/garage-console/internal/listview"
	"github.com/nvraghu/garage-console/internal/notify"
)

// ErrSaveInFlight is returned when a save is submitted while a previous
// one has not finished.
var ErrSaveInFlight = errors.New("save already in progress")

// Gateway is the slice of the garage API this controller needs.
type Gateway interface {
	ListStocks(ctx context.Context) ([]models.Stock, error)
	CreateStock(ctx context.Context, stock models.Stock) error
	UpdateStock(ctx context.Context, id int, stock models.Stock) error
	DeleteStock(ctx context.Context, id int) error
}

// ConfirmFunc asks the user to confirm a destructive action.
type ConfirmFunc func(prompt string) bool

// Controller owns the stocks table: fetched inventory, search and
// pagination state, and the create/edit modal.
type Controller struct {
	view     *listview.View[models.Stock]
	gw       Gateway
	notifier notify.Notifier
	confirm  ConfirmFunc
	logger   *zap.Logger

	loading   bool
	saving    bool
	showModal bool
	editMode  bool
	current   models.Stock
}

// NewController wires a stocks controller.
func NewController(gw Gateway, notifier notify.Notifier, confirm ConfirmFunc, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		view:     listview.New(matchStock),
		gw:       gw,
		notifier: notifier,
		confirm:  confirm,
		logger:   logger,
	}
}

// matchStock searches item name and category.
func matchStock(s models.Stock, term string) bool {
	return strings.Contains(strings.ToLower(s.ItemName), term) ||
		strings.Contains(strings.ToLower(s.Category), term)
}

// View exposes the list state for rendering and navigation.
func (c *Controller) View() *listview.View[models.Stock] {
	return c.view
}

// Loading reports whether a list fetch is in flight.
func (c *Controller) Loading() bool {
	return c.loading
}

// Load refreshes the inventory. On failure the previous list is kept.
func (c *Controller) Load(ctx context.Context) {
	c.loading = true
	defer func() { c.loading = false }()

	items, err := c.gw.ListStocks(ctx)
	if err != nil {
		c.logger.Error("failed loading stocks", zap.Error(err))
		c.notifier.Error("Failed to load stocks.")
		return
	}
	c.view.SetItems(items)
}

// OpenCreate opens the modal with a blank stock item.
func (c *Controller) OpenCreate() {
	c.editMode = false
	c.showModal = true
	c.current = models.Stock{}
}

// OpenEdit opens the modal seeded with a working copy of the item.
func (c *Controller) OpenEdit(stock models.Stock) {
	c.editMode = true
	c.showModal = true
	c.current = stock
}

// Current returns the modal's working copy for field edits.
func (c *Controller) Current() *models.Stock {
	return &c.current
}

// ModalOpen reports whether the create/edit modal is showing.
func (c *Controller) ModalOpen() bool {
	return c.showModal
}

// EditMode reports whether the modal edits an existing item.
func (c *Controller) EditMode() bool {
	return c.editMode
}

// CloseModal discards the modal without saving.
func (c *Controller) CloseModal() {
	c.showModal = false
}

// Save dispatches create or update depending on the modal mode, closing
// the modal and reloading only after the backend confirms.
func (c *Controller) Save(ctx context.Context) error {
	if c.saving {
		return ErrSaveInFlight
	}
	c.saving = true
	defer func() { c.saving = false }()

	var err error
	if c.editMode {
		err = c.gw.UpdateStock(ctx, c.current.ID, c.current)
	} else {
		err = c.gw.CreateStock(ctx, c.current)
	}
	if err != nil {
		c.logger.Error("failed saving stock", zap.Error(err))
		c.notifier.Error("Something went wrong.")
		return err
	}

	if c.editMode {
		c.notifier.Success("Stock Updated!")
	} else {
		c.notifier.Success("Stock Added!")
	}
	c.showModal = false
	c.Load(ctx)
	return nil
}

// Delete removes a stock item after confirmation.
func (c *Controller) Delete(ctx context.Context, stock models.Stock) error {
	if stock.ID == 0 {
		return nil
	}
	if c.confirm == nil || !c.confirm("Delete this stock item?") {
		return nil
	}

	if err := c.gw.DeleteStock(ctx, stock.ID); err != nil {
		c.logger.Error("failed deleting stock", zap.Error(err), zap.Int("id", stock.ID))
		c.notifier.Error("Failed to delete stock.")
		return err
	}

	c.notifier.Success("Stock deleted")
	c.Load(ctx)
	return nil
}
