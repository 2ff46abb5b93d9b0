package servicing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/nvraghu/garage-console/internal/domain/models"
	"github.com/nvraghu/garage-console/internal/listview"
	"github.com/nvraghu/garage-console/internal/notify"
)

var (
	// ErrSaveInFlight is returned when a save is submitted while a
	// previous one has not finished.
	ErrSaveInFlight = errors.New("save already in progress")

	// ErrUnsaved is returned when a bill is requested for a record the
	// backend has never seen. No network call is made in that case.
	ErrUnsaved = errors.New("service record not saved yet")
)

// Gateway is the slice of the garage API this controller needs.
type Gateway interface {
	ListServices(ctx context.Context) ([]models.ServiceRecord, error)
	CreateService(ctx context.Context, record models.ServiceRecord) error
	UpdateService(ctx context.Context, id int, record models.ServiceRecord) error
	DeleteService(ctx context.Context, id int) error
	DownloadBill(ctx context.Context, id int) ([]byte, error)
}

// CustomerLister supplies the customer pick list for the composer.
type CustomerLister interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
}

// StockLister supplies the stock pick list for the composer.
type StockLister interface {
	ListStocks(ctx context.Context) ([]models.Stock, error)
}

// ConfirmFunc asks the user to confirm a destructive action.
type ConfirmFunc func(prompt string) bool

// Controller owns the service-records table plus the composer state of
// the record being created or edited: its customer snapshot, line items
// and derived total.
type Controller struct {
	view      *listview.View[models.ServiceRecord]
	gw        Gateway
	customers CustomerLister
	stocks    StockLister
	notifier  notify.Notifier
	confirm   ConfirmFunc
	logger    *zap.Logger
	billDir   string

	loading   bool
	saving    bool
	showModal bool
	editMode  bool
	current   models.ServiceRecord

	customerList []models.Customer
	stockList    []models.Stock
}

// NewController wires a servicing controller. billDir is where
// downloaded bills are written.
func NewController(gw Gateway, customers CustomerLister, stocks StockLister, notifier notify.Notifier, confirm ConfirmFunc, billDir string, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		view:      listview.New(matchService),
		gw:        gw,
		customers: customers,
		stocks:    stocks,
		notifier:  notifier,
		confirm:   confirm,
		logger:    logger,
		billDir:   billDir,
	}
}

// matchService searches customer name, vehicle number and remarks.
func matchService(r models.ServiceRecord, term string) bool {
	return strings.Contains(strings.ToLower(r.Customer.CustomerName), term) ||
		strings.Contains(strings.ToLower(r.Customer.VehicleNo), term) ||
		strings.Contains(strings.ToLower(r.Remarks), term)
}

// View exposes the list state for rendering and navigation.
func (c *Controller) View() *listview.View[models.ServiceRecord] {
	return c.view
}

// Loading reports whether a list fetch is in flight.
func (c *Controller) Loading() bool {
	return c.loading
}

// Load refreshes the service records. On failure the previous list is
// kept untouched.
func (c *Controller) Load(ctx context.Context) {
	c.loading = true
	defer func() { c.loading = false }()

	items, err := c.gw.ListServices(ctx)
	if err != nil {
		c.logger.Error("failed loading services", zap.Error(err))
		c.notifier.Error("Failed to load services.")
		return
	}
	c.view.SetItems(items)
}

// LoadPickLists refreshes the customer and stock lists the composer
// searches through. Failures are logged but not fatal; the composer
// just offers no suggestions until the next reload.
func (c *Controller) LoadPickLists(ctx context.Context) {
	customerList, err := c.customers.ListCustomers(ctx)
	if err != nil {
		c.logger.Warn("failed loading customer pick list", zap.Error(err))
	} else {
		c.customerList = customerList
	}

	stockList, err := c.stocks.ListStocks(ctx)
	if err != nil {
		c.logger.Warn("failed loading stock pick list", zap.Error(err))
	} else {
		c.stockList = stockList
	}
}

// OpenCreate opens the modal with an empty record.
func (c *Controller) OpenCreate() {
	c.editMode = false
	c.showModal = true
	c.current = models.ServiceRecord{}
}

// OpenEdit opens the modal with a deep copy of the record; line items
// must not alias the listed record while being edited.
func (c *Controller) OpenEdit(record models.ServiceRecord) {
	c.editMode = true
	c.showModal = true
	c.current = record.Clone()
}

// Current returns the record being composed.
func (c *Controller) Current() *models.ServiceRecord {
	return &c.current
}

// ModalOpen reports whether the composer modal is showing.
func (c *Controller) ModalOpen() bool {
	return c.showModal
}

// EditMode reports whether the modal edits an existing record.
func (c *Controller) EditMode() bool {
	return c.editMode
}

// CloseModal discards the composer without saving.
func (c *Controller) CloseModal() {
	c.showModal = false
}

// Save dispatches create or update, closing the modal and reloading
// only after the backend confirms.
func (c *Controller) Save(ctx context.Context) error {
	if c.saving {
		return ErrSaveInFlight
	}
	c.saving = true
	defer func() { c.saving = false }()

	var err error
	if c.editMode {
		err = c.gw.UpdateService(ctx, c.current.ID, c.current)
	} else {
		err = c.gw.CreateService(ctx, c.current)
	}
	if err != nil {
		c.logger.Error("failed saving service", zap.Error(err))
		c.notifier.Error("Something went wrong.")
		return err
	}

	if c.editMode {
		c.notifier.Success("Service Updated!")
	} else {
		c.notifier.Success("Service Added!")
	}
	c.showModal = false
	c.Load(ctx)
	return nil
}

// Delete removes a service record after confirmation.
func (c *Controller) Delete(ctx context.Context, record models.ServiceRecord) error {
	if record.ID == 0 {
		return nil
	}
	if c.confirm == nil || !c.confirm("Delete this service record?") {
		return nil
	}

	if err := c.gw.DeleteService(ctx, record.ID); err != nil {
		c.logger.Error("failed deleting service", zap.Error(err), zap.Int("id", record.ID))
		c.notifier.Error("Failed to delete service.")
		return err
	}

	c.notifier.Success("Service deleted")
	c.Load(ctx)
	return nil
}

// DownloadBill fetches the generated bill for the composed record and
// writes it next to the configured bill directory, returning the file
// path. An unsaved record is rejected before any network call.
func (c *Controller) DownloadBill(ctx context.Context) (string, error) {
	if c.current.ID == 0 {
		c.notifier.Error("Please save service first!")
		return "", ErrUnsaved
	}

	payload, err := c.gw.DownloadBill(ctx, c.current.ID)
	if err != nil {
		c.logger.Error("failed downloading bill", zap.Error(err), zap.Int("id", c.current.ID))
		c.notifier.Error("Bill download failed!")
		return "", err
	}

	path := filepath.Join(c.billDir, fmt.Sprintf("service-bill-%d.pdf", c.current.ID))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		c.logger.Error("failed writing bill file", zap.Error(err), zap.String("path", path))
		c.notifier.Error("Bill download failed!")
		return "", fmt.Errorf("write bill: %w", err)
	}

	c.notifier.Success("Bill saved to " + path)
	return path, nil
}
