package customers

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
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	CreateCustomer(ctx context.Context, customer models.Customer) error
	UpdateCustomer(ctx context.Context, id int, customer models.Customer) error
	DeleteCustomer(ctx context.Context, id int) error
}

// ConfirmFunc asks the user to confirm a destructive action.
type ConfirmFunc func(prompt string) bool

// Controller owns the customers table: the fetched list, its search and
// pagination state, and the create/edit modal.
type Controller struct {
	view     *listview.View[models.Customer]
	gw       Gateway
	notifier notify.Notifier
	confirm  ConfirmFunc
	logger   *zap.Logger

	loading   bool
	saving    bool
	showModal bool
	editMode  bool
	current   models.Customer
}

// NewController wires a customers controller.
func NewController(gw Gateway, notifier notify.Notifier, confirm ConfirmFunc, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		view:     listview.New(matchCustomer),
		gw:       gw,
		notifier: notifier,
		confirm:  confirm,
		logger:   logger,
	}
}

// matchCustomer searches name, email and vehicle number.
func matchCustomer(c models.Customer, term string) bool {
	return strings.Contains(strings.ToLower(c.CustomerName), term) ||
		strings.Contains(strings.ToLower(c.Email), term) ||
		strings.Contains(strings.ToLower(c.VehicleNo), term)
}

// View exposes the list state for rendering and navigation.
func (c *Controller) View() *listview.View[models.Customer] {
	return c.view
}

// Loading reports whether a list fetch is in flight.
func (c *Controller) Loading() bool {
	return c.loading
}

// Load refreshes the list from the backend. On failure the previous
// list is kept untouched and the failure is surfaced as a notification.
func (c *Controller) Load(ctx context.Context) {
	c.loading = true
	defer func() { c.loading = false }()

	items, err := c.gw.ListCustomers(ctx)
	if err != nil {
		c.logger.Error("failed loading customers", zap.Error(err))
		c.notifier.Error("Failed to load customers.")
		return
	}
	c.view.SetItems(items)
}

// OpenCreate opens the modal with a blank customer.
func (c *Controller) OpenCreate() {
	c.editMode = false
	c.showModal = true
	c.current = models.Customer{}
}

// OpenEdit opens the modal seeded with a working copy of the customer.
func (c *Controller) OpenEdit(customer models.Customer) {
	c.editMode = true
	c.showModal = true
	c.current = customer
}

// Current returns the modal's working copy for field edits.
func (c *Controller) Current() *models.Customer {
	return &c.current
}

// ModalOpen reports whether the create/edit modal is showing.
func (c *Controller) ModalOpen() bool {
	return c.showModal
}

// EditMode reports whether the modal edits an existing customer.
func (c *Controller) EditMode() bool {
	return c.editMode
}

// CloseModal discards the modal without saving.
func (c *Controller) CloseModal() {
	c.showModal = false
}

// Save dispatches create or update depending on the modal mode. The
// modal closes and the list reloads only after the backend confirms;
// on failure the working copy stays so the admin can correct and retry.
func (c *Controller) Save(ctx context.Context) error {
	if c.saving {
		return ErrSaveInFlight
	}
	c.saving = true
	defer func() { c.saving = false }()

	var err error
	if c.editMode {
		err = c.gw.UpdateCustomer(ctx, c.current.ID, c.current)
	} else {
		err = c.gw.CreateCustomer(ctx, c.current)
	}
	if err != nil {
		c.logger.Error("failed saving customer", zap.Error(err))
		c.notifier.Error("Something went wrong.")
		return err
	}

	if c.editMode {
		c.notifier.Success("Customer Updated!")
	} else {
		c.notifier.Success("Customer Added!")
	}
	c.showModal = false
	c.Load(ctx)
	return nil
}

// Delete removes a customer after confirmation. Declining issues no
// request and leaves the list unchanged.
func (c *Controller) Delete(ctx context.Context, customer models.Customer) error {
	if customer.ID == 0 {
		return nil
	}
	if c.confirm == nil || !c.confirm("Delete this customer?") {
		return nil
	}

	if err := c.gw.DeleteCustomer(ctx, customer.ID); err != nil {
		c.logger.Error("failed deleting customer", zap.Error(err), zap.Int("id", customer.ID))
		c.notifier.Error("Failed to delete customer.")
		return err
	}

	c.notifier.Success("Customer deleted")
	c.Load(ctx)
	return nil
}
