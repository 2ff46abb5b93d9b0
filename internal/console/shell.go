package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nvraghu/garage-console/internal/domain/models"
	"github.com/nvraghu/garage-console/internal/export"
	"github.com/nvraghu/garage-console/internal/notify"
	"github.com/nvraghu/garage-console/internal/service/customers"
	"github.com/nvraghu/garage-console/internal/service/dashboard"
	"github.com/nvraghu/garage-console/internal/service/servicing"
	"github.com/nvraghu/garage-console/internal/service/stocks"
	"github.com/nvraghu/garage-console/internal/session"
	"github.com/nvraghu/garage-console/pkg/clients/garage"
)

// Shell is the interactive command loop. It owns no entity state of its
// own; every list lives in its controller and the shell only renders
// and dispatches.
type Shell struct {
	in       *bufio.Scanner
	out      io.Writer
	sessions *session.Store
	api      *garage.Client
	cust     *customers.Controller
	stock    *stocks.Controller
	svc      *servicing.Controller
	dash     *dashboard.Aggregator
	notifier notify.Notifier
	logger   *zap.Logger
}

// New wires the shell over the given controllers.
func New(in io.Reader, out io.Writer, sessions *session.Store, api *garage.Client,
	cust *customers.Controller, stock *stocks.Controller, svc *servicing.Controller,
	dash *dashboard.Aggregator, notifier notify.Notifier, logger *zap.Logger) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shell{
		in:       bufio.NewScanner(in),
		out:      out,
		sessions: sessions,
		api:      api,
		cust:     cust,
		stock:    stock,
		svc:      svc,
		dash:     dash,
		notifier: notifier,
		logger:   logger,
	}
}

// Confirm asks a yes/no question; only "y"/"yes" confirms. Controllers
// use this before deletes.
func (s *Shell) Confirm(prompt string) bool {
	answer := strings.ToLower(s.prompt(prompt + " [y/N] "))
	return answer == "y" || answer == "yes"
}

// Run reads and dispatches commands until quit, EOF or cancellation.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintf(s.out, "Garage console. Hello %s! Type 'help' for commands.\n", s.sessions.DisplayName())

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			return s.in.Err()
		}
		fields := strings.Fields(s.in.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return nil
		case "help":
			s.printHelp()
		case "login":
			s.login(ctx, fields[1:])
		case "register":
			s.register(ctx, fields[1:])
		case "forgot":
			s.forgotPassword(ctx, fields[1:])
		case "logout":
			s.logout()
		case "whoami":
			fmt.Fprintf(s.out, "%s (logged in: %v)\n", s.sessions.DisplayName(), s.sessions.LoggedIn())
		case "dashboard":
			_, _ = s.dash.Load(ctx)
		case "customers":
			s.customerCmd(ctx, fields[1:])
		case "stocks":
			s.stockCmd(ctx, fields[1:])
		case "services":
			s.serviceCmd(ctx, fields[1:])
		default:
			fmt.Fprintf(s.out, "unknown command %q, try 'help'\n", fields[0])
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprint(s.out, `commands:
  login <user> <pass>            register <user> <email> <pass>
  forgot <user> <email>          logout | whoami
  dashboard
  customers [search <term> | page <n> | next | prev | add | edit <id> | del <id> | export <path>]
  stocks    [search <term> | page <n> | next | prev | add | edit <id> | del <id> | export <path>]
  services  [search <term> | page <n> | next | prev | add | edit <id> | del <id> | bill <id>]
  quit
`)
}

func (s *Shell) prompt(label string) string {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}

// promptDefault keeps the current value when the admin submits an empty
// line, which is how edit modals pre-fill.
func (s *Shell) promptDefault(label, current string) string {
	value := s.prompt(fmt.Sprintf("%s [%s]: ", label, current))
	if value == "" {
		return current
	}
	return value
}

func (s *Shell) login(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "usage: login <user> <pass>")
		return
	}

	result, err := s.api.Login(ctx, args[0], args[1])
	if err != nil {
		s.logger.Warn("login failed", zap.Error(err))
		s.notifier.Error("Invalid username or password!")
		return
	}
	if err := s.sessions.Begin(result.Token, result.User); err != nil {
		s.logger.Error("failed persisting session", zap.Error(err))
	}
	s.notifier.Success("Welcome " + s.sessions.DisplayName())
}

func (s *Shell) register(ctx context.Context, args []string) {
	if len(args) != 3 {
		fmt.Fprintln(s.out, "usage: register <user> <email> <pass>")
		return
	}

	if err := s.api.Register(ctx, args[0], args[1], args[2]); err != nil {
		s.notifier.Error(remoteMessage(err, "Registration failed. Try again!"))
		return
	}
	s.notifier.Success("Registration successful! You can log in now.")
}

func (s *Shell) forgotPassword(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "usage: forgot <user> <email>")
		return
	}

	if err := s.api.ForgotPassword(ctx, args[0], args[1]); err != nil {
		s.notifier.Error(remoteMessage(err, "Unable to send reset link. Please try again."))
		return
	}
	s.notifier.Success("Password reset link sent to your email!")
}

func (s *Shell) logout() {
	if err := s.sessions.Clear(); err != nil {
		s.logger.Error("failed clearing session", zap.Error(err))
	}
	s.notifier.Success("Logged out")
}

// remoteMessage prefers the server's message over the fallback.
func remoteMessage(err error, fallback string) string {
	var apiErr *garage.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func (s *Shell) customerCmd(ctx context.Context, args []string) {
	view := s.cust.View()

	if len(args) == 0 {
		s.cust.Load(ctx)
		printCustomers(s.out, view.Page(), view.CurrentPage(), view.TotalPages())
		return
	}

	switch args[0] {
	case "search":
		view.SetSearchTerm(strings.Join(args[1:], " "))
	case "page":
		if n, err := strconv.Atoi(argAt(args, 1)); err == nil {
			view.GoToPage(n)
		}
	case "next":
		view.NextPage()
	case "prev":
		view.PrevPage()
	case "add":
		s.cust.OpenCreate()
		s.editCustomerModal(ctx)
		return
	case "edit":
		customer, ok := findCustomer(view.Items(), argAt(args, 1))
		if !ok {
			fmt.Fprintln(s.out, "no such customer")
			return
		}
		s.cust.OpenEdit(customer)
		s.editCustomerModal(ctx)
		return
	case "del":
		customer, ok := findCustomer(view.Items(), argAt(args, 1))
		if !ok {
			fmt.Fprintln(s.out, "no such customer")
			return
		}
		_ = s.cust.Delete(ctx, customer)
		return
	case "export":
		path := argAt(args, 1)
		if path == "" {
			fmt.Fprintln(s.out, "usage: customers export <path>")
			return
		}
		if err := export.Customers(path, view.Filtered()); err != nil {
			s.logger.Error("customer export failed", zap.Error(err))
			s.notifier.Error("Export failed.")
			return
		}
		s.notifier.Success("Exported to " + path)
		return
	default:
		fmt.Fprintln(s.out, "unknown customers subcommand")
		return
	}

	printCustomers(s.out, view.Page(), view.CurrentPage(), view.TotalPages())
}

func (s *Shell) editCustomerModal(ctx context.Context) {
	current := s.cust.Current()
	current.CustomerName = s.promptDefault("Name", current.CustomerName)
	current.Email = s.promptDefault("Email", current.Email)
	current.Phone = s.promptDefault("Phone", current.Phone)
	current.VehicleNo = s.promptDefault("Vehicle no", current.VehicleNo)

	if !s.Confirm("Save?") {
		s.cust.CloseModal()
		return
	}
	_ = s.cust.Save(ctx)
}

func (s *Shell) stockCmd(ctx context.Context, args []string) {
	view := s.stock.View()

	if len(args) == 0 {
		s.stock.Load(ctx)
		printStocks(s.out, view.Page(), view.CurrentPage(), view.TotalPages())
		return
	}

	switch args[0] {
	case "search":
		view.SetSearchTerm(strings.Join(args[1:], " "))
	case "page":
		if n, err := strconv.Atoi(argAt(args, 1)); err == nil {
			view.GoToPage(n)
		}
	case "next":
		view.NextPage()
	case "prev":
		view.PrevPage()
	case "add":
		s.stock.OpenCreate()
		s.editStockModal(ctx)
		return
	case "edit":
		stock, ok := findStock(view.Items(), argAt(args, 1))
		if !ok {
			fmt.Fprintln(s.out, "no such stock item")
			return
		}
		s.stock.OpenEdit(stock)
		s.editStockModal(ctx)
		return
	case "del":
		stock, ok := findStock(view.Items(), argAt(args, 1))
		if !ok {
			fmt.Fprintln(s.out, "no such stock item")
			return
		}
		_ = s.stock.Delete(ctx, stock)
		return
	case "export":
		path := argAt(args, 1)
		if path == "" {
			fmt.Fprintln(s.out, "usage: stocks export <path>")
			return
		}
		if err := export.Stocks(path, view.Filtered()); err != nil {
			s.logger.Error("stock export failed", zap.Error(err))
			s.notifier.Error("Export failed.")
			return
		}
		s.notifier.Success("Exported to " + path)
		return
	default:
		fmt.Fprintln(s.out, "unknown stocks subcommand")
		return
	}

	printStocks(s.out, view.Page(), view.CurrentPage(), view.TotalPages())
}

func (s *Shell) editStockModal(ctx context.Context) {
	current := s.stock.Current()
	current.ItemName = s.promptDefault("Item name", current.ItemName)
	current.Category = s.promptDefault("Category", current.Category)
	if qty, err := strconv.Atoi(s.promptDefault("Quantity", strconv.Itoa(current.Quantity))); err == nil {
		current.Quantity = qty
	}
	if price, err := strconv.ParseFloat(s.promptDefault("Unit price", strconv.FormatFloat(current.Price, 'f', -1, 64)), 64); err == nil {
		current.Price = price
	}

	if !s.Confirm("Save?") {
		s.stock.CloseModal()
		return
	}
	_ = s.stock.Save(ctx)
}

func (s *Shell) serviceCmd(ctx context.Context, args []string) {
	view := s.svc.View()

	if len(args) == 0 {
		s.svc.Load(ctx)
		printServices(s.out, view.Page(), view.CurrentPage(), view.TotalPages())
		return
	}

	switch args[0] {
	case "search":
		view.SetSearchTerm(strings.Join(args[1:], " "))
	case "page":
		if n, err := strconv.Atoi(argAt(args, 1)); err == nil {
			view.GoToPage(n)
		}
	case "next":
		view.NextPage()
	case "prev":
		view.PrevPage()
	case "add":
		s.svc.LoadPickLists(ctx)
		s.svc.OpenCreate()
		s.composeServiceModal(ctx)
		return
	case "edit":
		record, ok := findService(view.Items(), argAt(args, 1))
		if !ok {
			fmt.Fprintln(s.out, "no such service record")
			return
		}
		s.svc.LoadPickLists(ctx)
		s.svc.OpenEdit(record)
		s.composeServiceModal(ctx)
		return
	case "del":
		record, ok := findService(view.Items(), argAt(args, 1))
		if !ok {
			fmt.Fprintln(s.out, "no such service record")
			return
		}
		_ = s.svc.Delete(ctx, record)
		return
	case "bill":
		record, ok := findService(view.Items(), argAt(args, 1))
		if !ok {
			fmt.Fprintln(s.out, "no such service record")
			return
		}
		s.svc.OpenEdit(record)
		_, _ = s.svc.DownloadBill(ctx)
		s.svc.CloseModal()
		return
	default:
		fmt.Fprintln(s.out, "unknown services subcommand")
		return
	}

	printServices(s.out, view.Page(), view.CurrentPage(), view.TotalPages())
}

// composeServiceModal walks the line-item composer: pick a customer by
// vehicle search, attach stocks by name search, adjust quantities, then
// save. The running total is reprinted after every mutation.
func (s *Shell) composeServiceModal(ctx context.Context) {
	current := s.svc.Current()
	current.ServiceDate = s.promptDefault("Service date (YYYY-MM-DD)", current.ServiceDate)
	current.Remarks = s.promptDefault("Remarks", current.Remarks)

	for {
		fmt.Fprintf(s.out, "customer=%q vehicle=%q items=%d total=%.2f\n",
			current.Customer.CustomerName, current.Customer.VehicleNo,
			len(current.Stocks), s.svc.GrandTotal())

		action := s.prompt("compose> (customer <vehicle> | stock <name> | qty <i> <delta> | rm <i> | items | save | cancel) ")
		fields := strings.Fields(action)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "customer":
			matches := s.svc.FilterCustomers(strings.Join(fields[1:], " "))
			if picked, ok := s.pickIndex(len(matches), func(i int) string {
				return fmt.Sprintf("%s (%s)", matches[i].CustomerName, matches[i].VehicleNo)
			}); ok {
				s.svc.SelectCustomer(matches[picked])
			}
		case "stock":
			matches := s.svc.FilterStocks(strings.Join(fields[1:], " "))
			if picked, ok := s.pickIndex(len(matches), func(i int) string {
				return fmt.Sprintf("%s (%.2f)", matches[i].ItemName, matches[i].Price)
			}); ok {
				s.svc.SelectStock(matches[picked])
			}
		case "qty":
			index, err1 := strconv.Atoi(argAt(fields, 1))
			delta, err2 := strconv.Atoi(argAt(fields, 2))
			if err1 == nil && err2 == nil {
				s.svc.UpdateQuantity(index, delta)
			}
		case "rm":
			if index, err := strconv.Atoi(argAt(fields, 1)); err == nil {
				s.svc.RemoveLineItem(index)
			}
		case "items":
			for i, item := range current.Stocks {
				fmt.Fprintf(s.out, "  [%d] %s x%d @ %.2f\n", i, item.StockName, item.QuantityUsed, item.Price)
			}
		case "save":
			_ = s.svc.Save(ctx)
			return
		case "cancel":
			s.svc.CloseModal()
			return
		}
	}
}

// pickIndex lists options and reads a selection; empty input cancels.
func (s *Shell) pickIndex(n int, describe func(i int) string) (int, bool) {
	if n == 0 {
		fmt.Fprintln(s.out, "no matches")
		return 0, false
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(s.out, "  [%d] %s\n", i, describe(i))
	}
	picked, err := strconv.Atoi(s.prompt("pick: "))
	if err != nil || picked < 0 || picked >= n {
		return 0, false
	}
	return picked, true
}

func argAt(args []string, i int) string {
	if i >= len(args) {
		return ""
	}
	return args[i]
}

func findCustomer(items []models.Customer, rawID string) (models.Customer, bool) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return models.Customer{}, false
	}
	for _, c := range items {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}

func findStock(items []models.Stock, rawID string) (models.Stock, bool) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return models.Stock{}, false
	}
	for _, s := range items {
		if s.ID == id {
			return s, true
		}
	}
	return models.Stock{}, false
}

func findService(items []models.ServiceRecord, rawID string) (models.ServiceRecord, bool) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return models.ServiceRecord{}, false
	}
	for _, r := range items {
		if r.ID == id {
			return r, true
		}
	}
	return models.ServiceRecord{}, false
}
