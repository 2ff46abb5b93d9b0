package console

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nvraghu/garage-console/internal/domain/models"
	"github.com/nvraghu/garage-console/internal/service/dashboard"
)

// TextRenderer draws a dashboard snapshot as plain text. It stands in
// for the chart layer, which is out of scope for a terminal console.
type TextRenderer struct {
	out io.Writer
}

// NewTextRenderer builds a renderer writing to out.
func NewTextRenderer(out io.Writer) *TextRenderer {
	return &TextRenderer{out: out}
}

// Render prints the full snapshot. The context guards against painting
// after the caller has moved on.
func (r *TextRenderer) Render(ctx context.Context, snap *dashboard.Snapshot) {
	if ctx.Err() != nil || snap == nil {
		return
	}

	fmt.Fprintf(r.out, "\nCustomers: %d  Services: %d  Stocks: %d  Monthly revenue: %.2f\n",
		snap.Summary.TotalCustomers, snap.Summary.TotalServices,
		snap.Summary.TotalStocks, snap.Summary.MonthlyRevenue)

	fmt.Fprintln(r.out, "\nServices per month:")
	for i, month := range snap.ServiceCount.Months {
		if i < len(snap.ServiceCount.Counts) {
			fmt.Fprintf(r.out, "  %-10s %d\n", month, snap.ServiceCount.Counts[i])
		}
	}

	fmt.Fprintln(r.out, "\nRevenue per month:")
	for i, month := range snap.Revenue.Months {
		if i < len(snap.Revenue.Revenue) {
			fmt.Fprintf(r.out, "  %-10s %.2f\n", month, snap.Revenue.Revenue[i])
		}
	}

	fmt.Fprintln(r.out, "\nStock usage by category:")
	for i, label := range snap.StockUsage.Labels {
		if i < len(snap.StockUsage.Usage) {
			fmt.Fprintf(r.out, "  %-16s %.0f\n", label, snap.StockUsage.Usage[i])
		}
	}

	fmt.Fprintln(r.out, "\nRecent services:")
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  CUSTOMER\tVEHICLE\tDATE\tTOTAL")
	for _, svc := range snap.Recent {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%.2f\n", svc.CustomerName, svc.VehicleNo, svc.Date, svc.TotalCost)
	}
	w.Flush()
}

func printCustomers(out io.Writer, page []models.Customer, current, total int) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tVEHICLE")
	for _, c := range page {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.CustomerName, c.Email, c.Phone, c.VehicleNo)
	}
	w.Flush()
	fmt.Fprintf(out, "page %d/%d\n", current, total)
}

func printStocks(out io.Writer, page []models.Stock, current, total int) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tITEM\tCATEGORY\tQTY\tPRICE")
	for _, s := range page {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.2f\n", s.ID, s.ItemName, s.Category, s.Quantity, s.Price)
	}
	w.Flush()
	fmt.Fprintf(out, "page %d/%d\n", current, total)
}

func printServices(out io.Writer, page []models.ServiceRecord, current, total int) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCUSTOMER\tVEHICLE\tDATE\tITEMS\tTOTAL")
	for _, r := range page {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%.2f\n",
			r.ID, r.Customer.CustomerName, r.Customer.VehicleNo, r.ServiceDate, len(r.Stocks), r.TotalCost)
	}
	w.Flush()
	fmt.Fprintf(out, "page %d/%d\n", current, total)
}
