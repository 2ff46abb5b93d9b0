package servicing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvraghu/garage-console/internal/domain/models"
)

// mockGateway persists records in memory so round trips work: created
// records get ids assigned and show up on the next List.
type mockGateway struct {
	records   []models.ServiceRecord
	nextID    int
	createErr error
	billBytes []byte
	billErr   error
	billCalls int
}

func (m *mockGateway) ListServices(ctx context.Context) ([]models.ServiceRecord, error) {
	out := make([]models.ServiceRecord, len(m.records))
	for i, r := range m.records {
		out[i] = r.Clone()
	}
	return out, nil
}

func (m *mockGateway) CreateService(ctx context.Context, r models.ServiceRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	r.ID = m.nextID
	m.records = append(m.records, r.Clone())
	return nil
}

func (m *mockGateway) UpdateService(ctx context.Context, id int, r models.ServiceRecord) error {
	for i := range m.records {
		if m.records[i].ID == id {
			r.ID = id
			m.records[i] = r.Clone()
			return nil
		}
	}
	return errors.New("not found")
}

func (m *mockGateway) DeleteService(ctx context.Context, id int) error {
	for i := range m.records {
		if m.records[i].ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (m *mockGateway) DownloadBill(ctx context.Context, id int) ([]byte, error) {
	m.billCalls++
	if m.billErr != nil {
		return nil, m.billErr
	}
	return m.billBytes, nil
}

type staticCustomers []models.Customer

func (s staticCustomers) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s, nil
}

type staticStocks []models.Stock

func (s staticStocks) ListStocks(ctx context.Context) ([]models.Stock, error) {
	return s, nil
}

type recordingNotifier struct {
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.failures = append(n.failures, msg) }

func confirmAlways(string) bool { return true }

func newTestController(t *testing.T, gw *mockGateway) (*Controller, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	custs := staticCustomers{
		{ID: 1, CustomerName: "Asha", VehicleNo: "KA01AB1234"},
		{ID: 2, CustomerName: "Binod", VehicleNo: "KA05XY9876"},
	}
	stocks := staticStocks{
		{ID: 5, ItemName: "Oil Filter", Price: 200},
		{ID: 6, ItemName: "Brake Pad", Price: 450},
	}
	ctrl := NewController(gw, custs, stocks, notifier, confirmAlways, t.TempDir(), nil)
	ctrl.LoadPickLists(context.Background())
	return ctrl, notifier
}

func TestSelectStockTwiceMergesIntoOneLineItem(t *testing.T) {
	ctrl, _ := newTestController(t, &mockGateway{})
	ctrl.OpenCreate()

	oilFilter := models.Stock{ID: 5, ItemName: "Oil Filter", Price: 200}
	ctrl.SelectStock(oilFilter)
	ctrl.SelectStock(oilFilter)

	record := ctrl.Current()
	require.Len(t, record.Stocks, 1)
	assert.Equal(t, 5, record.Stocks[0].StockID)
	assert.Equal(t, 2, record.Stocks[0].QuantityUsed)
	assert.Equal(t, 200.0, record.Stocks[0].Price)
	assert.Equal(t, 400.0, ctrl.GrandTotal())
}

func TestQuantityDroppedToZeroRemovesLineItem(t *testing.T) {
	ctrl, _ := newTestController(t, &mockGateway{})
	ctrl.OpenCreate()

	ctrl.SelectStock(models.Stock{ID: 5, ItemName: "Oil Filter", Price: 200})
	ctrl.SelectStock(models.Stock{ID: 6, ItemName: "Brake Pad", Price: 450})
	ctrl.UpdateQuantity(0, -1)

	record := ctrl.Current()
	require.Len(t, record.Stocks, 1)
	assert.Equal(t, 6, record.Stocks[0].StockID)
	assert.Equal(t, 450.0, ctrl.GrandTotal())
}

func TestTotalIsNeverStale(t *testing.T) {
	ctrl, _ := newTestController(t, &mockGateway{})
	ctrl.OpenCreate()

	checkTotal := func() {
		var want float64
		for _, item := range ctrl.Current().Stocks {
			want += item.Price * float64(item.QuantityUsed)
		}
		assert.Equal(t, want, ctrl.Current().TotalCost)
	}

	ctrl.SelectStock(models.Stock{ID: 5, ItemName: "Oil Filter", Price: 200})
	checkTotal()
	ctrl.SelectStock(models.Stock{ID: 6, ItemName: "Brake Pad", Price: 450})
	checkTotal()
	ctrl.UpdateQuantity(1, 3)
	checkTotal()
	ctrl.RemoveLineItem(0)
	checkTotal()
	ctrl.UpdateQuantity(0, -10)
	checkTotal()
	assert.Zero(t, ctrl.GrandTotal())
}

func TestSelectCustomerCopiesSnapshot(t *testing.T) {
	ctrl, _ := newTestController(t, &mockGateway{})
	ctrl.OpenCreate()

	matches := ctrl.FilterCustomers("ka01")
	require.Len(t, matches, 1)
	ctrl.SelectCustomer(matches[0])

	assert.Equal(t, "Asha", ctrl.Current().Customer.CustomerName)
	assert.Equal(t, "KA01AB1234", ctrl.Current().Customer.VehicleNo)
}

func TestFilterWithEmptyTermYieldsNoSuggestions(t *testing.T) {
	ctrl, _ := newTestController(t, &mockGateway{})

	assert.Nil(t, ctrl.FilterCustomers("   "))
	assert.Nil(t, ctrl.FilterStocks(""))
}

func TestOpenEditTakesDeepCopy(t *testing.T) {
	gw := &mockGateway{}
	ctrl, _ := newTestController(t, gw)

	original := models.ServiceRecord{
		ID:       3,
		Customer: models.Customer{ID: 1, CustomerName: "Asha"},
		Stocks:   []models.LineItem{{StockID: 5, StockName: "Oil Filter", Price: 200, QuantityUsed: 1}},
	}
	ctrl.OpenEdit(original)
	ctrl.UpdateQuantity(0, 4)

	assert.Equal(t, 1, original.Stocks[0].QuantityUsed)
	assert.Equal(t, 5, ctrl.Current().Stocks[0].QuantityUsed)
}

func TestRoundTripPreservesLineItems(t *testing.T) {
	gw := &mockGateway{}
	ctrl, _ := newTestController(t, gw)

	ctrl.OpenCreate()
	ctrl.SelectCustomer(models.Customer{ID: 1, CustomerName: "Asha", VehicleNo: "KA01AB1234"})
	ctrl.Current().ServiceDate = "2026-08-30"
	ctrl.SelectStock(models.Stock{ID: 5, ItemName: "Oil Filter", Price: 200})
	ctrl.SelectStock(models.Stock{ID: 6, ItemName: "Brake Pad", Price: 450})
	ctrl.SelectStock(models.Stock{ID: 5, ItemName: "Oil Filter", Price: 200})
	require.NoError(t, ctrl.Save(context.Background()))

	// Reload, edit the persisted record and save it back.
	listed := ctrl.View().Items()
	require.Len(t, listed, 1)
	ctrl.OpenEdit(listed[0])
	ctrl.Current().Remarks = "rechecked"
	require.NoError(t, ctrl.Save(context.Background()))

	require.Len(t, gw.records, 1)
	saved := gw.records[0]
	require.Len(t, saved.Stocks, 2)
	assert.Equal(t, 5, saved.Stocks[0].StockID)
	assert.Equal(t, 2, saved.Stocks[0].QuantityUsed)
	assert.Equal(t, 200.0, saved.Stocks[0].Price)
	assert.Equal(t, 6, saved.Stocks[1].StockID)
	assert.Equal(t, 1, saved.Stocks[1].QuantityUsed)
	assert.Equal(t, 850.0, saved.TotalCost)
	assert.Equal(t, "rechecked", saved.Remarks)
}

func TestDownloadBillRejectsUnsavedRecordLocally(t *testing.T) {
	gw := &mockGateway{}
	ctrl, notifier := newTestController(t, gw)

	ctrl.OpenCreate()
	_, err := ctrl.DownloadBill(context.Background())

	assert.ErrorIs(t, err, ErrUnsaved)
	assert.Zero(t, gw.billCalls)
	assert.Len(t, notifier.failures, 1)
}

func TestDownloadBillWritesFile(t *testing.T) {
	gw := &mockGateway{billBytes: []byte("%PDF-1.4 fake bill")}
	ctrl, _ := newTestController(t, gw)

	ctrl.OpenEdit(models.ServiceRecord{ID: 7})
	path, err := ctrl.DownloadBill(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "service-bill-7.pdf", filepath.Base(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, gw.billBytes, raw)
}

func TestDownloadBillRemoteFailure(t *testing.T) {
	gw := &mockGateway{billErr: errors.New("boom")}
	ctrl, notifier := newTestController(t, gw)

	ctrl.OpenEdit(models.ServiceRecord{ID: 7})
	_, err := ctrl.DownloadBill(context.Background())

	require.Error(t, err)
	assert.Len(t, notifier.failures, 1)
}
