package garage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvraghu/garage-console/internal/domain/models"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

// newFakeAPI spins up a gin-backed garage API double and a client
// pointed at it.
func newFakeAPI(t *testing.T, token staticToken, register func(r *gin.Engine)) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	register(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL, 5*time.Second, token, nil)
}

func TestListCustomersUnwrapsEnvelope(t *testing.T) {
	client := newFakeAPI(t, "", func(r *gin.Engine) {
		r.GET("/api/customers", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"data": []models.Customer{
				{ID: 1, CustomerName: "Asha", VehicleNo: "KA01AB1234"},
				{ID: 2, CustomerName: "Binod", VehicleNo: "KA05XY9876"},
			}})
		})
	})

	customers, err := client.ListCustomers(context.Background())

	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "Asha", customers[0].CustomerName)
}

func TestListToleratesMissingEnvelope(t *testing.T) {
	client := newFakeAPI(t, "", func(r *gin.Engine) {
		r.GET("/api/stocks", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{})
		})
	})

	stocks, err := client.ListStocks(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, stocks)
	assert.Empty(t, stocks)
}

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	var gotAuth string
	client := newFakeAPI(t, "tok-123", func(r *gin.Engine) {
		r.GET("/api/customers", func(c *gin.Context) {
			gotAuth = c.GetHeader("Authorization")
			c.JSON(http.StatusOK, gin.H{"data": []models.Customer{}})
		})
	})

	_, err := client.ListCustomers(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	client := newFakeAPI(t, "", func(r *gin.Engine) {
		r.GET("/api/customers", func(c *gin.Context) {
			gotAuth = c.GetHeader("Authorization")
			c.JSON(http.StatusOK, gin.H{"data": []models.Customer{}})
		})
	})

	_, err := client.ListCustomers(context.Background())

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestRemoteRejectionCarriesServerMessage(t *testing.T) {
	client := newFakeAPI(t, "", func(r *gin.Engine) {
		r.POST("/api/customers", func(c *gin.Context) {
			c.JSON(http.StatusConflict, gin.H{"message": "vehicle already registered"})
		})
	})

	err := client.CreateCustomer(context.Background(), models.Customer{VehicleNo: "KA01AB1234"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "vehicle already registered", apiErr.Message)
}

func TestLoginSynthesizesUserWhenBackendOmitsIt(t *testing.T) {
	client := newFakeAPI(t, "", func(r *gin.Engine) {
		r.POST("/api/auth/login", func(c *gin.Context) {
			var body map[string]string
			require.NoError(t, c.ShouldBindJSON(&body))
			assert.Equal(t, "ravi", body["username"])
			c.JSON(http.StatusOK, gin.H{"token": "tok-9"})
		})
	})

	result, err := client.Login(context.Background(), "ravi", "secret")

	require.NoError(t, err)
	assert.Equal(t, "tok-9", result.Token)
	assert.Equal(t, "ravi", result.User.Username)
}

func TestLoginRejection(t *testing.T) {
	client := newFakeAPI(t, "", func(r *gin.Engine) {
		r.POST("/api/auth/login", func(c *gin.Context) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "bad credentials"})
		})
	})

	_, err := client.Login(context.Background(), "ravi", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestUpdateAndDeleteHitResourcePaths(t *testing.T) {
	var gotPut, gotDelete string
	client := newFakeAPI(t, "", func(r *gin.Engine) {
		r.PUT("/api/stocks/:id", func(c *gin.Context) {
			gotPut = c.Param("id")
			c.Status(http.StatusOK)
		})
		r.DELETE("/api/stocks/:id", func(c *gin.Context) {
			gotDelete = c.Param("id")
			c.Status(http.StatusOK)
		})
	})

	require.NoError(t, client.UpdateStock(context.Background(), 4, models.Stock{ID: 4}))
	require.NoError(t, client.DeleteStock(context.Background(), 9))

	assert.Equal(t, "4", gotPut)
	assert.Equal(t, "9", gotDelete)
}

func TestDownloadBillReturnsRawBytes(t *testing.T) {
	payload := []byte("%PDF-1.4 fake bill")
	client := newFakeAPI(t, "", func(r *gin.Engine) {
		r.POST("/api/download/:id", func(c *gin.Context) {
			assert.Equal(t, "7", c.Param("id"))
			c.Data(http.StatusOK, "application/pdf", payload)
		})
	})

	raw, err := client.DownloadBill(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, payload, raw)
}

func TestDashboardEndpoints(t *testing.T) {
	var gotLimit string
	client := newFakeAPI(t, "", func(r *gin.Engine) {
		r.GET("/api/dashboard/summary", func(c *gin.Context) {
			c.JSON(http.StatusOK, models.DashboardSummary{TotalCustomers: 12, MonthlyRevenue: 15600})
		})
		r.GET("/api/dashboard/recent-services", func(c *gin.Context) {
			gotLimit = c.Query("limit")
			c.JSON(http.StatusOK, []models.RecentService{{CustomerName: "Asha"}})
		})
	})

	summary, err := client.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, summary.TotalCustomers)

	recent, err := client.RecentServices(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "8", gotLimit)
}

func TestServiceRecordRoundTripsThroughAPI(t *testing.T) {
	var stored models.ServiceRecord
	client := newFakeAPI(t, "", func(r *gin.Engine) {
		r.POST("/api/services", func(c *gin.Context) {
			require.NoError(t, c.ShouldBindJSON(&stored))
			stored.ID = 3
			c.Status(http.StatusCreated)
		})
		r.GET("/api/services", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"data": []models.ServiceRecord{stored}})
		})
	})

	record := models.ServiceRecord{
		Customer:    models.Customer{ID: 1, CustomerName: "Asha", VehicleNo: "KA01AB1234"},
		ServiceDate: "2026-08-30",
		TotalCost:   850,
		Stocks: []models.LineItem{
			{StockID: 5, StockName: "Oil Filter", Price: 200, QuantityUsed: 2},
			{StockID: 6, StockName: "Brake Pad", Price: 450, QuantityUsed: 1},
		},
	}
	require.NoError(t, client.CreateService(context.Background(), record))

	listed, err := client.ListServices(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Len(t, listed[0].Stocks, 2)
	assert.Equal(t, 5, listed[0].Stocks[0].StockID)
	assert.Equal(t, 2, listed[0].Stocks[0].QuantityUsed)
	assert.Equal(t, 200.0, listed[0].Stocks[0].Price)
}
