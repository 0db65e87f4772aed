package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingHttp "github.com/elvisburrniku/OrderTable-sub004/internal/booking/http"
	"github.com/elvisburrniku/OrderTable-sub004/internal/config"
	"github.com/elvisburrniku/OrderTable-sub004/internal/db"
	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/metrics"
	restaurantHttp "github.com/elvisburrniku/OrderTable-sub004/internal/restaurant/http"
	tableHttp "github.com/elvisburrniku/OrderTable-sub004/internal/table/http"
)

var (
	testRouter *gin.Engine
	testPool   *pgxpool.Pool
	testToken  string
)

const testTenant = int64(77)

// TestMain wires the real container against TEST_DB_DSN. Without it the
// end-to-end tests are skipped.
func TestMain(m *testing.M) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Printf("No .env file found or failed to load: %v", err)
	}

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		log.Printf("TEST_DB_DSN not set, skipping end-to-end tests")
		os.Exit(0)
	}

	ctx := context.Background()
	var err error
	testPool, err = db.NewPool(ctx, dsn, 4)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	if err := db.Migrate(ctx, testPool); err != nil {
		log.Fatalf("Unable to migrate: %v", err)
	}

	container := NewContainer(Config{
		App: &config.Config{
			JWTSecret: "test-secret",
			JWTTTL:    30 * time.Minute,
			Booking: config.BookingConfig{
				TurnoverBuffer:  60 * time.Minute,
				DefaultDuration: 120 * time.Minute,
			},
		},
		DBPool:  testPool,
		Logger:  zap.NewNop(),
		Metrics: metrics.New(),
	})
	testRouter = container.Router
	testToken, err = container.JWTManager.GenerateAccessToken("staff-e2e", testTenant)
	if err != nil {
		log.Fatalf("Unable to sign token: %v", err)
	}

	gin.SetMode(gin.TestMode)

	exitCode := m.Run()

	testPool.Close()
	os.Exit(exitCode)
}

func clearTables() {
	if _, err := testPool.Exec(context.Background(), "TRUNCATE TABLE public.restaurants CASCADE"); err != nil {
		log.Printf("Failed to clean tables: %v", err)
	}
}

func executeRequest(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken)

	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestBookingFlow(t *testing.T) {
	clearTables()

	w := executeRequest(http.MethodPost, "/v1/restaurants", restaurantHttp.CreateRestaurantRequest{
		Name: "Trattoria", OpeningHoursStart: "11:00", OpeningHoursEnd: "23:30",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rest := decode[restaurantHttp.RestaurantResponse](t, w)
	base := fmt.Sprintf("/v1/restaurants/%d", rest.ID)

	tableIDs := map[string]int64{}
	for label, capacity := range map[string]int{"T1": 2, "T2": 4, "T10": 4} {
		w := executeRequest(http.MethodPost, base+"/tables", tableHttp.CreateRequest{Label: label, Capacity: capacity})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		tableIDs[label] = decode[tableHttp.TableResponse](t, w).ID
	}

	var first bookingHttp.CommitResponse
	t.Run("Create On Preferred Table", func(t *testing.T) {
		w := executeRequest(http.MethodPost, base+"/bookings", bookingHttp.CreateBookingRequest{
			Date: "2024-06-01", StartTime: "19:00", PartySize: 4,
			PreferredTableID: ptr(tableIDs["T2"]), CustomerName: "Ada",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		first = decode[bookingHttp.CommitResponse](t, w)
		assert.Equal(t, tableIDs["T2"], *first.Booking.TableID)
		assert.Equal(t, "pending", first.Booking.Status)
	})

	t.Run("Busy Table Offers Alternative", func(t *testing.T) {
		req := bookingHttp.CreateBookingRequest{
			Date: "2024-06-01", StartTime: "20:30", PartySize: 3,
			PreferredTableID: ptr(tableIDs["T2"]), CustomerName: "Grace",
		}
		w := executeRequest(http.MethodPost, base+"/bookings", req)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		conflict := decode[bookingHttp.ConflictResponse](t, w)
		assert.Equal(t, "ConflictWithAlternative", conflict.Decision.Kind)
		require.NotNil(t, conflict.Decision.Alternative)
		assert.Equal(t, "T10", conflict.Decision.Alternative.Label)
		assert.Equal(t, first.Booking.ID, conflict.Decision.Conflict.ID)

		req.AcceptAlternative = true
		w = executeRequest(http.MethodPost, base+"/bookings", req)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, tableIDs["T10"], *decode[bookingHttp.CommitResponse](t, w).Booking.TableID)
	})

	t.Run("Outside Opening Hours", func(t *testing.T) {
		w := executeRequest(http.MethodPost, base+"/bookings", bookingHttp.CreateBookingRequest{
			Date: "2024-06-01", StartTime: "09:00", PartySize: 2, CustomerName: "Early",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Occupancy", func(t *testing.T) {
		w := executeRequest(http.MethodGet, base+"/availability/occupancy?date=2024-06-01&at=19:30", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		got := decode[struct {
			Items []bookingHttp.TableStateResponse `json:"items"`
		}](t, w)
		require.Len(t, got.Items, 3)
		assert.Equal(t, []string{"T1", "T2", "T10"}, []string{got.Items[0].Table.Label, got.Items[1].Table.Label, got.Items[2].Table.Label})
		assert.Equal(t, "occupied", got.Items[1].Status)
	})

	t.Run("Cancel Frees Table", func(t *testing.T) {
		path := fmt.Sprintf("%s/bookings/%d", base, first.Booking.ID)
		w := executeRequest(http.MethodPatch, path, bookingHttp.UpdateBookingRequest{Status: ptr("cancelled")})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = executeRequest(http.MethodPost, base+"/availability/check", bookingHttp.CheckRequest{
			Date: "2024-06-01", StartTime: "19:00", PartySize: 4, PreferredTableID: ptr(tableIDs["T2"]),
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Clear", decode[bookingHttp.DecisionResponse](t, w).Kind)

		w = executeRequest(http.MethodPatch, path, bookingHttp.UpdateBookingRequest{Status: ptr("confirmed")})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("List By Status", func(t *testing.T) {
		w := executeRequest(http.MethodGet, base+"/bookings?date=2024-06-01&status=pending", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Grace")
		assert.NotContains(t, w.Body.String(), "Ada")
	})
}

func TestTenantIsolation(t *testing.T) {
	clearTables()

	_, err := testPool.Exec(context.Background(), `INSERT INTO restaurants (id, tenant_id, name) VALUES (9001, 1, 'Elsewhere')`)
	require.NoError(t, err)

	w := executeRequest(http.MethodGet, "/v1/restaurants/9001", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = executeRequest(http.MethodGet, "/v1/restaurants/9001/availability/occupancy?date=2024-06-01&at=19:00", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func ptr[T any](v T) *T { return &v }
