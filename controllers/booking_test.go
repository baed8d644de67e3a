package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jgecalumni/room-booking-app/middleware"
	"github.com/jgecalumni/room-booking-app/utils"
)

type spyGateway struct {
	calls      int
	lastAmount int64
	order      map[string]interface{}
	err        error
}

func (g *spyGateway) CreateOrder(amount int64, currency, receipt string) (map[string]interface{}, error) {
	g.calls++
	g.lastAmount = amount
	return g.order, g.err
}

type spySender struct {
	sent            int
	attachmentsSent int
	failWith        error
}

func (s *spySender) Send(to, subject, body string) error {
	s.sent++
	return s.failWith
}

func (s *spySender) SendWithAttachment(to, subject, body string, pdf []byte, nameHint string) error {
	s.attachmentsSent++
	return s.failWith
}

func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

func bookingApp(ctrl *BookingController) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("identity", middleware.Identity{ID: 7, Email: "guest@example.com", Name: "Guest", Role: "USER"})
		return c.Next()
	})
	app.Post("/bookings/create-payment", ctrl.CreatePayment)
	app.Post("/bookings/create/:id", ctrl.CreateBooking)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func envelope(t *testing.T, resp *http.Response) utils.Response {
	t.Helper()
	var out utils.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreatePayment_MissingFields(t *testing.T) {
	gateway := &spyGateway{}
	ctrl := NewBookingController(nil, gateway, &spySender{}, "secret")
	app := bookingApp(ctrl)

	resp := postJSON(t, app, "/bookings/create-payment", fiber.Map{
		"listingId": 1,
		"startDate": "2024-06-01",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, gateway.calls)
}

func TestCreatePayment_ConflictSkipsGateway(t *testing.T) {
	gdb, mock := openMockDB(t)
	gateway := &spyGateway{}
	ctrl := NewBookingController(gdb, gateway, &spySender{}, "secret")
	app := bookingApp(ctrl)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	resp := postJSON(t, app, "/bookings/create-payment", fiber.Map{
		"listingId": 1,
		"startDate": "2024-06-02",
		"endDate":   "2024-06-04",
		"total":     5000,
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := envelope(t, resp)
	assert.Equal(t, "Room is already booked for selected dates", out.Message)
	assert.Zero(t, gateway.calls, "gateway must not be called for an unavailable range")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePayment_CreatesOrderInPaise(t *testing.T) {
	gdb, mock := openMockDB(t)
	gateway := &spyGateway{order: map[string]interface{}{"id": "order_NXhT4vQ3"}}
	ctrl := NewBookingController(gdb, gateway, &spySender{}, "secret")
	app := bookingApp(ctrl)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	resp := postJSON(t, app, "/bookings/create-payment", fiber.Map{
		"listingId": 1,
		"startDate": "2024-06-01",
		"endDate":   "2024-06-03",
		"total":     5000,
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := envelope(t, resp)
	assert.True(t, out.Success)
	assert.Equal(t, 1, gateway.calls)
	assert.Equal(t, int64(500000), gateway.lastAmount)

	data, ok := out.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "order_NXhT4vQ3", data["id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_MissingPaymentDetails(t *testing.T) {
	ctrl := NewBookingController(nil, &spyGateway{}, &spySender{}, "secret")
	app := bookingApp(ctrl)

	resp := postJSON(t, app, "/bookings/create/1", fiber.Map{
		"startDate": "2024-06-01",
		"endDate":   "2024-06-03",
		"total":     5000,
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := envelope(t, resp)
	assert.Equal(t, "Missing payment details", out.Message)
}

func TestCreateBooking_TamperedSignature(t *testing.T) {
	gdb, mock := openMockDB(t)
	sender := &spySender{}
	ctrl := NewBookingController(gdb, &spyGateway{}, sender, "secret")
	app := bookingApp(ctrl)

	resp := postJSON(t, app, "/bookings/create/1", fiber.Map{
		"razorpay_order_id":   "order_1",
		"razorpay_payment_id": "pay_1",
		"razorpay_signature":  "deadbeef",
		"startDate":           "2024-06-01",
		"endDate":             "2024-06-03",
		"total":               5000,
		"type":                "single",
		"purpose":             "reunion",
		"guests":              2,
		"receiptId":           "receipt_1",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := envelope(t, resp)
	assert.Equal(t, "Invalid payment signature", out.Message)
	assert.Zero(t, sender.attachmentsSent)
	// No expectations registered: a DB touch would fail the test.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_HappyPath(t *testing.T) {
	gdb, mock := openMockDB(t)
	sender := &spySender{}
	secret := "secret"
	ctrl := NewBookingController(gdb, &spyGateway{}, sender, secret)
	app := bookingApp(ctrl)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("order_1|pay_1"))
	signature := hex.EncodeToString(mac.Sum(nil))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "listings" WHERE .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(1, "Teesta"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	resp := postJSON(t, app, "/bookings/create/1", fiber.Map{
		"razorpay_order_id":   "order_1",
		"razorpay_payment_id": "pay_1",
		"razorpay_signature":  signature,
		"startDate":           "2024-06-01",
		"endDate":             "2024-06-03",
		"total":               5000,
		"type":                "single",
		"purpose":             "reunion",
		"guests":              2,
		"receiptId":           "receipt_1",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := envelope(t, resp)
	assert.True(t, out.Success)
	assert.Equal(t, "Room booked successfully", out.Message)
	assert.Equal(t, 1, sender.attachmentsSent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_ConflictAfterPayment(t *testing.T) {
	gdb, mock := openMockDB(t)
	sender := &spySender{}
	secret := "secret"
	ctrl := NewBookingController(gdb, &spyGateway{}, sender, secret)
	app := bookingApp(ctrl)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("order_1|pay_1"))
	signature := hex.EncodeToString(mac.Sum(nil))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "listings" WHERE .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(1, "Teesta"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	resp := postJSON(t, app, "/bookings/create/1", fiber.Map{
		"razorpay_order_id":   "order_1",
		"razorpay_payment_id": "pay_1",
		"razorpay_signature":  signature,
		"startDate":           "2024-06-02",
		"endDate":             "2024-06-04",
		"total":               5000,
		"type":                "single",
		"purpose":             "reunion",
		"guests":              2,
		"receiptId":           "receipt_1",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := envelope(t, resp)
	assert.Equal(t, "Room already booked for selected dates", out.Message)
	assert.Zero(t, sender.attachmentsSent)
	assert.NoError(t, mock.ExpectationsWereMet())
}
