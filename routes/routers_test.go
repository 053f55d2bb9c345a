package routes

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelhub/config"
	"hotelhub/constants"
	"hotelhub/models"
	"hotelhub/services"
	"hotelhub/services/logger"
	"hotelhub/validator"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/goccy/go-json"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type nopGateway struct{}

func (nopGateway) Confirm(_ context.Context, paymentKey, orderID string, amount int64) (*services.GatewayPayment, error) {
	return &services.GatewayPayment{PaymentKey: paymentKey, OrderID: orderID, TotalAmount: amount, Method: "카드"}, nil
}

func (nopGateway) Cancel(_ context.Context, paymentKey, _ string) (*services.GatewayPayment, error) {
	return &services.GatewayPayment{PaymentKey: paymentKey, Status: "CANCELED"}, nil
}

type envelope struct {
	Code int             `json:"code"`
	Mess string          `json:"mess"`
	Data json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := validator.RegisterBindings(); err != nil {
		t.Fatal(err)
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := models.AutoMigrate(db); err != nil {
		t.Fatal(err)
	}

	router := gin.New()
	SetupRoutes(router, Deps{
		Config: &config.Config{
			SecretKey:        "test-secret",
			AccessTokenTTL:   time.Hour,
			InternalAPIToken: "cron-token",
		},
		DB:      db,
		Logger:  logger.Nop{},
		Gateway: nopGateway{},
		Clock:   func() time.Time { return time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC) },
	})
	return &testServer{t: t, router: router, db: db}
}

func (s *testServer) do(method, path, token string, body interface{}, headers ...string) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			s.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code, env
}

func (s *testServer) register(email, role string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": "secret123", "name": "Tester", "phone": "010-1234-5678", "role": role,
	})
	if code != http.StatusCreated {
		s.t.Fatalf("register %s: %d %s", email, code, env.Mess)
	}
	var res struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &res); err != nil || res.Token == "" {
		s.t.Fatalf("register token: %v", err)
	}
	return res.Token
}

// seedRoom creates an active hotel owned by a fresh approved business with one room.
func (s *testServer) seedRoom(price int64, total int) models.Room {
	s.t.Helper()
	owner := models.User{Email: "owner@hotel.kr", Password: "x", Name: "Owner", Role: constants.RoleBusiness, BusinessStatus: constants.BusinessApproved}
	if err := s.db.Create(&owner).Error; err != nil {
		s.t.Fatal(err)
	}
	hotel := models.Hotel{Name: "Han River", City: "Seoul", OwnerID: owner.ID, Status: constants.HotelActive}
	if err := s.db.Create(&hotel).Error; err != nil {
		s.t.Fatal(err)
	}
	room := models.Room{HotelID: hotel.ID, Name: "Deluxe", Price: price, Capacity: 2, TotalRooms: total, AvailableRooms: total, Status: constants.RoomAvailable}
	if err := s.db.Create(&room).Error; err != nil {
		s.t.Fatal(err)
	}
	return room
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Header().Get("X-Session-ID") == "" {
		t.Errorf("ping = %d session %q", w.Code, w.Header().Get("X-Session-ID"))
	}
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)
	s.register("guest@hotel.kr", "user")

	code, env := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "GUEST@hotel.kr", "password": "secret123", "name": "Again",
	})
	if code != http.StatusConflict || env.Code != 0 {
		t.Errorf("duplicate register = %d code %d", code, env.Code)
	}

	code, _ = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "bad@hotel.kr", "password": "secret123", "name": "Bad", "phone": "12",
	})
	if code != http.StatusBadRequest {
		t.Errorf("bad phone = %d", code)
	}

	code, env = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "guest@hotel.kr", "password": "secret123"})
	if code != http.StatusOK || env.Code != 1 {
		t.Fatalf("login = %d %s", code, env.Mess)
	}
	code, _ = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "guest@hotel.kr", "password": "wrong-pass"})
	if code != http.StatusUnauthorized {
		t.Errorf("wrong password = %d", code)
	}
}

func TestRoleGates(t *testing.T) {
	s := newTestServer(t)
	guest := s.register("guest@hotel.kr", "user")
	pending := s.register("biz@hotel.kr", "business")

	cases := []struct {
		name, method, path, token string
		want                      int
	}{
		{"anonymous booking list", http.MethodGet, "/api/bookings/my", "", http.StatusUnauthorized},
		{"member booking list", http.MethodGet, "/api/bookings/my", guest, http.StatusOK},
		{"user on admin", http.MethodGet, "/api/admin/users", guest, http.StatusForbidden},
		{"user on business", http.MethodGet, "/api/business/hotels", guest, http.StatusForbidden},
		{"pending business", http.MethodGet, "/api/business/hotels", pending, http.StatusForbidden},
		{"public search", http.MethodGet, "/api/hotels/search", "", http.StatusOK},
	}
	for _, tc := range cases {
		if code, _ := s.do(tc.method, tc.path, tc.token, nil); code != tc.want {
			t.Errorf("%s: status %d, want %d", tc.name, code, tc.want)
		}
	}
}

func TestBookingOverHTTP(t *testing.T) {
	s := newTestServer(t)
	room := s.seedRoom(120000, 1)
	guest := s.register("guest@hotel.kr", "user")

	body := map[string]interface{}{"roomId": room.ID, "checkIn": "2026-11-01", "checkOut": "2026-11-03"}

	code, env := s.do(http.MethodPost, "/api/bookings/quote", guest, body)
	if code != http.StatusOK {
		t.Fatalf("quote = %d %s", code, env.Mess)
	}
	var quote services.Quote
	if err := json.Unmarshal(env.Data, &quote); err != nil {
		t.Fatal(err)
	}
	if quote.Nights != 2 || quote.Final != 240000 {
		t.Errorf("quote = %+v", quote)
	}

	// client supplied prices are ignored
	body["finalPrice"] = 1
	code, env = s.do(http.MethodPost, "/api/bookings", guest, body)
	if code != http.StatusCreated {
		t.Fatalf("create = %d %s", code, env.Mess)
	}
	var booking models.Booking
	if err := json.Unmarshal(env.Data, &booking); err != nil {
		t.Fatal(err)
	}
	if booking.FinalPrice != 240000 || booking.OrderID == "" {
		t.Errorf("booking = %+v", booking)
	}

	if code, _ = s.do(http.MethodPost, "/api/bookings", guest, body); code != http.StatusConflict {
		t.Errorf("sold out create = %d, want 409", code)
	}

	bad := map[string]interface{}{"roomId": room.ID, "checkIn": "2026-11-03", "checkOut": "2026-11-03"}
	if code, _ = s.do(http.MethodPost, "/api/bookings/quote", guest, bad); code != http.StatusBadRequest {
		t.Errorf("zero-night quote = %d, want 400", code)
	}

	code, env = s.do(http.MethodPost, "/api/payments/confirm", guest, map[string]interface{}{
		"paymentKey": "pk_1", "orderId": booking.OrderID, "amount": booking.FinalPrice,
	})
	if code != http.StatusOK {
		t.Errorf("confirm = %d %s", code, env.Mess)
	}
}

func TestCheckPriceAlertsNeedsInternalToken(t *testing.T) {
	s := newTestServer(t)
	if code, _ := s.do(http.MethodGet, "/api/favorites/check-price-alerts", "", nil); code != http.StatusForbidden {
		t.Errorf("without token = %d", code)
	}
	code, env := s.do(http.MethodGet, "/api/favorites/check-price-alerts", "", nil, "X-Internal-Token", "cron-token")
	if code != http.StatusOK || string(env.Data) != "[]" {
		t.Errorf("with token = %d data %s", code, env.Data)
	}
}

func TestApprovedBusinessRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.register("biz@hotel.kr", "business")
	if err := s.db.Model(&models.User{}).Where("email = ?", "biz@hotel.kr").
		Update("business_status", constants.BusinessApproved).Error; err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{
		"/api/business/hotels",
		"/api/business/reviews",
		"/api/business/bookings",
		"/api/business/dashboard/stats",
		"/api/business/revenue/monthly",
	} {
		if code, env := s.do(http.MethodGet, path, token, nil); code != http.StatusOK {
			t.Errorf("%s = %d %s", path, code, env.Mess)
		}
	}

	code, env := s.do(http.MethodGet, "/api/hotels/featured/list", "", nil)
	if code != http.StatusOK || env.Code != 1 {
		t.Errorf("featured = %d %s", code, env.Mess)
	}
}
