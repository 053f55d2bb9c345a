package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hotelhub/constants"
	apperrors "hotelhub/errors"
	"hotelhub/models"

	"gorm.io/gorm"
)

func day(d int) time.Time {
	return time.Date(2026, 11, d, 0, 0, 0, 0, time.UTC)
}

type bookingFixture struct {
	db    *gorm.DB
	cache *Cache
	svc   *BookingService
	owner *models.User
	guest *models.User
	hotel *models.Hotel
	room  *models.Room
}

func newBookingFixture(t *testing.T, totalRooms int) *bookingFixture {
	t.Helper()
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@hotel.kr", constants.RoleBusiness, 0)
	guest := seedUser(t, db, "guest@hotel.kr", constants.RoleUser, 5000)
	hotel := seedHotel(t, db, owner, "Ocean Stay", "Busan", "wifi")
	room := seedRoom(t, db, hotel, 100000, totalRooms)
	cache := NewCache(nil, nop())

	return &bookingFixture{
		db:    db,
		cache: cache,
		svc:   NewBookingService(BookingServiceOptions{DB: db, Logger: nop(), Clock: fixedClock(testNow), Cache: cache}),
		owner: owner,
		guest: guest,
		hotel: hotel,
		room:  room,
	}
}

// useCache points the fixture's booking service at cache.
func (f *bookingFixture) useCache(cache *Cache) {
	f.cache = cache
	f.svc = NewBookingService(BookingServiceOptions{DB: f.db, Logger: nop(), Clock: fixedClock(testNow), Cache: cache})
}

func (f *bookingFixture) availableRooms(t *testing.T) int {
	t.Helper()
	var r models.Room
	reload(t, f.db, &r, f.room.ID)
	return r.AvailableRooms
}

func (f *bookingFixture) points(t *testing.T, userID uint) int64 {
	t.Helper()
	var u models.User
	reload(t, f.db, &u, userID)
	return u.Points
}

func TestBookingCreatePricesOnServer(t *testing.T) {
	f := newBookingFixture(t, 5)
	ctx := context.Background()

	booking, err := f.svc.Create(ctx, CallerOf(f.guest), CreateBookingInput{
		RoomID:   f.room.ID,
		CheckIn:  day(1),
		CheckOut: day(3),
		Adults:   2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if booking.TotalPrice != 200000 || booking.FinalPrice != 200000 || booking.DiscountAmount != 0 {
		t.Errorf("price = total %d discount %d final %d, want 200000/0/200000",
			booking.TotalPrice, booking.DiscountAmount, booking.FinalPrice)
	}
	if booking.HotelID != f.hotel.ID {
		t.Errorf("hotel id = %d, want %d", booking.HotelID, f.hotel.ID)
	}
	if booking.BookingStatus != constants.BookingConfirmed || booking.PaymentStatus != constants.PaymentPending {
		t.Errorf("status = %s/%s, want confirmed/pending", booking.BookingStatus, booking.PaymentStatus)
	}
	if booking.OrderID == "" {
		t.Error("order id not assigned")
	}
	if got := f.availableRooms(t); got != 4 {
		t.Errorf("available rooms = %d, want 4", got)
	}
}

func TestBookingCreateRejectsBadStay(t *testing.T) {
	f := newBookingFixture(t, 5)

	_, err := f.svc.Create(context.Background(), CallerOf(f.guest), CreateBookingInput{
		RoomID:   f.room.ID,
		CheckIn:  day(3),
		CheckOut: day(3),
	})
	assertCode(t, err, apperrors.ErrCodeValidation)
	if got := f.availableRooms(t); got != 5 {
		t.Errorf("available rooms = %d after rejected booking, want 5", got)
	}
}

func TestBookingCreateInactiveHotel(t *testing.T) {
	f := newBookingFixture(t, 5)
	if err := f.db.Model(f.hotel).Update("status", constants.HotelPending).Error; err != nil {
		t.Fatal(err)
	}

	_, err := f.svc.Create(context.Background(), CallerOf(f.guest), CreateBookingInput{
		RoomID: f.room.ID, CheckIn: day(1), CheckOut: day(2),
	})
	assertCode(t, err, apperrors.ErrCodeConflict)
}

func TestBookingLastUnitGoesToOneCaller(t *testing.T) {
	f := newBookingFixture(t, 1)
	ctx := context.Background()

	const attempts = 6
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Create(ctx, CallerOf(f.guest), CreateBookingInput{
				RoomID: f.room.ID, CheckIn: day(1), CheckOut: day(2),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, apperrors.ErrNoInventory):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 || conflicts != attempts-1 {
		t.Fatalf("succeeded=%d conflicts=%d, want 1 and %d", succeeded, conflicts, attempts-1)
	}
	if got := f.availableRooms(t); got != 0 {
		t.Errorf("available rooms = %d, want 0", got)
	}
}

func TestReserveUnitIgnoresStaleCount(t *testing.T) {
	f := newBookingFixture(t, 1)

	// both callers loaded the room while one unit was left
	var first, second models.Room
	reload(t, f.db, &first, f.room.ID)
	reload(t, f.db, &second, f.room.ID)
	if first.AvailableRooms != 1 || second.AvailableRooms != 1 {
		t.Fatalf("loaded counts = %d, %d", first.AvailableRooms, second.AvailableRooms)
	}

	if err := reserveUnit(f.db, first.ID); err != nil {
		t.Fatalf("first reservation: %v", err)
	}
	err := reserveUnit(f.db, second.ID)
	if !errors.Is(err, apperrors.ErrNoInventory) {
		t.Fatalf("second reservation = %v, want no inventory", err)
	}
	if got := f.availableRooms(t); got != 0 {
		t.Errorf("available rooms = %d, want 0", got)
	}
}

func TestBookingCancelReleasesHolds(t *testing.T) {
	f := newBookingFixture(t, 5)
	ctx := context.Background()
	coupon := seedCoupon(t, f.db, "WELCOME", constants.DiscountFixed, 10000, 5)

	booking, err := f.svc.Create(ctx, CallerOf(f.guest), CreateBookingInput{
		RoomID:      f.room.ID,
		CheckIn:     day(1),
		CheckOut:    day(3),
		CouponCodes: []string{"welcome"},
		Points:      3000,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if booking.DiscountAmount != 13000 || booking.FinalPrice != 187000 || booking.UsedPoints != 3000 {
		t.Fatalf("discount=%d final=%d points=%d, want 13000/187000/3000",
			booking.DiscountAmount, booking.FinalPrice, booking.UsedPoints)
	}
	if got := f.points(t, f.guest.ID); got != 2000 {
		t.Errorf("points after booking = %d, want 2000", got)
	}
	var c models.Coupon
	reload(t, f.db, &c, coupon.ID)
	if c.UsedCount != 1 {
		t.Errorf("coupon used = %d, want 1", c.UsedCount)
	}

	cancelled, err := f.svc.Cancel(ctx, CallerOf(f.guest), booking.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.BookingStatus != constants.BookingCancelled || cancelled.CancelledAt == nil {
		t.Errorf("cancelled booking = %s at %v", cancelled.BookingStatus, cancelled.CancelledAt)
	}
	if got := f.availableRooms(t); got != 5 {
		t.Errorf("available rooms after cancel = %d, want 5", got)
	}
	if got := f.points(t, f.guest.ID); got != 5000 {
		t.Errorf("points after cancel = %d, want 5000", got)
	}
	var after models.Coupon
	reload(t, f.db, &after, coupon.ID)
	if after.UsedCount != 0 {
		t.Errorf("coupon used after cancel = %d, want 0", after.UsedCount)
	}

	_, err = f.svc.Cancel(ctx, CallerOf(f.guest), booking.ID)
	assertCode(t, err, apperrors.ErrCodeConflict)
	if got := f.availableRooms(t); got != 5 {
		t.Errorf("second cancel changed inventory to %d", got)
	}
}

func TestBookingCancelOnlyByOwner(t *testing.T) {
	f := newBookingFixture(t, 5)
	ctx := context.Background()
	other := seedUser(t, f.db, "other@hotel.kr", constants.RoleUser, 0)

	booking, err := f.svc.Create(ctx, CallerOf(f.guest), CreateBookingInput{
		RoomID: f.room.ID, CheckIn: day(1), CheckOut: day(2),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.svc.Cancel(ctx, CallerOf(other), booking.ID)
	assertCode(t, err, apperrors.ErrCodeForbidden)

	_, err = f.svc.Cancel(ctx, CallerOf(f.guest), 9999)
	assertCode(t, err, apperrors.ErrCodeNotFound)
}

func TestBookingInsufficientPointsRollsBack(t *testing.T) {
	f := newBookingFixture(t, 5)

	_, err := f.svc.Create(context.Background(), CallerOf(f.guest), CreateBookingInput{
		RoomID: f.room.ID, CheckIn: day(1), CheckOut: day(2), Points: 6000,
	})
	assertCode(t, err, apperrors.ErrCodeValidation)
	if !errors.Is(err, apperrors.ErrInsufficientPoint) {
		t.Errorf("err = %v, want insufficient points", err)
	}
	if got := f.availableRooms(t); got != 5 {
		t.Errorf("available rooms = %d, want 5", got)
	}
}

func TestBookingExhaustedCoupon(t *testing.T) {
	f := newBookingFixture(t, 5)
	ctx := context.Background()
	seedCoupon(t, f.db, "ONCE", constants.DiscountFixed, 5000, 1)

	if _, err := f.svc.Create(ctx, CallerOf(f.guest), CreateBookingInput{
		RoomID: f.room.ID, CheckIn: day(1), CheckOut: day(2), CouponCodes: []string{"ONCE"},
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := f.svc.Create(ctx, CallerOf(f.guest), CreateBookingInput{
		RoomID: f.room.ID, CheckIn: day(4), CheckOut: day(5), CouponCodes: []string{"once"},
	})
	if !errors.Is(err, apperrors.ErrCouponExhausted) {
		t.Fatalf("err = %v, want coupon exhausted", err)
	}
	if got := f.availableRooms(t); got != 4 {
		t.Errorf("available rooms = %d, want 4", got)
	}
}

func TestBookingVisibility(t *testing.T) {
	f := newBookingFixture(t, 5)
	ctx := context.Background()
	admin := seedUser(t, f.db, "admin@hotel.kr", constants.RoleAdmin, 0)
	stranger := seedUser(t, f.db, "stranger@hotel.kr", constants.RoleUser, 0)
	rival := seedUser(t, f.db, "rival@hotel.kr", constants.RoleBusiness, 0)

	booking, err := f.svc.Create(ctx, CallerOf(f.guest), CreateBookingInput{
		RoomID: f.room.ID, CheckIn: day(1), CheckOut: day(2),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, u := range []*models.User{f.guest, f.owner, admin} {
		if _, err := f.svc.Get(ctx, CallerOf(u), booking.ID); err != nil {
			t.Errorf("%s: %v", u.Email, err)
		}
	}
	for _, u := range []*models.User{stranger, rival} {
		_, err := f.svc.Get(ctx, CallerOf(u), booking.ID)
		assertCode(t, err, apperrors.ErrCodeForbidden)
	}
}

func TestBookingQuoteReservesNothing(t *testing.T) {
	f := newBookingFixture(t, 5)

	q, err := f.svc.Quote(context.Background(), CallerOf(f.guest), CreateBookingInput{
		RoomID: f.room.ID, CheckIn: day(1), CheckOut: day(4), Points: 1000,
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.Nights != 3 || q.Total != 300000 || q.Final != 299000 {
		t.Errorf("quote = %+v", q)
	}
	if got := f.availableRooms(t); got != 5 {
		t.Errorf("available rooms = %d, want 5", got)
	}
	if got := f.points(t, f.guest.ID); got != 5000 {
		t.Errorf("points = %d, want 5000", got)
	}
}

func TestBookingListMine(t *testing.T) {
	f := newBookingFixture(t, 5)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		if _, err := f.svc.Create(ctx, CallerOf(f.guest), CreateBookingInput{
			RoomID: f.room.ID, CheckIn: day(i), CheckOut: day(i + 1),
		}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	bookings, total, err := f.svc.ListMine(ctx, CallerOf(f.guest), Page{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(bookings) != 2 {
		t.Errorf("total=%d len=%d, want 3 and 2", total, len(bookings))
	}
	if bookings[0].Hotel == nil || bookings[0].Room == nil {
		t.Error("hotel and room not preloaded")
	}
}
