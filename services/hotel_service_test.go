package services

import (
	"context"
	"testing"

	"hotelhub/constants"
	"hotelhub/dto"
	apperrors "hotelhub/errors"
	"hotelhub/models"

	"gorm.io/gorm"
)

func newHotelService(db *gorm.DB) *HotelService {
	return NewHotelService(HotelServiceOptions{DB: db, Logger: nop(), Cache: NewCache(nil, nop())})
}

func hotelNames(hotels []dto.HotelSummary) []string {
	names := make([]string, len(hotels))
	for i, h := range hotels {
		names[i] = h.Name
	}
	return names
}

func TestHotelSearchFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newHotelService(db)
	owner := seedUser(t, db, "owner@hotel.kr", constants.RoleBusiness, 0)

	seaside := seedHotel(t, db, owner, "Seaside Resort", "Busan", "wifi", "pool", "parking")
	seedRoom(t, db, seaside, 180000, 2)
	seedRoom(t, db, seaside, 120000, 2)

	downtown := seedHotel(t, db, owner, "Downtown Busan", "Busan", "wifi")
	seedRoom(t, db, downtown, 90000, 2)

	soldOut := seedHotel(t, db, owner, "Full House", "Busan", "wifi", "pool")
	room := seedRoom(t, db, soldOut, 50000, 1)
	if err := db.Model(room).Update("available_rooms", 0).Error; err != nil {
		t.Fatal(err)
	}

	pending := seedHotel(t, db, owner, "Not Yet", "Busan", "wifi", "pool")
	seedRoom(t, db, pending, 70000, 2)
	if err := db.Model(pending).Update("status", constants.HotelPending).Error; err != nil {
		t.Fatal(err)
	}

	seoul := seedHotel(t, db, owner, "Seoul Tower", "Seoul", "wifi", "pool")
	seedRoom(t, db, seoul, 110000, 2)

	results, total, err := svc.Search(ctx, dto.HotelSearchQuery{City: "busan"})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Fatalf("busan results = %v, want seaside and downtown", hotelNames(results))
	}
	for _, h := range results {
		if h.ID == seaside.ID && (h.MinPrice == nil || *h.MinPrice != 120000) {
			t.Errorf("seaside min price = %v, want 120000", h.MinPrice)
		}
	}

	results, total, err = svc.Search(ctx, dto.HotelSearchQuery{Amenities: []string{"wifi,pool"}})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Errorf("wifi+pool results = %v, want Seaside Resort and Seoul Tower", hotelNames(results))
	}

	results, _, err = svc.Search(ctx, dto.HotelSearchQuery{City: "Busan", Q: "seaside"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) == 0 || results[0].ID != seaside.ID || results[0].Score == 0 {
		t.Errorf("q=seaside ranked %v", hotelNames(results))
	}

	results, total, err = svc.Search(ctx, dto.HotelSearchQuery{Guests: 5})
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 || len(results) != 0 {
		t.Errorf("guests=5 results = %v, want none", hotelNames(results))
	}
}

func TestHotelSearchPaginates(t *testing.T) {
	db := newTestDB(t)
	svc := newHotelService(db)
	owner := seedUser(t, db, "owner@hotel.kr", constants.RoleBusiness, 0)
	for _, name := range []string{"A", "B", "C"} {
		h := seedHotel(t, db, owner, name, "Jeju")
		seedRoom(t, db, h, 100000, 1)
	}

	results, total, err := svc.Search(context.Background(), dto.HotelSearchQuery{Page: 2, Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(results) != 1 {
		t.Errorf("page 2 = %d of %d, want 1 of 3", len(results), total)
	}

	results, total, _ = svc.Search(context.Background(), dto.HotelSearchQuery{Page: 5, Limit: 2})
	if total != 3 || len(results) != 0 {
		t.Errorf("page 5 = %d of %d, want 0 of 3", len(results), total)
	}
}

func TestHotelDetailHidesInactive(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newHotelService(db)
	owner := seedUser(t, db, "owner@hotel.kr", constants.RoleBusiness, 0)
	hotel := seedHotel(t, db, owner, "Ulsan Port", "Ulsan")
	seedRoom(t, db, hotel, 200000, 1)
	seedRoom(t, db, hotel, 100000, 1)

	detail, err := svc.Detail(ctx, hotel.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Rooms) != 2 || detail.Rooms[0].Price != 100000 {
		t.Errorf("rooms = %+v, want cheapest first", detail.Rooms)
	}

	if _, err := svc.SetStatus(ctx, hotel.ID, constants.HotelInactive); err != nil {
		t.Fatal(err)
	}
	_, err = svc.Detail(ctx, hotel.ID)
	assertCode(t, err, apperrors.ErrCodeNotFound)
	_, err = svc.GetRoom(ctx, detail.Rooms[0].ID)
	assertCode(t, err, apperrors.ErrCodeNotFound)
}

func TestUpdateRoomKeepsBookedUnits(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newHotelService(db)
	owner := seedUser(t, db, "owner@hotel.kr", constants.RoleBusiness, 0)
	rival := seedUser(t, db, "rival@hotel.kr", constants.RoleBusiness, 0)
	hotel := seedHotel(t, db, owner, "Mokpo Bay", "Mokpo")
	room := seedRoom(t, db, hotel, 100000, 5)
	// three units booked
	if err := db.Model(room).Update("available_rooms", 2).Error; err != nil {
		t.Fatal(err)
	}

	req := dto.RoomRequest{Name: "Standard", Type: "standard", Price: 110000, Capacity: 2, TotalRooms: 4}
	updated, err := svc.UpdateRoom(ctx, CallerOf(owner), room.ID, req)
	if err != nil {
		t.Fatal(err)
	}
	if updated.TotalRooms != 4 || updated.AvailableRooms != 1 || updated.Price != 110000 {
		t.Errorf("after shrink total=%d available=%d price=%d", updated.TotalRooms, updated.AvailableRooms, updated.Price)
	}

	req.TotalRooms = 2
	updated, err = svc.UpdateRoom(ctx, CallerOf(owner), room.ID, req)
	if err != nil {
		t.Fatal(err)
	}
	if updated.AvailableRooms != 0 {
		t.Errorf("available = %d, want clamped to 0", updated.AvailableRooms)
	}

	req.TotalRooms = 10
	updated, err = svc.UpdateRoom(ctx, CallerOf(owner), room.ID, req)
	if err != nil {
		t.Fatal(err)
	}
	if updated.AvailableRooms != 8 {
		t.Errorf("available = %d, want 8", updated.AvailableRooms)
	}

	_, err = svc.UpdateRoom(ctx, CallerOf(rival), room.ID, req)
	assertCode(t, err, apperrors.ErrCodeForbidden)
}

func TestDeleteHotelCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newHotelService(db)
	reviews := newReviewService(db)
	favorites := NewFavoriteService(FavoriteServiceOptions{DB: db, Logger: nop()})
	owner := seedUser(t, db, "owner@hotel.kr", constants.RoleBusiness, 0)
	guest := seedUser(t, db, "guest@hotel.kr", constants.RoleUser, 0)
	hotel := seedHotel(t, db, owner, "Yeosu Night", "Yeosu")
	seedRoom(t, db, hotel, 100000, 2)

	if _, err := reviews.Create(ctx, CallerOf(guest), dto.CreateReviewRequest{HotelID: hotel.ID, Rating: 5}); err != nil {
		t.Fatal(err)
	}
	if _, err := favorites.Add(ctx, CallerOf(guest), hotel.ID); err != nil {
		t.Fatal(err)
	}

	assertCode(t, svc.DeleteHotel(ctx, CallerOf(guest), hotel.ID), apperrors.ErrCodeForbidden)
	if err := svc.DeleteHotel(ctx, CallerOf(owner), hotel.ID); err != nil {
		t.Fatal(err)
	}

	for _, model := range []interface{}{&models.Room{}, &models.Review{}, &models.Favorite{}} {
		var n int64
		db.Model(model).Where("hotel_id = ?", hotel.ID).Count(&n)
		if n != 0 {
			t.Errorf("%T rows left: %d", model, n)
		}
	}
}

func TestCreateHotelStartsPending(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newHotelService(db)
	owner := seedUser(t, db, "owner@hotel.kr", constants.RoleBusiness, 0)

	hotel, err := svc.CreateHotel(ctx, CallerOf(owner), dto.HotelRequest{
		Name: " Gyeongju Hanok ", Address: "1 Main", City: "Gyeongju", Amenities: []string{"wifi"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if hotel.Status != constants.HotelPending || hotel.Name != "Gyeongju Hanok" {
		t.Errorf("hotel = %s %q", hotel.Status, hotel.Name)
	}

	room, err := svc.CreateRoom(ctx, CallerOf(owner), hotel.ID, dto.RoomRequest{
		Name: "Ondol", Type: "deluxe", Price: 150000, Capacity: 3, TotalRooms: 4,
	})
	if err != nil {
		t.Fatal(err)
	}
	if room.AvailableRooms != 4 || room.Status != constants.RoomAvailable {
		t.Errorf("room available=%d status=%s", room.AvailableRooms, room.Status)
	}

	results, total, err := svc.Search(ctx, dto.HotelSearchQuery{City: "gyeongju"})
	if err != nil || total != 0 {
		t.Errorf("pending hotel searchable: %v %v", hotelNames(results), err)
	}
}
