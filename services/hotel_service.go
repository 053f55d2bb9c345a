package services

import (
	"context"
	"fmt"
	"strings"

	"hotelhub/constants"
	"hotelhub/dto"
	apperrors "hotelhub/errors"
	"hotelhub/models"
	"hotelhub/services/logger"
	"hotelhub/types"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type HotelServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
	Cache  *Cache
}

// HotelService covers public hotel discovery and hotel/room management by
// owners and admins.
type HotelService struct {
	db     *gorm.DB
	logger logger.Logger
	cache  *Cache
}

func NewHotelService(opts HotelServiceOptions) *HotelService {
	return &HotelService{
		db:     opts.DB,
		logger: opts.Logger,
		cache:  opts.Cache,
	}
}

type roomFilter struct {
	roomType string
	bedType  string
	viewType string
	guests   int
}

// minPrices returns the cheapest bookable matching room price per hotel.
func (s *HotelService) minPrices(ctx context.Context, hotelIDs []uint, f roomFilter) (map[uint]int64, error) {
	out := make(map[uint]int64, len(hotelIDs))
	if len(hotelIDs) == 0 {
		return out, nil
	}
	q := s.db.WithContext(ctx).Model(&models.Room{}).
		Select("hotel_id, MIN(price) AS price").
		Where("hotel_id IN ? AND available_rooms > 0 AND status = ?", hotelIDs, constants.RoomAvailable)
	if f.roomType != "" {
		q = q.Where("type = ?", f.roomType)
	}
	if f.bedType != "" {
		q = q.Where("bed_type = ?", f.bedType)
	}
	if f.viewType != "" {
		q = q.Where("view_type = ?", f.viewType)
	}
	if f.guests > 0 {
		q = q.Where("capacity >= ?", f.guests)
	}

	var rows []cheapestRoom
	if err := q.Group("hotel_id").Scan(&rows).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	for _, r := range rows {
		out[r.HotelID] = r.Price
	}
	return out, nil
}

// Search returns active hotels matching the filters that have at least one
// bookable matching room, with the cheapest such price attached.
func (s *HotelService) Search(ctx context.Context, query dto.HotelSearchQuery) ([]dto.HotelSummary, int, error) {
	q := s.db.WithContext(ctx).Where("status = ?", constants.HotelActive)
	if city := strings.TrimSpace(query.City); city != "" {
		q = q.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(city)+"%")
	}
	if query.Rating > 0 {
		q = q.Where("rating >= ?", query.Rating)
	}

	var hotels []models.Hotel
	if err := q.Order("rating DESC").Order("id ASC").Find(&hotels).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	amenities := splitList(query.Amenities)
	ids := make([]uint, 0, len(hotels))
	kept := hotels[:0]
	for _, h := range hotels {
		if h.HasAmenities(amenities) {
			kept = append(kept, h)
			ids = append(ids, h.ID)
		}
	}

	prices, err := s.minPrices(ctx, ids, roomFilter{
		roomType: query.RoomType,
		bedType:  query.BedType,
		viewType: query.ViewType,
		guests:   query.Guests,
	})
	if err != nil {
		return nil, 0, err
	}

	results := make([]dto.HotelSummary, 0, len(kept))
	for _, h := range kept {
		price, ok := prices[h.ID]
		if !ok {
			continue
		}
		p := price
		results = append(results, dto.NewHotelSummary(h, &p))
	}

	if strings.TrimSpace(query.Q) != "" {
		results = ScoreHotels(query.Q, results)
	}

	total := len(results)
	page := Page{Page: query.Page, Limit: query.Limit}.Normalize()
	start := (page.Page - 1) * page.Limit
	if start >= total {
		return []dto.HotelSummary{}, total, nil
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	return results[start:end], total, nil
}

// splitList accepts both repeated query params and comma separated values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// SaveLastSearch remembers a session's last search filters.
func (s *HotelService) SaveLastSearch(ctx context.Context, sessionID string, query dto.HotelSearchQuery) {
	if sessionID == "" {
		return
	}
	s.cache.Set(ctx, fmt.Sprintf(cacheKeyLastSearch, sessionID), query, lastSearchCacheTTL)
}

func (s *HotelService) LastSearch(ctx context.Context, sessionID string) (*dto.HotelSearchQuery, bool) {
	var q dto.HotelSearchQuery
	if sessionID == "" || !s.cache.Get(ctx, fmt.Sprintf(cacheKeyLastSearch, sessionID), &q) {
		return nil, false
	}
	return &q, true
}

// Featured returns the top rated active hotels; MinPrice is nil when a hotel
// has no bookable room.
func (s *HotelService) Featured(ctx context.Context) ([]dto.HotelSummary, error) {
	var out []dto.HotelSummary
	if s.cache.Get(ctx, cacheKeyFeatured, &out) {
		return out, nil
	}

	var hotels []models.Hotel
	if err := s.db.WithContext(ctx).
		Where("status = ?", constants.HotelActive).
		Order("rating DESC").Order("review_count DESC").Order("id ASC").
		Limit(constants.FeaturedHotelLimit).
		Find(&hotels).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	ids := make([]uint, len(hotels))
	for i, h := range hotels {
		ids[i] = h.ID
	}
	prices, err := s.minPrices(ctx, ids, roomFilter{})
	if err != nil {
		return nil, err
	}

	out = make([]dto.HotelSummary, 0, len(hotels))
	for _, h := range hotels {
		var minPrice *int64
		if p, ok := prices[h.ID]; ok {
			minPrice = &p
		}
		out = append(out, dto.NewHotelSummary(h, minPrice))
	}
	s.cache.Set(ctx, cacheKeyFeatured, out, hotelCacheTTL)
	return out, nil
}

// Detail returns an active hotel with its available rooms.
func (s *HotelService) Detail(ctx context.Context, id uint) (*dto.HotelDetail, error) {
	key := fmt.Sprintf(cacheKeyHotelDetail, id)
	var detail dto.HotelDetail
	if s.cache.Get(ctx, key, &detail) {
		return &detail, nil
	}

	var hotel models.Hotel
	if err := findOr404(s.db.WithContext(ctx), &hotel, id, "호텔을 찾을 수 없습니다"); err != nil {
		return nil, err
	}
	if hotel.Status != constants.HotelActive {
		return nil, apperrors.NotFound("호텔을 찾을 수 없습니다")
	}

	var rooms []models.Room
	if err := s.db.WithContext(ctx).
		Where("hotel_id = ? AND status = ?", id, constants.RoomAvailable).
		Order("price ASC").
		Find(&rooms).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	detail = dto.HotelDetail{Hotel: hotel, Rooms: rooms}
	s.cache.Set(ctx, key, detail, hotelCacheTTL)
	return &detail, nil
}

func (s *HotelService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := findOr404(s.db.WithContext(ctx).Preload("Hotel"), &room, id, "객실을 찾을 수 없습니다"); err != nil {
		return nil, err
	}
	if room.Hotel == nil || room.Hotel.Status != constants.HotelActive {
		return nil, apperrors.NotFound("객실을 찾을 수 없습니다")
	}
	return &room, nil
}

// ownedHotel loads a hotel the caller owns. Admins pass the ownership check.
func (s *HotelService) ownedHotel(tx *gorm.DB, caller types.Caller, id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := findOr404(tx, &hotel, id, "호텔을 찾을 수 없습니다"); err != nil {
		return nil, err
	}
	if hotel.OwnerID != caller.ID && !caller.IsAdmin() {
		return nil, apperrors.Forbidden("본인 소유의 호텔이 아닙니다")
	}
	return &hotel, nil
}

func (s *HotelService) ListOwned(ctx context.Context, caller types.Caller) ([]models.Hotel, error) {
	var hotels []models.Hotel
	if err := s.db.WithContext(ctx).Preload("Rooms").
		Where("owner_id = ?", caller.ID).
		Order("created_at DESC").
		Find(&hotels).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return hotels, nil
}

// CreateHotel registers a hotel for the calling business. New hotels wait for
// admin approval.
func (s *HotelService) CreateHotel(ctx context.Context, caller types.Caller, req dto.HotelRequest) (*models.Hotel, error) {
	hotel := &models.Hotel{OwnerID: caller.ID, Status: constants.HotelPending}
	applyHotelRequest(hotel, req)
	if err := s.db.WithContext(ctx).Create(hotel).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	s.logger.Info("hotel %d created by business %d", hotel.ID, caller.ID)
	return hotel, nil
}

func applyHotelRequest(h *models.Hotel, req dto.HotelRequest) {
	h.Name = strings.TrimSpace(req.Name)
	h.Description = req.Description
	h.Address = req.Address
	h.City = strings.TrimSpace(req.City)
	h.Country = req.Country
	h.Latitude = req.Latitude
	h.Longitude = req.Longitude
	h.Images = datatypes.JSONSlice[string](req.Images)
	h.Amenities = datatypes.JSONSlice[string](req.Amenities)
}

// UpdateHotel edits descriptive fields. Rating, counts, owner and status are
// not writable here.
func (s *HotelService) UpdateHotel(ctx context.Context, caller types.Caller, id uint, req dto.HotelRequest) (*models.Hotel, error) {
	hotel, err := s.ownedHotel(s.db.WithContext(ctx), caller, id)
	if err != nil {
		return nil, err
	}
	applyHotelRequest(hotel, req)
	if err := s.db.WithContext(ctx).Model(hotel).Select(
		"name", "description", "address", "city", "country", "latitude", "longitude", "images", "amenities",
	).Updates(hotel).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	s.cache.InvalidateHotel(ctx, hotel.ID)
	return hotel, nil
}

// DeleteHotel removes a hotel with its rooms, reviews and favorites. Bookings
// are kept as history.
func (s *HotelService) DeleteHotel(ctx context.Context, caller types.Caller, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hotel, err := s.ownedHotel(tx, caller, id)
		if err != nil {
			return err
		}
		return deleteHotelCascade(tx, hotel.ID)
	})
	if err != nil {
		return asAppError(err)
	}
	s.cache.InvalidateHotel(ctx, id)
	s.logger.Info("hotel %d deleted by %d", id, caller.ID)
	return nil
}

func deleteHotelCascade(tx *gorm.DB, hotelID uint) error {
	for _, model := range []interface{}{&models.Room{}, &models.Review{}, &models.Favorite{}} {
		if err := tx.Where("hotel_id = ?", hotelID).Delete(model).Error; err != nil {
			return apperrors.Internal(err)
		}
	}
	if err := tx.Delete(&models.Hotel{}, hotelID).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// SetStatus is the admin approval switch for a hotel.
func (s *HotelService) SetStatus(ctx context.Context, id uint, status constants.HotelStatus) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := findOr404(s.db.WithContext(ctx), &hotel, id, "호텔을 찾을 수 없습니다"); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&hotel).Update("status", status).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	s.cache.InvalidateHotel(ctx, id)
	return &hotel, nil
}

// ListAll is the admin listing, optionally filtered by status.
func (s *HotelService) ListAll(ctx context.Context, status string, page Page) ([]models.Hotel, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Hotel{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	var hotels []models.Hotel
	if err := page.apply(q).Preload("Owner").Order("created_at DESC").Find(&hotels).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return hotels, total, nil
}

func (s *HotelService) ListOwnedRooms(ctx context.Context, caller types.Caller) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.db.WithContext(ctx).
		Preload("Hotel").
		Joins("JOIN hotels ON hotels.id = rooms.hotel_id").
		Where("hotels.owner_id = ?", caller.ID).
		Order("rooms.hotel_id ASC").Order("rooms.price ASC").
		Find(&rooms).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return rooms, nil
}

func applyRoomRequest(r *models.Room, req dto.RoomRequest) {
	r.Name = strings.TrimSpace(req.Name)
	r.Type = req.Type
	r.BedType = req.BedType
	r.ViewType = req.ViewType
	r.Description = req.Description
	r.Price = req.Price
	r.Capacity = req.Capacity
	r.Images = datatypes.JSONSlice[string](req.Images)
	r.Status = constants.RoomAvailable
	if req.Status != "" {
		r.Status = constants.RoomStatus(req.Status)
	}
}

func (s *HotelService) CreateRoom(ctx context.Context, caller types.Caller, hotelID uint, req dto.RoomRequest) (*models.Room, error) {
	hotel, err := s.ownedHotel(s.db.WithContext(ctx), caller, hotelID)
	if err != nil {
		return nil, err
	}
	room := &models.Room{HotelID: hotel.ID, TotalRooms: req.TotalRooms, AvailableRooms: req.TotalRooms}
	applyRoomRequest(room, req)
	if err := s.db.WithContext(ctx).Create(room).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	s.cache.InvalidateHotel(ctx, hotel.ID)
	return room, nil
}

// UpdateRoom edits a room. Changing TotalRooms shifts AvailableRooms by the
// same delta, clamped to [0, TotalRooms], so units already booked stay booked.
func (s *HotelService) UpdateRoom(ctx context.Context, caller types.Caller, roomID uint, req dto.RoomRequest) (*models.Room, error) {
	var room models.Room
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findOr404(lockForUpdate(tx), &room, roomID, "객실을 찾을 수 없습니다"); err != nil {
			return err
		}
		if _, err := s.ownedHotel(tx, caller, room.HotelID); err != nil {
			return err
		}

		delta := req.TotalRooms - room.TotalRooms
		room.TotalRooms = req.TotalRooms
		room.AvailableRooms = clamp(room.AvailableRooms+delta, 0, room.TotalRooms)
		applyRoomRequest(&room, req)

		if err := tx.Model(&room).Select(
			"name", "type", "bed_type", "view_type", "description", "price", "capacity",
			"total_rooms", "available_rooms", "status", "images",
		).Updates(&room).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	s.cache.InvalidateHotel(ctx, room.HotelID)
	return &room, nil
}

func (s *HotelService) DeleteRoom(ctx context.Context, caller types.Caller, roomID uint) error {
	var room models.Room
	if err := findOr404(s.db.WithContext(ctx), &room, roomID, "객실을 찾을 수 없습니다"); err != nil {
		return err
	}
	if _, err := s.ownedHotel(s.db.WithContext(ctx), caller, room.HotelID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&room).Error; err != nil {
		return apperrors.Internal(err)
	}
	s.cache.InvalidateHotel(ctx, room.HotelID)
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

