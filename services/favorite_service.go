package services

import (
	"context"
	"errors"
	"time"

	"hotelhub/constants"
	"hotelhub/dto"
	apperrors "hotelhub/errors"
	"hotelhub/models"
	"hotelhub/services/logger"
	"hotelhub/types"

	"gorm.io/gorm"
)

// PriceAlertCooldown is the minimum gap between two alerts for one favorite.
const PriceAlertCooldown = 24 * time.Hour

type FavoriteServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
	Clock  Clock
}

type FavoriteService struct {
	db     *gorm.DB
	logger logger.Logger
	now    Clock
}

func NewFavoriteService(opts FavoriteServiceOptions) *FavoriteService {
	return &FavoriteService{
		db:     opts.DB,
		logger: opts.Logger,
		now:    defaultClock(opts.Clock),
	}
}

func (s *FavoriteService) ListMine(ctx context.Context, caller types.Caller) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := s.db.WithContext(ctx).Preload("Hotel").
		Where("user_id = ?", caller.ID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return favorites, nil
}

func (s *FavoriteService) Add(ctx context.Context, caller types.Caller, hotelID uint) (*models.Favorite, error) {
	var hotel models.Hotel
	if err := findOr404(s.db.WithContext(ctx), &hotel, hotelID, "호텔을 찾을 수 없습니다"); err != nil {
		return nil, err
	}

	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND hotel_id = ?", caller.ID, hotelID).Count(&n).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if n > 0 {
		return nil, apperrors.Conflict("이미 찜한 호텔입니다", apperrors.ErrAlreadyExists)
	}

	fav := &models.Favorite{UserID: caller.ID, HotelID: hotelID}
	if err := s.db.WithContext(ctx).Create(fav).Error; err != nil {
		if isDuplicate(err) {
			return nil, apperrors.Conflict("이미 찜한 호텔입니다", apperrors.ErrAlreadyExists)
		}
		return nil, apperrors.Internal(err)
	}
	fav.Hotel = &hotel
	return fav, nil
}

func (s *FavoriteService) Remove(ctx context.Context, caller types.Caller, hotelID uint) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND hotel_id = ?", caller.ID, hotelID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return apperrors.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("찜 목록에 없는 호텔입니다")
	}
	return nil
}

// SetPriceAlert configures the alert on an existing favorite.
func (s *FavoriteService) SetPriceAlert(ctx context.Context, caller types.Caller, hotelID uint, enabled bool, target int64) (*models.Favorite, error) {
	if enabled && target <= 0 {
		return nil, apperrors.Validation("목표 가격은 0보다 커야 합니다")
	}

	var fav models.Favorite
	err := s.db.WithContext(ctx).Where("user_id = ? AND hotel_id = ?", caller.ID, hotelID).First(&fav).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("찜 목록에 없는 호텔입니다")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	fav.PriceAlert.Enabled = enabled
	fav.PriceAlert.TargetPrice = target
	if err := s.db.WithContext(ctx).Model(&fav).Updates(map[string]interface{}{
		"price_alert_enabled":      enabled,
		"price_alert_target_price": target,
	}).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return &fav, nil
}

type cheapestRoom struct {
	HotelID uint
	Price   int64
}

// CheckPriceAlerts makes one pass over enabled alerts. An alert fires when the
// hotel's cheapest bookable room is at or under the target and the favorite
// was not notified within the cooldown. Stamping lastNotified is a guarded
// update so overlapping passes cannot fire the same alert twice.
func (s *FavoriteService) CheckPriceAlerts(ctx context.Context) ([]dto.PriceAlert, error) {
	now := s.now().UTC()
	cutoff := now.Add(-PriceAlertCooldown)

	var favorites []models.Favorite
	if err := s.db.WithContext(ctx).Preload("Hotel").
		Where("price_alert_enabled = ?", true).
		Where("(price_alert_last_notified IS NULL OR price_alert_last_notified <= ?)", cutoff).
		Find(&favorites).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if len(favorites) == 0 {
		return nil, nil
	}

	hotelIDs := make([]uint, 0, len(favorites))
	for _, f := range favorites {
		hotelIDs = append(hotelIDs, f.HotelID)
	}
	var mins []cheapestRoom
	if err := s.db.WithContext(ctx).Model(&models.Room{}).
		Select("hotel_id, MIN(price) AS price").
		Where("hotel_id IN ? AND available_rooms > 0 AND status = ?", hotelIDs, constants.RoomAvailable).
		Group("hotel_id").
		Scan(&mins).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	minPrice := make(map[uint]int64, len(mins))
	for _, m := range mins {
		minPrice[m.HotelID] = m.Price
	}

	var alerts []dto.PriceAlert
	for _, f := range favorites {
		price, ok := minPrice[f.HotelID]
		if !ok || price > f.PriceAlert.TargetPrice {
			continue
		}

		res := s.db.WithContext(ctx).Model(&models.Favorite{}).
			Where("id = ? AND (price_alert_last_notified IS NULL OR price_alert_last_notified <= ?)", f.ID, cutoff).
			Update("price_alert_last_notified", now)
		if res.Error != nil {
			s.logger.Error("price alert stamp favorite %d: %v", f.ID, res.Error)
			continue
		}
		if res.RowsAffected == 0 {
			continue
		}

		hotelName := ""
		if f.Hotel != nil {
			hotelName = f.Hotel.Name
		}
		alerts = append(alerts, dto.PriceAlert{
			UserID:       f.UserID,
			HotelID:      f.HotelID,
			HotelName:    hotelName,
			CurrentPrice: price,
			TargetPrice:  f.PriceAlert.TargetPrice,
		})
	}

	s.logger.Info("price alert check: %d candidates, %d fired", len(favorites), len(alerts))
	return alerts, nil
}
