package services

import (
	"hotelhub/constants"
	apperrors "hotelhub/errors"
	"hotelhub/models"

	"gorm.io/gorm"
)

type ratingAggregate struct {
	Count int64
	Avg   float64
}

// lockHotel takes the hotel row lock that serializes review writes per hotel.
func lockHotel(tx *gorm.DB, hotelID uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := findOr404(lockForUpdate(tx), &hotel, hotelID, "호텔을 찾을 수 없습니다"); err != nil {
		return nil, err
	}
	return &hotel, nil
}

// RecomputeHotelRating rewrites the hotel's rating and review count from its
// active reviews. Must run in the same transaction as the review write and
// after lockHotel. An empty set yields 0 and 0.
func RecomputeHotelRating(tx *gorm.DB, hotelID uint) (float64, int, error) {
	var agg ratingAggregate
	if err := tx.Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(CAST(rating AS FLOAT)), 0) AS avg").
		Where("hotel_id = ? AND status = ?", hotelID, constants.ReviewActive).
		Scan(&agg).Error; err != nil {
		return 0, 0, apperrors.Internal(err)
	}
	if agg.Count == 0 {
		agg.Avg = 0
	}

	if err := tx.Model(&models.Hotel{}).Where("id = ?", hotelID).Updates(map[string]interface{}{
		"rating":       agg.Avg,
		"review_count": agg.Count,
	}).Error; err != nil {
		return 0, 0, apperrors.Internal(err)
	}
	return agg.Avg, int(agg.Count), nil
}
