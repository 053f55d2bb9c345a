package services

import (
	"context"
	"sort"

	"hotelhub/constants"
	"hotelhub/dto"
	apperrors "hotelhub/errors"
	"hotelhub/models"
	"hotelhub/services/logger"
	"hotelhub/types"

	"gorm.io/gorm"
)

type BusinessServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

// BusinessService serves the dashboards of an approved business.
type BusinessService struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewBusinessService(opts BusinessServiceOptions) *BusinessService {
	return &BusinessService{db: opts.DB, logger: opts.Logger}
}

func ownedHotelIDs(tx *gorm.DB, ownerID uint) *gorm.DB {
	return tx.Model(&models.Hotel{}).Select("id").Where("owner_id = ?", ownerID)
}

func (s *BusinessService) DashboardStats(ctx context.Context, caller types.Caller) (*dto.BusinessDashboardStats, error) {
	db := s.db.WithContext(ctx)
	var stats dto.BusinessDashboardStats

	if err := db.Model(&models.Hotel{}).Where("owner_id = ?", caller.ID).Count(&stats.TotalHotels).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := db.Model(&models.Booking{}).
		Where("hotel_id IN (?)", ownedHotelIDs(db, caller.ID)).
		Count(&stats.TotalBookings).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := db.Model(&models.Booking{}).
		Where("hotel_id IN (?) AND payment_status = ?", ownedHotelIDs(db, caller.ID), constants.PaymentCompleted).
		Select("COALESCE(SUM(final_price), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := db.Model(&models.Review{}).
		Where("hotel_id IN (?) AND status = ?", ownedHotelIDs(db, caller.ID), constants.ReviewActive).
		Count(&stats.TotalReviews).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return &stats, nil
}

// Bookings lists bookings made on the caller's hotels, newest first.
func (s *BusinessService) Bookings(ctx context.Context, caller types.Caller, status string, page Page) ([]models.Booking, int64, error) {
	db := s.db.WithContext(ctx)
	q := db.Model(&models.Booking{}).Where("hotel_id IN (?)", ownedHotelIDs(db, caller.ID))
	if status != "" {
		q = q.Where("booking_status = ?", status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	var bookings []models.Booking
	if err := page.apply(q).Preload("User").Preload("Hotel").Preload("Room").
		Order("created_at DESC").Order("id DESC").
		Find(&bookings).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return bookings, total, nil
}

// MonthlyRevenue buckets completed payments of the caller's hotels by the
// UTC month the booking was made, most recent month first, at most twelve
// months.
func (s *BusinessService) MonthlyRevenue(ctx context.Context, caller types.Caller) ([]dto.MonthlyRevenue, error) {
	db := s.db.WithContext(ctx)
	var rows []models.Booking
	if err := db.Select("final_price", "created_at").
		Where("hotel_id IN (?) AND payment_status = ?", ownedHotelIDs(db, caller.ID), constants.PaymentCompleted).
		Find(&rows).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	type key struct{ year, month int }
	buckets := make(map[key]*dto.MonthlyRevenue)
	for _, b := range rows {
		t := b.CreatedAt.UTC()
		k := key{t.Year(), int(t.Month())}
		m, ok := buckets[k]
		if !ok {
			m = &dto.MonthlyRevenue{Year: k.year, Month: k.month}
			buckets[k] = m
		}
		m.Total += b.FinalPrice
		m.Count++
	}

	out := make([]dto.MonthlyRevenue, 0, len(buckets))
	for _, m := range buckets {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	if len(out) > constants.MonthlyRevenueLimit {
		out = out[:constants.MonthlyRevenueLimit]
	}
	return out, nil
}
