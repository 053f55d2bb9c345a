package services

import (
	"context"
	"strings"

	"hotelhub/constants"
	"hotelhub/dto"
	apperrors "hotelhub/errors"
	"hotelhub/models"
	"hotelhub/services/logger"
	"hotelhub/types"

	"gorm.io/gorm"
)

type AdminServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
	Cache  *Cache
}

// AdminService holds the moderation operations of the admin console.
type AdminService struct {
	db     *gorm.DB
	logger logger.Logger
	cache  *Cache
}

func NewAdminService(opts AdminServiceOptions) *AdminService {
	return &AdminService{
		db:     opts.DB,
		logger: opts.Logger,
		cache:  opts.Cache,
	}
}

func (s *AdminService) DashboardStats(ctx context.Context) (*dto.AdminDashboardStats, error) {
	db := s.db.WithContext(ctx)
	var stats dto.AdminDashboardStats

	if err := db.Model(&models.Booking{}).Count(&stats.TotalBookings).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := db.Model(&models.Booking{}).
		Where("payment_status = ?", constants.PaymentCompleted).
		Select("COALESCE(SUM(final_price), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := db.Model(&models.User{}).Where("role = ?", constants.RoleBusiness).Count(&stats.TotalBusiness).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := db.Model(&models.User{}).Where("role = ?", constants.RoleUser).Count(&stats.TotalUsers).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := db.Model(&models.Hotel{}).Count(&stats.TotalHotels).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return &stats, nil
}

func whereSearch(q *gorm.DB, search string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" {
		return q
	}
	like := "%" + strings.ToLower(search) + "%"
	return q.Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ?)", like, like)
}

// ListBusinesses returns business accounts, optionally filtered by approval
// status and a name/email fragment.
func (s *AdminService) ListBusinesses(ctx context.Context, status, search string) ([]models.User, error) {
	q := s.db.WithContext(ctx).Where("role = ?", constants.RoleBusiness)
	if status != "" {
		q = q.Where("business_status = ?", status)
	}
	var users []models.User
	if err := whereSearch(q, search).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return users, nil
}

// SetBusinessStatus approves, rejects or blocks a business. Blocking also
// takes every hotel of the business offline.
func (s *AdminService) SetBusinessStatus(ctx context.Context, userID uint, status constants.BusinessStatus) (*models.User, error) {
	var user models.User
	var hotelIDs []uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findOr404(tx, &user, userID, "사업자를 찾을 수 없습니다"); err != nil {
			return err
		}
		if user.Role != constants.RoleBusiness {
			return apperrors.NotFound("사업자를 찾을 수 없습니다")
		}
		if err := tx.Model(&user).Update("business_status", status).Error; err != nil {
			return apperrors.Internal(err)
		}
		if status != constants.BusinessBlocked {
			return nil
		}
		if err := tx.Model(&models.Hotel{}).Where("owner_id = ?", user.ID).Pluck("id", &hotelIDs).Error; err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Model(&models.Hotel{}).Where("owner_id = ?", user.ID).
			Update("status", constants.HotelInactive).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	for _, id := range hotelIDs {
		s.cache.InvalidateHotel(ctx, id)
	}
	s.logger.Info("business %d set to %s", user.ID, status)
	return &user, nil
}

func (s *AdminService) ListUsers(ctx context.Context, role, search string, page Page) ([]models.User, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	q = whereSearch(q, search).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	var users []models.User
	if err := page.apply(q).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return users, total, nil
}

// SetBlocked blocks or unblocks an account. Admin accounts cannot be blocked.
func (s *AdminService) SetBlocked(ctx context.Context, caller types.Caller, userID uint, blocked bool) (*models.User, error) {
	var user models.User
	if err := findOr404(s.db.WithContext(ctx), &user, userID, "사용자를 찾을 수 없습니다"); err != nil {
		return nil, err
	}
	if user.Role == constants.RoleAdmin || user.ID == caller.ID {
		return nil, apperrors.Forbidden("관리자 계정은 차단할 수 없습니다")
	}
	if err := s.db.WithContext(ctx).Model(&user).Update("blocked", blocked).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	s.logger.Info("user %d blocked=%t by admin %d", user.ID, blocked, caller.ID)
	return &user, nil
}

// DeleteUser removes an account and everything hanging off it. Confirmed
// bookings give their room unit and coupon redemptions back first, and
// hotels that lose reviews get their rating recomputed.
func (s *AdminService) DeleteUser(ctx context.Context, caller types.Caller, userID uint) error {
	var touched, released []uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := findOr404(tx, &user, userID, "사용자를 찾을 수 없습니다"); err != nil {
			return err
		}
		if user.Role == constants.RoleAdmin || user.ID == caller.ID {
			return apperrors.Forbidden("관리자 계정은 삭제할 수 없습니다")
		}

		var bookings []models.Booking
		if err := tx.Where("user_id = ?", user.ID).Find(&bookings).Error; err != nil {
			return apperrors.Internal(err)
		}
		bookingIDs := make([]uint, 0, len(bookings))
		for i := range bookings {
			b := &bookings[i]
			bookingIDs = append(bookingIDs, b.ID)
			if b.BookingStatus == constants.BookingConfirmed {
				if err := releaseBookingHolds(tx, b, s.logger); err != nil {
					return err
				}
				released = append(released, b.HotelID)
			}
		}
		if len(bookingIDs) > 0 {
			if err := tx.Exec("DELETE FROM booking_coupons WHERE booking_id IN ?", bookingIDs).Error; err != nil {
				return apperrors.Internal(err)
			}
			if err := tx.Where("id IN ?", bookingIDs).Delete(&models.Booking{}).Error; err != nil {
				return apperrors.Internal(err)
			}
		}

		if err := tx.Model(&models.Review{}).Distinct("hotel_id").
			Where("user_id = ?", user.ID).Pluck("hotel_id", &touched).Error; err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Review{}).Error; err != nil {
			return apperrors.Internal(err)
		}
		for _, hotelID := range touched {
			if _, err := lockHotel(tx, hotelID); err != nil {
				if apperrors.Is(err, apperrors.ErrCodeNotFound) {
					continue
				}
				return err
			}
			if _, _, err := RecomputeHotelRating(tx, hotelID); err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Favorite{}).Error; err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Exec("DELETE FROM user_coupons WHERE user_id = ?", user.ID).Error; err != nil {
			return apperrors.Internal(err)
		}

		var owned []uint
		if err := tx.Model(&models.Hotel{}).Where("owner_id = ?", user.ID).Pluck("id", &owned).Error; err != nil {
			return apperrors.Internal(err)
		}
		for _, hotelID := range owned {
			if err := deleteHotelCascade(tx, hotelID); err != nil {
				return err
			}
		}
		touched = append(touched, owned...)

		if err := tx.Delete(&models.User{}, user.ID).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return asAppError(err)
	}
	for _, id := range append(touched, released...) {
		s.cache.InvalidateHotel(ctx, id)
	}
	s.logger.Info("user %d deleted by admin %d", userID, caller.ID)
	return nil
}

// ListBookings is the admin booking list, optionally filtered by booking status.
func (s *AdminService) ListBookings(ctx context.Context, status string, page Page) ([]models.Booking, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Booking{})
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
