package services

import (
	"context"
	"fmt"

	"hotelhub/constants"
	"hotelhub/dto"
	apperrors "hotelhub/errors"
	"hotelhub/models"
	"hotelhub/services/logger"
	"hotelhub/types"
	"hotelhub/validator"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReviewServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
	Cache  *Cache
}

// ReviewService writes reviews and keeps each hotel's rating in step with
// its active reviews.
type ReviewService struct {
	db     *gorm.DB
	logger logger.Logger
	cache  *Cache
}

func NewReviewService(opts ReviewServiceOptions) *ReviewService {
	return &ReviewService{
		db:     opts.DB,
		logger: opts.Logger,
		cache:  opts.Cache,
	}
}

// withHotelLock runs fn in a transaction holding the hotel's row lock, then
// recomputes the hotel's rating before commit.
func (s *ReviewService) withHotelLock(ctx context.Context, hotelID uint, fn func(tx *gorm.DB) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockHotel(tx, hotelID); err != nil {
			return err
		}
		if err := fn(tx); err != nil {
			return err
		}
		_, _, err := RecomputeHotelRating(tx, hotelID)
		return err
	})
	if err != nil {
		return asAppError(err)
	}
	s.cache.InvalidateHotel(ctx, hotelID)
	return nil
}

func (s *ReviewService) Create(ctx context.Context, caller types.Caller, req dto.CreateReviewRequest) (*models.Review, error) {
	if err := validator.ValidateRating(req.Rating); err != nil {
		return nil, err
	}

	review := &models.Review{
		UserID:    caller.ID,
		HotelID:   req.HotelID,
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Images:    datatypes.JSONSlice[string](req.Images),
		Status:    constants.ReviewActive,
	}

	err := s.withHotelLock(ctx, req.HotelID, func(tx *gorm.DB) error {
		if req.BookingID != nil {
			var booking models.Booking
			if err := findOr404(tx, &booking, *req.BookingID, "예약을 찾을 수 없습니다"); err != nil {
				return err
			}
			if booking.UserID != caller.ID || booking.HotelID != req.HotelID {
				return apperrors.Forbidden("본인의 해당 호텔 예약에만 리뷰를 작성할 수 있습니다")
			}
			var n int64
			if err := tx.Model(&models.Review{}).Where("booking_id = ?", booking.ID).Count(&n).Error; err != nil {
				return apperrors.Internal(err)
			}
			if n > 0 {
				return apperrors.Conflict("이미 리뷰를 작성한 예약입니다", apperrors.ErrAlreadyExists)
			}
		}
		if err := tx.Create(review).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// loadOwnReview fetches a review the caller wrote. Admins may act on any review.
func (s *ReviewService) loadOwnReview(ctx context.Context, caller types.Caller, id uint) (*models.Review, error) {
	var review models.Review
	if err := findOr404(s.db.WithContext(ctx), &review, id, "리뷰를 찾을 수 없습니다"); err != nil {
		return nil, err
	}
	if review.UserID != caller.ID && !caller.IsAdmin() {
		return nil, apperrors.Forbidden("본인의 리뷰만 수정하거나 삭제할 수 있습니다")
	}
	return &review, nil
}

func (s *ReviewService) Update(ctx context.Context, caller types.Caller, id uint, req dto.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.loadOwnReview(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if req.Rating != nil {
		if err := validator.ValidateRating(*req.Rating); err != nil {
			return nil, err
		}
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	if req.Images != nil {
		review.Images = datatypes.JSONSlice[string](req.Images)
	}

	err = s.withHotelLock(ctx, review.HotelID, func(tx *gorm.DB) error {
		if err := tx.Model(review).Select("rating", "comment", "images").Updates(review).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, caller types.Caller, id uint) error {
	review, err := s.loadOwnReview(ctx, caller, id)
	if err != nil {
		return err
	}
	return s.withHotelLock(ctx, review.HotelID, func(tx *gorm.DB) error {
		res := tx.Delete(&models.Review{}, review.ID)
		if res.Error != nil {
			return apperrors.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("리뷰를 찾을 수 없습니다")
		}
		return nil
	})
}

// ListForHotel returns the hotel's active reviews, newest first.
func (s *ReviewService) ListForHotel(ctx context.Context, hotelID uint) ([]models.Review, error) {
	key := fmt.Sprintf(cacheKeyHotelReview, hotelID)
	var reviews []models.Review
	if s.cache.Get(ctx, key, &reviews) {
		return reviews, nil
	}
	if err := s.db.WithContext(ctx).
		Preload("User").
		Where("hotel_id = ? AND status = ?", hotelID, constants.ReviewActive).
		Order("created_at DESC").Order("id DESC").
		Find(&reviews).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	s.cache.Set(ctx, key, reviews, hotelCacheTTL)
	return reviews, nil
}

// Report flags a review for moderation. Only the business owning the
// reviewed hotel may report it.
func (s *ReviewService) Report(ctx context.Context, caller types.Caller, id uint, reason string) (*models.Review, error) {
	var review models.Review
	if err := findOr404(s.db.WithContext(ctx).Preload("Hotel"), &review, id, "리뷰를 찾을 수 없습니다"); err != nil {
		return nil, err
	}
	if review.Hotel == nil || review.Hotel.OwnerID != caller.ID {
		return nil, apperrors.Forbidden("본인 호텔의 리뷰만 신고할 수 있습니다")
	}
	if review.ReportStatus == constants.ReportPending {
		return nil, apperrors.Conflict("이미 신고된 리뷰입니다", apperrors.ErrAlreadyExists)
	}

	reporter := caller.ID
	review.Reported = true
	review.ReportReason = reason
	review.ReportedBy = &reporter
	review.ReportStatus = constants.ReportPending
	if err := s.db.WithContext(ctx).Model(&review).
		Select("reported", "report_reason", "reported_by", "report_status").
		Updates(&review).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	s.logger.Info("review %d reported by business %d", review.ID, caller.ID)
	return &review, nil
}

// ListReported returns reviews awaiting a moderation decision.
func (s *ReviewService) ListReported(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.WithContext(ctx).
		Preload("User").Preload("Hotel").
		Where("reported = ? AND report_status = ?", true, constants.ReportPending).
		Order("updated_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return reviews, nil
}

// Moderate resolves a pending report. Approving hides the review and the
// hotel rating is recomputed without it; rejecting keeps it visible.
func (s *ReviewService) Moderate(ctx context.Context, id uint, approve bool) (*models.Review, error) {
	var review models.Review
	if err := findOr404(s.db.WithContext(ctx), &review, id, "리뷰를 찾을 수 없습니다"); err != nil {
		return nil, err
	}
	if review.ReportStatus != constants.ReportPending {
		return nil, apperrors.Conflict("처리 대기 중인 신고가 아닙니다", apperrors.ErrInvalidTransition)
	}

	updates := map[string]interface{}{"report_status": constants.ReportRejected}
	if approve {
		updates = map[string]interface{}{
			"report_status": constants.ReportApproved,
			"status":        constants.ReviewHidden,
		}
	}

	err := s.withHotelLock(ctx, review.HotelID, func(tx *gorm.DB) error {
		res := tx.Model(&models.Review{}).
			Where("id = ? AND report_status = ?", review.ID, constants.ReportPending).
			Updates(updates)
		if res.Error != nil {
			return apperrors.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("처리 대기 중인 신고가 아닙니다", apperrors.ErrInvalidTransition)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if approve {
		review.ReportStatus = constants.ReportApproved
		review.Status = constants.ReviewHidden
	} else {
		review.ReportStatus = constants.ReportRejected
	}
	return &review, nil
}

// ListForOwner returns every review on hotels owned by the business.
func (s *ReviewService) ListForOwner(ctx context.Context, ownerID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.WithContext(ctx).
		Preload("User").Preload("Hotel").
		Joins("JOIN hotels ON hotels.id = reviews.hotel_id").
		Where("hotels.owner_id = ?", ownerID).
		Order("reviews.created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return reviews, nil
}
