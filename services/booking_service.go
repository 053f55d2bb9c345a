package services

import (
	"context"
	"time"

	"hotelhub/builders"
	"hotelhub/constants"
	apperrors "hotelhub/errors"
	"hotelhub/models"
	"hotelhub/services/logger"
	"hotelhub/types"
	"hotelhub/validator"

	"gorm.io/gorm"
)

type BookingServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
	Clock  Clock
	Cache  *Cache
}

// BookingService owns the booking lifecycle and the room inventory counter.
type BookingService struct {
	db     *gorm.DB
	logger logger.Logger
	now    Clock
	cache  *Cache
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	return &BookingService{
		db:     opts.DB,
		logger: opts.Logger,
		now:    defaultClock(opts.Clock),
		cache:  opts.Cache,
	}
}

type CreateBookingInput struct {
	RoomID          uint
	CheckIn         time.Time
	CheckOut        time.Time
	Adults          int
	Children        int
	CouponCodes     []string
	Points          int64
	SpecialRequests string
}

var errNoInventory = apperrors.Conflict("예약 가능한 객실이 없습니다", apperrors.ErrNoInventory)

// loadBookableRoom returns the room if it and its hotel accept bookings.
func loadBookableRoom(tx *gorm.DB, roomID uint) (*models.Room, error) {
	var room models.Room
	if err := findOr404(tx.Preload("Hotel"), &room, roomID, "객실을 찾을 수 없습니다"); err != nil {
		return nil, err
	}
	if room.Hotel == nil || room.Hotel.Status != constants.HotelActive || !room.Bookable() {
		return nil, errNoInventory
	}
	return &room, nil
}

func (s *BookingService) price(tx *gorm.DB, caller types.Caller, in CreateBookingInput) (*models.Room, []models.Coupon, Quote, error) {
	room, err := loadBookableRoom(tx, in.RoomID)
	if err != nil {
		return nil, nil, Quote{}, err
	}

	var user models.User
	if err := findOr404(tx, &user, caller.ID, "사용자를 찾을 수 없습니다"); err != nil {
		return nil, nil, Quote{}, err
	}

	coupons, err := eligibleCoupons(tx, in.CouponCodes, s.now())
	if err != nil {
		return nil, nil, Quote{}, err
	}

	quote, err := BuildQuote(room.Price, in.CheckIn, in.CheckOut, coupons, in.Points, user.Points)
	if err != nil {
		return nil, nil, Quote{}, err
	}
	return room, coupons, quote, nil
}

// Quote prices a stay without reserving anything.
func (s *BookingService) Quote(ctx context.Context, caller types.Caller, in CreateBookingInput) (Quote, error) {
	if err := validator.ValidateStay(in.CheckIn, in.CheckOut); err != nil {
		return Quote{}, err
	}
	_, _, q, err := s.price(s.db.WithContext(ctx), caller, in)
	return q, err
}

// Create reserves one unit of the room and records the booking. The inventory
// decrement, coupon redemption, points debit and insert commit together.
func (s *BookingService) Create(ctx context.Context, caller types.Caller, in CreateBookingInput) (*models.Booking, error) {
	if err := validator.ValidateStay(in.CheckIn, in.CheckOut); err != nil {
		return nil, err
	}

	var booking *models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, coupons, quote, err := s.price(tx, caller, in)
		if err != nil {
			return err
		}

		if err := reserveUnit(tx, room.ID); err != nil {
			return err
		}

		for _, c := range coupons {
			if err := redeemCoupon(tx, c.ID); err != nil {
				return err
			}
		}

		if quote.PointsUsed > 0 {
			res := tx.Model(&models.User{}).
				Where("id = ? AND points >= ?", caller.ID, quote.PointsUsed).
				Update("points", gorm.Expr("points - ?", quote.PointsUsed))
			if res.Error != nil {
				return apperrors.Internal(res.Error)
			}
			if res.RowsAffected == 0 {
				return apperrors.NewAppError(apperrors.ErrCodeValidation, "보유 포인트가 부족합니다", apperrors.ErrInsufficientPoint)
			}
		}

		booking = builders.NewBookingBuilder().
			WithUser(caller.ID).
			WithRoom(room).
			WithStay(in.CheckIn, in.CheckOut).
			WithGuests(in.Adults, in.Children).
			WithPrice(quote.Total, quote.Discount, quote.Final, quote.PointsUsed).
			WithCoupons(coupons).
			WithSpecialRequests(in.SpecialRequests).
			Build(s.now())

		if err := tx.Omit("Coupons.*").Create(booking).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}

	s.cache.InvalidateHotel(ctx, booking.HotelID)
	s.logger.Info("booking %s created: user=%d room=%d final=%d", booking.OrderID, booking.UserID, booking.RoomID, booking.FinalPrice)
	return booking, nil
}

// Cancel moves a confirmed booking to cancelled and returns what it held:
// one room unit, the points spent and the coupon redemptions. A second
// cancel is rejected.
func (s *BookingService) Cancel(ctx context.Context, caller types.Caller, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findOr404(lockForUpdate(tx), &booking, bookingID, "예약을 찾을 수 없습니다"); err != nil {
			return err
		}
		if booking.UserID != caller.ID {
			return apperrors.Forbidden("본인의 예약만 취소할 수 있습니다")
		}
		if err := models.GetBookingState(booking.BookingStatus).Cancel(&booking); err != nil {
			return err
		}

		now := s.now()
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND booking_status = ?", booking.ID, constants.BookingConfirmed).
			Updates(map[string]interface{}{
				"booking_status": constants.BookingCancelled,
				"cancelled_at":   now,
			})
		if res.Error != nil {
			return apperrors.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("이미 취소된 예약입니다", apperrors.ErrAlreadyCancelled)
		}
		booking.CancelledAt = &now

		return releaseBookingHolds(tx, &booking, s.logger)
	})
	if err != nil {
		return nil, asAppError(err)
	}

	s.cache.InvalidateHotel(ctx, booking.HotelID)
	s.logger.Info("booking %s cancelled by user %d", booking.OrderID, caller.ID)
	return &booking, nil
}

// reserveUnit takes one unit of the room. The decrement is guarded in SQL, so
// a stale in-memory count never oversells.
func reserveUnit(tx *gorm.DB, roomID uint) error {
	res := tx.Model(&models.Room{}).
		Where("id = ? AND available_rooms > 0", roomID).
		Update("available_rooms", gorm.Expr("available_rooms - 1"))
	if res.Error != nil {
		return apperrors.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return errNoInventory
	}
	return nil
}

// releaseBookingHolds gives back the room unit (capped at total), the spent
// points and the coupon redemptions of a booking that just left "confirmed".
func releaseBookingHolds(tx *gorm.DB, b *models.Booking, log logger.Logger) error {
	res := tx.Model(&models.Room{}).
		Where("id = ? AND available_rooms < total_rooms", b.RoomID).
		Update("available_rooms", gorm.Expr("available_rooms + 1"))
	if res.Error != nil {
		return apperrors.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		log.Info("booking %s: room %d already at capacity or gone, inventory unchanged", b.OrderID, b.RoomID)
	}

	if b.UsedPoints > 0 {
		if err := tx.Model(&models.User{}).
			Where("id = ?", b.UserID).
			Update("points", gorm.Expr("points + ?", b.UsedPoints)).Error; err != nil {
			return apperrors.Internal(err)
		}
	}

	var couponIDs []uint
	if err := tx.Table("booking_coupons").Where("booking_id = ?", b.ID).Pluck("coupon_id", &couponIDs).Error; err != nil {
		return apperrors.Internal(err)
	}
	if len(couponIDs) > 0 {
		if err := tx.Model(&models.Coupon{}).
			Where("id IN ? AND used_count > 0", couponIDs).
			Update("used_count", gorm.Expr("used_count - 1")).Error; err != nil {
			return apperrors.Internal(err)
		}
	}
	return nil
}

// Get returns a booking visible to its owner, the hotel's business or an admin.
func (s *BookingService) Get(ctx context.Context, caller types.Caller, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	q := s.db.WithContext(ctx).Preload("Hotel").Preload("Room").Preload("Coupons")
	if err := findOr404(q, &booking, bookingID, "예약을 찾을 수 없습니다"); err != nil {
		return nil, err
	}

	switch {
	case booking.UserID == caller.ID, caller.IsAdmin():
	case caller.Role == constants.RoleBusiness && booking.Hotel != nil && booking.Hotel.OwnerID == caller.ID:
	default:
		return nil, apperrors.Forbidden("이 예약을 조회할 권한이 없습니다")
	}
	return &booking, nil
}

// ListMine returns the caller's bookings, newest first.
func (s *BookingService) ListMine(ctx context.Context, caller types.Caller, page Page) ([]models.Booking, int64, error) {
	var (
		bookings []models.Booking
		total    int64
	)
	q := s.db.WithContext(ctx).Model(&models.Booking{}).Where("user_id = ?", caller.ID).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	if err := page.apply(q).Preload("Hotel").Preload("Room").
		Order("created_at DESC").Order("id DESC").
		Find(&bookings).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return bookings, total, nil
}
