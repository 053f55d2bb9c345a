package builders

import (
	"fmt"
	"strings"
	"time"

	"hotelhub/constants"
	"hotelhub/models"

	"github.com/google/uuid"
)

// BookingBuilder assembles a new confirmed booking step by step.
type BookingBuilder struct {
	booking *models.Booking
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{
			Adults:        constants.DefaultAdults,
			BookingStatus: constants.BookingConfirmed,
			PaymentStatus: constants.PaymentPending,
		},
	}
}

func (b *BookingBuilder) WithUser(userID uint) *BookingBuilder {
	b.booking.UserID = userID
	return b
}

func (b *BookingBuilder) WithRoom(room *models.Room) *BookingBuilder {
	b.booking.RoomID = room.ID
	b.booking.HotelID = room.HotelID
	return b
}

func (b *BookingBuilder) WithStay(checkIn, checkOut time.Time) *BookingBuilder {
	b.booking.CheckIn = checkIn
	b.booking.CheckOut = checkOut
	return b
}

// WithGuests keeps the default of two adults when adults is zero.
func (b *BookingBuilder) WithGuests(adults, children int) *BookingBuilder {
	if adults > 0 {
		b.booking.Adults = adults
	}
	b.booking.Children = children
	return b
}

func (b *BookingBuilder) WithPrice(total, discount, final, usedPoints int64) *BookingBuilder {
	b.booking.TotalPrice = total
	b.booking.DiscountAmount = discount
	b.booking.FinalPrice = final
	b.booking.UsedPoints = usedPoints
	return b
}

func (b *BookingBuilder) WithCoupons(coupons []models.Coupon) *BookingBuilder {
	b.booking.Coupons = coupons
	return b
}

func (b *BookingBuilder) WithSpecialRequests(s string) *BookingBuilder {
	b.booking.SpecialRequests = strings.TrimSpace(s)
	return b
}

// Build stamps a unique order id used as the payment correlation key.
func (b *BookingBuilder) Build(now time.Time) *models.Booking {
	b.booking.OrderID = NewOrderID(now, b.booking.UserID)
	return b.booking
}

// NewOrderID returns ORDER_<unix ms>_<user id>_<random suffix>.
func NewOrderID(now time.Time, userID uint) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("ORDER_%d_%d_%s", now.UnixMilli(), userID, suffix)
}
