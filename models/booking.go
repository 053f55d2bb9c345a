package models

import (
	"time"

	"hotelhub/constants"
)

type Booking struct {
	ID              uint                    `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time               `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt       time.Time               `gorm:"autoUpdateTime" json:"updatedAt"`
	UserID          uint                    `gorm:"index;not null" json:"userId"`
	User            *User                   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	HotelID         uint                    `gorm:"index;not null" json:"hotelId"`
	Hotel           *Hotel                  `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
	RoomID          uint                    `gorm:"index;not null" json:"roomId"`
	Room            *Room                   `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	CheckIn         time.Time               `gorm:"not null" json:"checkIn"`
	CheckOut        time.Time               `gorm:"not null" json:"checkOut"`
	Adults          int                     `gorm:"default:2" json:"adults"`
	Children        int                     `gorm:"default:0" json:"children"`
	TotalPrice      int64                   `json:"totalPrice"`
	DiscountAmount  int64                   `json:"discountAmount"`
	FinalPrice      int64                   `json:"finalPrice"`
	Coupons         []Coupon                `gorm:"many2many:booking_coupons" json:"coupons,omitempty"`
	UsedPoints      int64                   `gorm:"default:0" json:"usedPoints"`
	SpecialRequests string                  `json:"specialRequests"`
	PaymentStatus   constants.PaymentStatus `gorm:"type:varchar(16);default:pending;index" json:"paymentStatus"`
	BookingStatus   constants.BookingStatus `gorm:"type:varchar(16);default:confirmed;index" json:"bookingStatus"`
	OrderID         string                  `gorm:"uniqueIndex;not null" json:"orderId"`
	PaymentKey      string                  `gorm:"index" json:"paymentKey,omitempty"`
	PaymentMethod   string                  `json:"paymentMethod,omitempty"`
	CancelledAt     *time.Time              `json:"cancelledAt,omitempty"`
}

// Nights counts started 24h periods between check-in and check-out.
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	n := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		n++
	}
	return n
}
