package dto

type Guests struct {
	Adults   int `json:"adults" binding:"min=0,max=20"`
	Children int `json:"children" binding:"min=0,max=20"`
}

// CreateBookingRequest carries no price fields: prices are computed server-side.
type CreateBookingRequest struct {
	RoomID          uint     `json:"roomId" binding:"required"`
	CheckIn         string   `json:"checkIn" binding:"required"`
	CheckOut        string   `json:"checkOut" binding:"required"`
	Guests          *Guests  `json:"guests"`
	CouponCodes     []string `json:"couponCodes" binding:"omitempty,max=3,dive,couponcode"`
	Points          int64    `json:"points" binding:"min=0"`
	SpecialRequests string   `json:"specialRequests" binding:"max=500"`
}

type ConfirmPaymentRequest struct {
	PaymentKey string `json:"paymentKey" binding:"required"`
	OrderID    string `json:"orderId" binding:"required"`
	Amount     int64  `json:"amount" binding:"required,gt=0"`
}

type CancelPaymentRequest struct {
	PaymentKey   string `json:"paymentKey" binding:"required"`
	CancelReason string `json:"cancelReason" binding:"required,max=200"`
}
