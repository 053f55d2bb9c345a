package dto

import "time"

type CreateCouponRequest struct {
	Code          string    `json:"code" binding:"required,couponcode"`
	Name          string    `json:"name" binding:"required,max=100"`
	Description   string    `json:"description" binding:"max=500"`
	DiscountType  string    `json:"discountType" binding:"required,oneof=percentage fixed"`
	DiscountValue int64     `json:"discountValue" binding:"required,gt=0"`
	MinPurchase   int64     `json:"minPurchase" binding:"min=0"`
	MaxDiscount   int64     `json:"maxDiscount" binding:"min=0"`
	ValidFrom     time.Time `json:"validFrom" binding:"required"`
	ValidTo       time.Time `json:"validTo" binding:"required"`
	UsageLimit    int       `json:"usageLimit" binding:"omitempty,min=1"`
}

type UpdateCouponRequest struct {
	Name          *string    `json:"name" binding:"omitempty,max=100"`
	Description   *string    `json:"description" binding:"omitempty,max=500"`
	DiscountType  *string    `json:"discountType" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue *int64     `json:"discountValue" binding:"omitempty,gt=0"`
	MinPurchase   *int64     `json:"minPurchase" binding:"omitempty,min=0"`
	MaxDiscount   *int64     `json:"maxDiscount" binding:"omitempty,min=0"`
	ValidFrom     *time.Time `json:"validFrom"`
	ValidTo       *time.Time `json:"validTo"`
	UsageLimit    *int       `json:"usageLimit" binding:"omitempty,min=1"`
	Status        *string    `json:"status" binding:"omitempty,oneof=active inactive expired"`
}
