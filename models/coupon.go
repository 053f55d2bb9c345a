package models

import (
	"time"

	"hotelhub/constants"
)

type Coupon struct {
	ID            uint                   `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time              `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time              `gorm:"autoUpdateTime" json:"updatedAt"`
	Code          string                 `gorm:"uniqueIndex;not null" json:"code"`
	Name          string                 `gorm:"not null" json:"name"`
	Description   string                 `json:"description"`
	DiscountType  constants.DiscountType `gorm:"type:varchar(16);not null" json:"discountType"`
	DiscountValue int64                  `gorm:"not null" json:"discountValue"`
	MinPurchase   int64                  `gorm:"default:0" json:"minPurchase"`
	// MaxDiscount caps percentage discounts; 0 means no cap.
	MaxDiscount int64                  `gorm:"default:0" json:"maxDiscount"`
	ValidFrom   time.Time              `gorm:"not null" json:"validFrom"`
	ValidTo     time.Time              `gorm:"not null" json:"validTo"`
	UsageLimit  int                    `gorm:"default:1" json:"usageLimit"`
	UsedCount   int                    `gorm:"default:0" json:"usedCount"`
	Status      constants.CouponStatus `gorm:"type:varchar(16);default:active;index" json:"status"`
	CreatedByID uint                   `json:"createdBy"`
}

// Eligible reports whether the coupon is active and inside its validity window.
func (c *Coupon) Eligible(now time.Time) bool {
	return c.Status == constants.CouponActive && !now.Before(c.ValidFrom) && !now.After(c.ValidTo)
}
