package services

import (
	"fmt"
	"time"

	"hotelhub/constants"
	apperrors "hotelhub/errors"
	"hotelhub/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Quote is the server-side price breakdown of a stay.
type Quote struct {
	Nights         int   `json:"nights"`
	Nightly        int64 `json:"nightly"`
	Total          int64 `json:"totalPrice"`
	CouponDiscount int64 `json:"couponDiscount"`
	PointsUsed     int64 `json:"pointsUsed"`
	Discount       int64 `json:"discountAmount"`
	Final          int64 `json:"finalPrice"`
}

// CouponDiscount returns what the coupon takes off amount. total is the
// pre-discount stay price used for the minimum purchase check.
func CouponDiscount(c *models.Coupon, total, amount int64) (int64, error) {
	if total < c.MinPurchase {
		return 0, apperrors.Validation(fmt.Sprintf("쿠폰 %s은(는) %d원 이상 결제 시 사용할 수 있습니다", c.Code, c.MinPurchase))
	}

	var off decimal.Decimal
	switch c.DiscountType {
	case constants.DiscountPercentage:
		off = decimal.NewFromInt(amount).Mul(decimal.NewFromInt(c.DiscountValue)).Div(hundred).Floor()
		if c.MaxDiscount > 0 {
			off = decimal.Min(off, decimal.NewFromInt(c.MaxDiscount))
		}
	case constants.DiscountFixed:
		off = decimal.NewFromInt(c.DiscountValue)
	default:
		return 0, apperrors.Validation("할인 유형이 올바르지 않습니다")
	}

	off = decimal.Min(off, decimal.NewFromInt(amount))
	if off.IsNegative() {
		return 0, nil
	}
	return off.IntPart(), nil
}

// BuildQuote prices a stay: nightly × nights, coupons applied in order to the
// running amount, then points. Points cannot exceed the balance or what is left.
func BuildQuote(nightly int64, checkIn, checkOut time.Time, coupons []models.Coupon, points, balance int64) (Quote, error) {
	nights := models.Nights(checkIn, checkOut)
	if nights < 1 {
		return Quote{}, apperrors.Validation("체크아웃 날짜는 체크인 날짜 이후여야 합니다")
	}

	total := decimal.NewFromInt(nightly).Mul(decimal.NewFromInt(int64(nights))).IntPart()
	q := Quote{Nights: nights, Nightly: nightly, Total: total}

	remaining := total
	for i := range coupons {
		off, err := CouponDiscount(&coupons[i], total, remaining)
		if err != nil {
			return Quote{}, err
		}
		q.CouponDiscount += off
		remaining -= off
	}

	if points < 0 {
		return Quote{}, apperrors.Validation("포인트는 0 이상이어야 합니다")
	}
	if points > balance {
		return Quote{}, apperrors.NewAppError(apperrors.ErrCodeValidation, "보유 포인트가 부족합니다", apperrors.ErrInsufficientPoint)
	}
	if points > remaining {
		return Quote{}, apperrors.Validation("사용 포인트가 결제 금액을 초과합니다")
	}
	q.PointsUsed = points
	remaining -= points

	q.Discount = q.CouponDiscount + q.PointsUsed
	q.Final = remaining
	return q, nil
}

// AccruedPoints is the loyalty credit for a paid amount, rounded down.
func AccruedPoints(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	return decimal.NewFromInt(amount).Mul(decimal.NewFromInt(constants.PointAccrualPercent)).Div(hundred).Floor().IntPart()
}
