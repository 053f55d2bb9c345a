package validator

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"hotelhub/constants"
	apperrors "hotelhub/errors"

	"github.com/gin-gonic/gin/binding"
	gpvalidator "github.com/go-playground/validator/v10"
)

var (
	couponCodeRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{3,32}$`)
	phoneRegex      = regexp.MustCompile(`^0[0-9]{8,10}$`)
)

// RegisterBindings adds the custom tags used by request DTOs to gin's validator.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*gpvalidator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("couponcode", func(fl gpvalidator.FieldLevel) bool {
		return IsCouponCode(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("phone", func(fl gpvalidator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
}

func IsCouponCode(s string) bool {
	return couponCodeRegex.MatchString(strings.TrimSpace(s))
}

func IsPhone(s string) bool {
	return phoneRegex.MatchString(strings.ReplaceAll(s, "-", ""))
}

// NormalizeCouponCode trims and upper-cases a code.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate accepts RFC3339 or a plain yyyy-mm-dd date (UTC midnight).
func ParseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.Validation(fmt.Sprintf("%s 날짜 형식이 올바르지 않습니다", field))
}

// ValidateStay requires check-out strictly after check-in.
func ValidateStay(checkIn, checkOut time.Time) error {
	if !checkOut.After(checkIn) {
		return apperrors.Validation("체크아웃 날짜는 체크인 날짜 이후여야 합니다")
	}
	return nil
}

func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return apperrors.Validation("평점은 1에서 5 사이여야 합니다")
	}
	return nil
}

// ValidateCoupon checks a coupon definition before it is stored.
func ValidateCoupon(discountType constants.DiscountType, value int64, validFrom, validTo time.Time, usageLimit int) error {
	switch discountType {
	case constants.DiscountPercentage:
		if value <= 0 || value > 100 {
			return apperrors.Validation("할인율은 1에서 100 사이여야 합니다")
		}
	case constants.DiscountFixed:
		if value <= 0 {
			return apperrors.Validation("할인 금액은 0보다 커야 합니다")
		}
	default:
		return apperrors.Validation("할인 유형이 올바르지 않습니다")
	}
	if !validTo.After(validFrom) {
		return apperrors.Validation("쿠폰 종료일은 시작일 이후여야 합니다")
	}
	if usageLimit < 1 {
		return apperrors.Validation("사용 한도는 1 이상이어야 합니다")
	}
	return nil
}
