package services

import (
	"context"
	"errors"
	"time"

	"hotelhub/constants"
	"hotelhub/dto"
	apperrors "hotelhub/errors"
	"hotelhub/models"
	"hotelhub/services/logger"
	"hotelhub/types"
	"hotelhub/validator"

	"gorm.io/gorm"
)

type CouponServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
	Clock  Clock
}

type CouponService struct {
	db     *gorm.DB
	logger logger.Logger
	now    Clock
}

func NewCouponService(opts CouponServiceOptions) *CouponService {
	return &CouponService{
		db:     opts.DB,
		logger: opts.Logger,
		now:    defaultClock(opts.Clock),
	}
}

// whereEligible restricts a query to coupons usable at now.
func whereEligible(tx *gorm.DB, now time.Time) *gorm.DB {
	return tx.Where("status = ? AND valid_from <= ? AND valid_to >= ?", constants.CouponActive, now.UTC(), now.UTC())
}

// eligibleCoupons resolves codes case-insensitively, dropping duplicates.
// Any unknown, ineligible or exhausted code fails the whole set.
func eligibleCoupons(tx *gorm.DB, codes []string, now time.Time) ([]models.Coupon, error) {
	seen := make(map[string]struct{}, len(codes))
	coupons := make([]models.Coupon, 0, len(codes))
	for _, raw := range codes {
		code := validator.NormalizeCouponCode(raw)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}

		var c models.Coupon
		err := tx.Where("code = ?", code).First(&c).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("쿠폰을 찾을 수 없습니다: " + code)
		}
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if !c.Eligible(now) {
			return nil, apperrors.Validation("사용할 수 없는 쿠폰입니다: " + code)
		}
		if c.UsedCount >= c.UsageLimit {
			return nil, apperrors.Conflict("쿠폰 사용 한도를 초과했습니다: "+code, apperrors.ErrCouponExhausted)
		}
		coupons = append(coupons, c)
	}
	return coupons, nil
}

// redeemCoupon counts one use, refusing once the limit is reached.
func redeemCoupon(tx *gorm.DB, couponID uint) error {
	res := tx.Model(&models.Coupon{}).
		Where("id = ? AND used_count < usage_limit AND status = ?", couponID, constants.CouponActive).
		Update("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return apperrors.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.Conflict("쿠폰 사용 한도를 초과했습니다", apperrors.ErrCouponExhausted)
	}
	return nil
}

// ListActive returns coupons that are active and inside their validity window.
func (s *CouponService) ListActive(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := whereEligible(s.db.WithContext(ctx), s.now()).
		Order("valid_to ASC").Find(&coupons).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return coupons, nil
}

// GetByCode looks a coupon up case-insensitively. Ineligible coupons are
// reported as not found.
func (s *CouponService) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	err := whereEligible(s.db.WithContext(ctx), s.now()).
		Where("code = ?", validator.NormalizeCouponCode(code)).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("유효한 쿠폰을 찾을 수 없습니다")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &c, nil
}

func (s *CouponService) Create(ctx context.Context, caller types.Caller, req dto.CreateCouponRequest) (*models.Coupon, error) {
	if req.UsageLimit == 0 {
		req.UsageLimit = 1
	}
	discountType := constants.DiscountType(req.DiscountType)
	if err := validator.ValidateCoupon(discountType, req.DiscountValue, req.ValidFrom, req.ValidTo, req.UsageLimit); err != nil {
		return nil, err
	}

	coupon := &models.Coupon{
		Code:          validator.NormalizeCouponCode(req.Code),
		Name:          req.Name,
		Description:   req.Description,
		DiscountType:  discountType,
		DiscountValue: req.DiscountValue,
		MinPurchase:   req.MinPurchase,
		MaxDiscount:   req.MaxDiscount,
		ValidFrom:     req.ValidFrom.UTC(),
		ValidTo:       req.ValidTo.UTC(),
		UsageLimit:    req.UsageLimit,
		Status:        constants.CouponActive,
		CreatedByID:   caller.ID,
	}

	var exists int64
	if err := s.db.WithContext(ctx).Model(&models.Coupon{}).Where("code = ?", coupon.Code).Count(&exists).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if exists > 0 {
		return nil, apperrors.Conflict("이미 존재하는 쿠폰 코드입니다", apperrors.ErrAlreadyExists)
	}
	if err := s.db.WithContext(ctx).Create(coupon).Error; err != nil {
		if isDuplicate(err) {
			return nil, apperrors.Conflict("이미 존재하는 쿠폰 코드입니다", apperrors.ErrAlreadyExists)
		}
		return nil, apperrors.Internal(err)
	}
	s.logger.Info("coupon %s created by %d", coupon.Code, caller.ID)
	return coupon, nil
}

func (s *CouponService) Update(ctx context.Context, id uint, req dto.UpdateCouponRequest) (*models.Coupon, error) {
	var c models.Coupon
	if err := findOr404(s.db.WithContext(ctx), &c, id, "쿠폰을 찾을 수 없습니다"); err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.DiscountType != nil {
		c.DiscountType = constants.DiscountType(*req.DiscountType)
	}
	if req.DiscountValue != nil {
		c.DiscountValue = *req.DiscountValue
	}
	if req.MinPurchase != nil {
		c.MinPurchase = *req.MinPurchase
	}
	if req.MaxDiscount != nil {
		c.MaxDiscount = *req.MaxDiscount
	}
	if req.ValidFrom != nil {
		c.ValidFrom = req.ValidFrom.UTC()
	}
	if req.ValidTo != nil {
		c.ValidTo = req.ValidTo.UTC()
	}
	if req.UsageLimit != nil {
		c.UsageLimit = *req.UsageLimit
	}
	if req.Status != nil {
		c.Status = constants.CouponStatus(*req.Status)
	}
	if err := validator.ValidateCoupon(c.DiscountType, c.DiscountValue, c.ValidFrom, c.ValidTo, c.UsageLimit); err != nil {
		return nil, err
	}

	// used_count is owned by redemption and is never written here
	if err := s.db.WithContext(ctx).Model(&c).Select(
		"name", "description", "discount_type", "discount_value", "min_purchase",
		"max_discount", "valid_from", "valid_to", "usage_limit", "status",
	).Updates(&c).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return &c, nil
}

// Deactivate marks a coupon inactive; coupons are never hard-deleted.
func (s *CouponService) Deactivate(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&models.Coupon{}).Where("id = ?", id).Update("status", constants.CouponInactive)
	if res.Error != nil {
		return apperrors.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("쿠폰을 찾을 수 없습니다")
	}
	return nil
}

// Claim adds an eligible coupon to the caller's wallet.
func (s *CouponService) Claim(ctx context.Context, caller types.Caller, code string) (*models.Coupon, error) {
	c, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	user := models.User{ID: caller.ID}
	var owned int64
	if err := s.db.WithContext(ctx).Table("user_coupons").
		Where("user_id = ? AND coupon_id = ?", caller.ID, c.ID).Count(&owned).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if owned > 0 {
		return nil, apperrors.Conflict("이미 보유한 쿠폰입니다", apperrors.ErrAlreadyExists)
	}
	if err := s.db.WithContext(ctx).Model(&user).Omit("Coupons.*").Association("Coupons").Append(c); err != nil {
		return nil, apperrors.Internal(err)
	}
	return c, nil
}

// ListMine returns the caller's wallet.
func (s *CouponService) ListMine(ctx context.Context, caller types.Caller) ([]models.Coupon, error) {
	var coupons []models.Coupon
	user := models.User{ID: caller.ID}
	if err := s.db.WithContext(ctx).Model(&user).Association("Coupons").Find(&coupons); err != nil {
		return nil, apperrors.Internal(err)
	}
	return coupons, nil
}
