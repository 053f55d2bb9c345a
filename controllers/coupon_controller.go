package controllers

import (
	"hotelhub/dto"
	"hotelhub/response"
	"hotelhub/services"

	"github.com/gin-gonic/gin"
)

type CouponController struct {
	Coupons *services.CouponService
}

func NewCouponController(coupons *services.CouponService) CouponController {
	return CouponController{Coupons: coupons}
}

func (cc CouponController) ListActive(c *gin.Context) {
	coupons, err := cc.Coupons.ListActive(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, coupons)
}

// GetByCode looks a coupon up case-insensitively; ineligible coupons are 404.
func (cc CouponController) GetByCode(c *gin.Context) {
	coupon, err := cc.Coupons.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, coupon)
}

func (cc CouponController) ListMine(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	coupons, err := cc.Coupons.ListMine(c.Request.Context(), caller)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, coupons)
}

func (cc CouponController) Claim(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	coupon, err := cc.Coupons.Claim(c.Request.Context(), caller, c.Param("code"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, coupon)
}

func (cc CouponController) Create(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req dto.CreateCouponRequest
	if !bindJSON(c, &req) {
		return
	}
	coupon, err := cc.Coupons.Create(c.Request.Context(), caller, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, coupon)
}

func (cc CouponController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCouponRequest
	if !bindJSON(c, &req) {
		return
	}
	coupon, err := cc.Coupons.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, coupon)
}

func (cc CouponController) Deactivate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := cc.Coupons.Deactivate(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}
