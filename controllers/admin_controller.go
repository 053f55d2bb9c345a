package controllers

import (
	"hotelhub/constants"
	"hotelhub/response"
	"hotelhub/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Admin   *services.AdminService
	Hotels  *services.HotelService
	Reviews *services.ReviewService
}

func NewAdminController(admin *services.AdminService, hotels *services.HotelService, reviews *services.ReviewService) AdminController {
	return AdminController{Admin: admin, Hotels: hotels, Reviews: reviews}
}

func (a AdminController) DashboardStats(c *gin.Context) {
	stats, err := a.Admin.DashboardStats(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, stats)
}

func (a AdminController) ListBusinesses(c *gin.Context) {
	users, err := a.Admin.ListBusinesses(c.Request.Context(), c.Query("status"), c.Query("search"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, users)
}

func (a AdminController) setBusinessStatus(status constants.BusinessStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		user, err := a.Admin.SetBusinessStatus(c.Request.Context(), id, status)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, user)
	}
}

func (a AdminController) ApproveBusiness() gin.HandlerFunc {
	return a.setBusinessStatus(constants.BusinessApproved)
}

func (a AdminController) RejectBusiness() gin.HandlerFunc {
	return a.setBusinessStatus(constants.BusinessRejected)
}

func (a AdminController) BlockBusiness() gin.HandlerFunc {
	return a.setBusinessStatus(constants.BusinessBlocked)
}

func (a AdminController) ListUsers(c *gin.Context) {
	page := pageFromQuery(c)
	users, total, err := a.Admin.ListUsers(c.Request.Context(), c.Query("role"), c.Query("search"), page)
	if err != nil {
		response.FromError(c, err)
		return
	}
	paginated(c, users, page, total)
}

func (a AdminController) setBlocked(blocked bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := mustCaller(c)
		if !ok {
			return
		}
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		user, err := a.Admin.SetBlocked(c.Request.Context(), caller, id, blocked)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, user)
	}
}

func (a AdminController) BlockUser() gin.HandlerFunc   { return a.setBlocked(true) }
func (a AdminController) UnblockUser() gin.HandlerFunc { return a.setBlocked(false) }

func (a AdminController) DeleteUser(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := a.Admin.DeleteUser(c.Request.Context(), caller, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

func (a AdminController) ListHotels(c *gin.Context) {
	page := pageFromQuery(c)
	hotels, total, err := a.Hotels.ListAll(c.Request.Context(), c.Query("status"), page)
	if err != nil {
		response.FromError(c, err)
		return
	}
	paginated(c, hotels, page, total)
}

func (a AdminController) setHotelStatus(status constants.HotelStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		hotel, err := a.Hotels.SetStatus(c.Request.Context(), id, status)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, hotel)
	}
}

func (a AdminController) ApproveHotel() gin.HandlerFunc {
	return a.setHotelStatus(constants.HotelActive)
}

func (a AdminController) DeactivateHotel() gin.HandlerFunc {
	return a.setHotelStatus(constants.HotelInactive)
}

func (a AdminController) DeleteHotel(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := a.Hotels.DeleteHotel(c.Request.Context(), caller, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

func (a AdminController) ReportedReviews(c *gin.Context) {
	reviews, err := a.Reviews.ListReported(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, reviews)
}

func (a AdminController) moderate(approve bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		review, err := a.Reviews.Moderate(c.Request.Context(), id, approve)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, review)
	}
}

func (a AdminController) ApproveReport() gin.HandlerFunc { return a.moderate(true) }
func (a AdminController) RejectReport() gin.HandlerFunc  { return a.moderate(false) }

func (a AdminController) ListBookings(c *gin.Context) {
	page := pageFromQuery(c)
	bookings, total, err := a.Admin.ListBookings(c.Request.Context(), c.Query("status"), page)
	if err != nil {
		response.FromError(c, err)
		return
	}
	paginated(c, bookings, page, total)
}
