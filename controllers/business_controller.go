package controllers

import (
	"hotelhub/dto"
	"hotelhub/response"
	"hotelhub/services"

	"github.com/gin-gonic/gin"
)

type BusinessController struct {
	Business *services.BusinessService
	Hotels   *services.HotelService
	Reviews  *services.ReviewService
	Uploads  *services.UploadService
}

func NewBusinessController(business *services.BusinessService, hotels *services.HotelService, reviews *services.ReviewService, uploads *services.UploadService) BusinessController {
	return BusinessController{Business: business, Hotels: hotels, Reviews: reviews, Uploads: uploads}
}

func (b BusinessController) DashboardStats(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	stats, err := b.Business.DashboardStats(c.Request.Context(), caller)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, stats)
}

func (b BusinessController) ListHotels(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	hotels, err := b.Hotels.ListOwned(c.Request.Context(), caller)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, hotels)
}

func (b BusinessController) CreateHotel(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req dto.HotelRequest
	if !bindJSON(c, &req) {
		return
	}
	hotel, err := b.Hotels.CreateHotel(c.Request.Context(), caller, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, hotel)
}

func (b BusinessController) UpdateHotel(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.HotelRequest
	if !bindJSON(c, &req) {
		return
	}
	hotel, err := b.Hotels.UpdateHotel(c.Request.Context(), caller, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, hotel)
}

func (b BusinessController) DeleteHotel(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := b.Hotels.DeleteHotel(c.Request.Context(), caller, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

func (b BusinessController) CreateRoom(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	hotelID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.RoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := b.Hotels.CreateRoom(c.Request.Context(), caller, hotelID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, room)
}

func (b BusinessController) ListRooms(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	rooms, err := b.Hotels.ListOwnedRooms(c.Request.Context(), caller)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, rooms)
}

func (b BusinessController) UpdateRoom(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.RoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := b.Hotels.UpdateRoom(c.Request.Context(), caller, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

func (b BusinessController) DeleteRoom(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := b.Hotels.DeleteRoom(c.Request.Context(), caller, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

func (b BusinessController) Bookings(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	page := pageFromQuery(c)
	bookings, total, err := b.Business.Bookings(c.Request.Context(), caller, c.Query("status"), page)
	if err != nil {
		response.FromError(c, err)
		return
	}
	paginated(c, bookings, page, total)
}

func (b BusinessController) ListReviews(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	reviews, err := b.Reviews.ListForOwner(c.Request.Context(), caller.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, reviews)
}

func (b BusinessController) MonthlyRevenue(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	revenue, err := b.Business.MonthlyRevenue(c.Request.Context(), caller)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, revenue)
}

// Upload accepts multipart "files" and returns the stored image URLs.
func (b BusinessController) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "업로드할 파일이 없습니다")
		return
	}
	urls, err := b.Uploads.UploadImages(c.Request.Context(), form.File["files"])
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"urls": urls})
}
