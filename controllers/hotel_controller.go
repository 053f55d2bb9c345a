package controllers

import (
	"hotelhub/dto"
	"hotelhub/middleware"
	"hotelhub/response"
	"hotelhub/services"

	"github.com/gin-gonic/gin"
)

type HotelController struct {
	Hotels *services.HotelService
}

func NewHotelController(hotels *services.HotelService) HotelController {
	return HotelController{Hotels: hotels}
}

// Search godoc
// @Summary      Search active hotels
// @Description  Filters by city, amenities (all required), minimum rating and room attributes. q ranks by fuzzy match.
// @Tags         hotels
// @Produce      json
// @Param        city       query  string  false  "city fragment"
// @Param        amenities  query  string  false  "comma separated"
// @Param        rating     query  number  false  "minimum rating"
// @Param        roomType   query  string  false  "room type"
// @Param        guests     query  int     false  "guests per room"
// @Param        q          query  string  false  "free text"
// @Success      200  {object}  response.Response
// @Router       /hotels/search [get]
func (h HotelController) Search(c *gin.Context) {
	var q dto.HotelSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "검색 조건이 올바르지 않습니다")
		return
	}
	hotels, total, err := h.Hotels.Search(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Hotels.SaveLastSearch(c.Request.Context(), middleware.SessionID(c), q)
	paginated(c, hotels, services.Page{Page: q.Page, Limit: q.Limit}, int64(total))
}

// RecentSearch returns the filters of the session's last search.
func (h HotelController) RecentSearch(c *gin.Context) {
	q, ok := h.Hotels.LastSearch(c.Request.Context(), middleware.SessionID(c))
	if !ok {
		response.Success(c, nil)
		return
	}
	response.Success(c, q)
}

func (h HotelController) Featured(c *gin.Context) {
	hotels, err := h.Hotels.Featured(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, hotels)
}

func (h HotelController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	detail, err := h.Hotels.Detail(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, detail)
}

func (h HotelController) Rooms(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	detail, err := h.Hotels.Detail(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, detail.Rooms)
}

func (h HotelController) Room(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	room, err := h.Hotels.GetRoom(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}
