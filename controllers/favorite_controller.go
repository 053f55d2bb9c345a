package controllers

import (
	"hotelhub/dto"
	"hotelhub/jobs"
	"hotelhub/response"
	"hotelhub/services"

	"github.com/gin-gonic/gin"
)

type FavoriteController struct {
	Favorites *services.FavoriteService
	Alerts    *jobs.PriceAlertJob
}

func NewFavoriteController(favorites *services.FavoriteService, alerts *jobs.PriceAlertJob) FavoriteController {
	return FavoriteController{Favorites: favorites, Alerts: alerts}
}

func (f FavoriteController) ListMine(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	favorites, err := f.Favorites.ListMine(c.Request.Context(), caller)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, favorites)
}

func (f FavoriteController) Add(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req dto.AddFavoriteRequest
	if !bindJSON(c, &req) {
		return
	}
	fav, err := f.Favorites.Add(c.Request.Context(), caller, req.HotelID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, fav)
}

func (f FavoriteController) Remove(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	hotelID, ok := paramID(c, "hotelId")
	if !ok {
		return
	}
	if err := f.Favorites.Remove(c.Request.Context(), caller, hotelID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

func (f FavoriteController) SetPriceAlert(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	hotelID, ok := paramID(c, "hotelId")
	if !ok {
		return
	}
	var req dto.PriceAlertRequest
	if !bindJSON(c, &req) {
		return
	}
	fav, err := f.Favorites.SetPriceAlert(c.Request.Context(), caller, hotelID, *req.Enabled, req.TargetPrice)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, fav)
}

// CheckPriceAlerts runs one alert pass on demand. Fired alerts are pushed to
// their users and returned.
func (f FavoriteController) CheckPriceAlerts(c *gin.Context) {
	alerts, err := f.Favorites.CheckPriceAlerts(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	if f.Alerts != nil {
		f.Alerts.Deliver(alerts)
	}
	if alerts == nil {
		alerts = []dto.PriceAlert{}
	}
	response.Success(c, alerts)
}
