package controllers

import (
	"hotelhub/dto"
	"hotelhub/response"
	"hotelhub/services"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) ReviewController {
	return ReviewController{Reviews: reviews}
}

func (r ReviewController) Create(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req dto.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := r.Reviews.Create(c.Request.Context(), caller, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, review)
}

func (r ReviewController) ListForHotel(c *gin.Context) {
	hotelID, ok := paramID(c, "hotelId")
	if !ok {
		return
	}
	reviews, err := r.Reviews.ListForHotel(c.Request.Context(), hotelID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, reviews)
}

func (r ReviewController) Update(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := r.Reviews.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, review)
}

func (r ReviewController) Delete(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := r.Reviews.Delete(c.Request.Context(), caller, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

// Report lets the business owning the hotel flag a review.
func (r ReviewController) Report(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ReportReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := r.Reviews.Report(c.Request.Context(), caller, id, req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, review)
}
