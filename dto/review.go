package dto

type CreateReviewRequest struct {
	HotelID   uint     `json:"hotelId" binding:"required"`
	BookingID *uint    `json:"bookingId"`
	Rating    int      `json:"rating" binding:"required,min=1,max=5"`
	Comment   string   `json:"comment" binding:"max=2000"`
	Images    []string `json:"images" binding:"omitempty,max=10,dive,url"`
}

type UpdateReviewRequest struct {
	Rating  *int     `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string  `json:"comment" binding:"omitempty,max=2000"`
	Images  []string `json:"images" binding:"omitempty,max=10,dive,url"`
}

type ReportReviewRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}
