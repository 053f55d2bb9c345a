package dto

type AddFavoriteRequest struct {
	HotelID uint `json:"hotelId" binding:"required"`
}

type PriceAlertRequest struct {
	Enabled     *bool `json:"enabled" binding:"required"`
	TargetPrice int64 `json:"targetPrice" binding:"min=0"`
}

// PriceAlert is one triggered alert delivered to a user.
type PriceAlert struct {
	UserID       uint   `json:"userId"`
	HotelID      uint   `json:"hotelId"`
	HotelName    string `json:"hotelName"`
	CurrentPrice int64  `json:"currentPrice"`
	TargetPrice  int64  `json:"targetPrice"`
}
