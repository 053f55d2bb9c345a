package dto

import (
	"hotelhub/constants"
	"hotelhub/models"
)

// HotelSearchQuery is bound from the query string.
type HotelSearchQuery struct {
	City      string   `form:"city" json:"city,omitempty"`
	Amenities []string `form:"amenities" json:"amenities,omitempty"`
	Rating    float64  `form:"rating" json:"rating,omitempty" binding:"min=0,max=5"`
	RoomType  string   `form:"roomType" json:"roomType,omitempty"`
	BedType   string   `form:"bedType" json:"bedType,omitempty"`
	ViewType  string   `form:"viewType" json:"viewType,omitempty"`
	Guests    int      `form:"guests" json:"guests,omitempty" binding:"min=0"`
	Q         string   `form:"q" json:"q,omitempty" binding:"max=100"`
	Page      int      `form:"page" json:"-"`
	Limit     int      `form:"limit" json:"-"`
}

// HotelSummary is a flat list view of a hotel. It carries no relations so
// it can be cached as is.
type HotelSummary struct {
	ID          uint                  `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Address     string                `json:"address"`
	City        string                `json:"city"`
	Country     string                `json:"country"`
	Latitude    float64               `json:"latitude"`
	Longitude   float64               `json:"longitude"`
	Images      []string              `json:"images"`
	Amenities   []string              `json:"amenities"`
	OwnerID     uint                  `json:"ownerId"`
	Rating      float64               `json:"rating"`
	ReviewCount int                   `json:"reviewCount"`
	Status      constants.HotelStatus `json:"status"`
	MinPrice    *int64                `json:"minPrice"`
	// Score ranks free-text matches; zero when no query was given.
	Score int `json:"score,omitempty"`
}

func NewHotelSummary(h models.Hotel, minPrice *int64) HotelSummary {
	return HotelSummary{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		Address:     h.Address,
		City:        h.City,
		Country:     h.Country,
		Latitude:    h.Latitude,
		Longitude:   h.Longitude,
		Images:      []string(h.Images),
		Amenities:   []string(h.Amenities),
		OwnerID:     h.OwnerID,
		Rating:      h.Rating,
		ReviewCount: h.ReviewCount,
		Status:      h.Status,
		MinPrice:    minPrice,
	}
}

type HotelDetail struct {
	Hotel models.Hotel  `json:"hotel"`
	Rooms []models.Room `json:"rooms"`
}

type HotelRequest struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=5000"`
	Address     string   `json:"address" binding:"required,max=300"`
	City        string   `json:"city" binding:"required,max=100"`
	Country     string   `json:"country" binding:"max=100"`
	Latitude    float64  `json:"latitude" binding:"min=-90,max=90"`
	Longitude   float64  `json:"longitude" binding:"min=-180,max=180"`
	Images      []string `json:"images" binding:"omitempty,max=20,dive,url"`
	Amenities   []string `json:"amenities" binding:"omitempty,max=50,dive,max=50"`
}

type RoomRequest struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Type        string   `json:"type" binding:"required,max=50"`
	BedType     string   `json:"bedType" binding:"max=50"`
	ViewType    string   `json:"viewType" binding:"max=50"`
	Description string   `json:"description" binding:"max=2000"`
	Price       int64    `json:"price" binding:"required,gt=0"`
	Capacity    int      `json:"capacity" binding:"required,min=1,max=20"`
	TotalRooms  int      `json:"totalRooms" binding:"required,min=1,max=10000"`
	Status      string   `json:"status" binding:"omitempty,oneof=available unavailable"`
	Images      []string `json:"images" binding:"omitempty,max=20,dive,url"`
}
