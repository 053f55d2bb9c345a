package models

import (
	"time"

	"hotelhub/constants"

	"gorm.io/datatypes"
)

type Hotel struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime" json:"updatedAt"`
	Name        string                      `gorm:"not null" json:"name"`
	Description string                      `json:"description"`
	Address     string                      `json:"address"`
	City        string                      `gorm:"index" json:"city"`
	Country     string                      `json:"country"`
	Latitude    float64                     `json:"latitude"`
	Longitude   float64                     `json:"longitude"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Amenities   datatypes.JSONSlice[string] `json:"amenities"`
	OwnerID     uint                        `gorm:"index;not null" json:"ownerId"`
	Owner       *User                       `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	// Rating and ReviewCount are derived from active reviews.
	Rating      float64               `gorm:"default:0" json:"rating"`
	ReviewCount int                   `gorm:"default:0" json:"reviewCount"`
	Status      constants.HotelStatus `gorm:"type:varchar(16);default:pending;index" json:"status"`
	Rooms       []Room                `gorm:"foreignKey:HotelID" json:"rooms,omitempty"`
}

// HasAmenities reports whether every wanted amenity is offered.
func (h *Hotel) HasAmenities(wanted []string) bool {
	have := make(map[string]struct{}, len(h.Amenities))
	for _, a := range h.Amenities {
		have[a] = struct{}{}
	}
	for _, w := range wanted {
		if _, ok := have[w]; !ok {
			return false
		}
	}
	return true
}
