package models

import (
	"time"

	"hotelhub/constants"

	"gorm.io/datatypes"
)

// Room is a room type of a hotel. AvailableRooms stays within [0, TotalRooms].
type Room struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time                   `gorm:"autoUpdateTime" json:"updatedAt"`
	HotelID        uint                        `gorm:"index;not null" json:"hotelId"`
	Hotel          *Hotel                      `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
	Name           string                      `gorm:"not null" json:"name"`
	Type           string                      `json:"type"`
	BedType        string                      `json:"bedType"`
	ViewType       string                      `json:"viewType"`
	Description    string                      `json:"description"`
	Price          int64                       `gorm:"not null" json:"price"`
	Capacity       int                         `gorm:"default:2" json:"capacity"`
	TotalRooms     int                         `gorm:"not null" json:"totalRooms"`
	AvailableRooms int                         `gorm:"not null;check:available_rooms >= 0" json:"availableRooms"`
	Status         constants.RoomStatus        `gorm:"type:varchar(16);default:available" json:"status"`
	Images         datatypes.JSONSlice[string] `json:"images"`
}

func (r *Room) Bookable() bool {
	return r.Status == constants.RoomAvailable && r.AvailableRooms > 0
}
