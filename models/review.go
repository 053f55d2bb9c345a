package models

import (
	"time"

	"hotelhub/constants"

	"gorm.io/datatypes"
)

type Review struct {
	ID           uint                        `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time                   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time                   `gorm:"autoUpdateTime" json:"updatedAt"`
	UserID       uint                        `gorm:"index;not null" json:"userId"`
	User         *User                       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	HotelID      uint                        `gorm:"index;not null" json:"hotelId"`
	Hotel        *Hotel                      `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
	BookingID    *uint                       `gorm:"index" json:"bookingId,omitempty"`
	Rating       int                         `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment      string                      `json:"comment"`
	Images       datatypes.JSONSlice[string] `json:"images"`
	Reported     bool                        `gorm:"default:false" json:"reported"`
	ReportReason string                      `json:"reportReason,omitempty"`
	ReportedBy   *uint                       `json:"reportedBy,omitempty"`
	ReportStatus constants.ReportStatus      `gorm:"type:varchar(16);default:''" json:"reportStatus,omitempty"`
	Status       constants.ReviewStatus      `gorm:"type:varchar(16);default:active;index" json:"status"`
}
