package models

import "time"

type PriceAlert struct {
	Enabled      bool       `gorm:"default:false" json:"enabled"`
	TargetPrice  int64      `gorm:"default:0" json:"targetPrice"`
	LastNotified *time.Time `json:"lastNotified,omitempty"`
}

type Favorite struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
	UserID     uint       `gorm:"uniqueIndex:idx_favorite_user_hotel;not null" json:"userId"`
	HotelID    uint       `gorm:"uniqueIndex:idx_favorite_user_hotel;not null" json:"hotelId"`
	Hotel      *Hotel     `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
	PriceAlert PriceAlert `gorm:"embedded;embeddedPrefix:price_alert_" json:"priceAlert"`
}
