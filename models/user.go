package models

import (
	"time"

	"hotelhub/constants"
)

type User struct {
	ID             uint                     `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time                `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time                `gorm:"autoUpdateTime" json:"updatedAt"`
	Email          string                   `gorm:"uniqueIndex;not null" json:"email"`
	Password       string                   `gorm:"not null" json:"-"`
	Name           string                   `gorm:"not null" json:"name"`
	Phone          string                   `json:"phone"`
	Role           constants.Role           `gorm:"type:varchar(16);default:user;index" json:"role"`
	BusinessStatus constants.BusinessStatus `gorm:"type:varchar(16);default:''" json:"businessStatus,omitempty"`
	Blocked        bool                     `gorm:"default:false" json:"blocked"`
	Points         int64                    `gorm:"default:0;check:points >= 0" json:"points"`
	Coupons        []Coupon                 `gorm:"many2many:user_coupons" json:"coupons,omitempty"`
	Favorites      []Favorite               `gorm:"foreignKey:UserID" json:"favorites,omitempty"`
}

// IsApprovedBusiness reports whether the account may use business routes.
func (u *User) IsApprovedBusiness() bool {
	return u.Role == constants.RoleBusiness && u.BusinessStatus == constants.BusinessApproved
}
