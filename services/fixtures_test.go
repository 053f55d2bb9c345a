package services

import (
	"testing"
	"time"

	"hotelhub/constants"
	apperrors "hotelhub/errors"
	"hotelhub/models"
	"hotelhub/services/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testNow = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role constants.Role, points int64) *models.User {
	t.Helper()
	u := &models.User{
		Email:    email,
		Password: "x",
		Name:     email,
		Role:     role,
		Points:   points,
	}
	if role == constants.RoleBusiness {
		u.BusinessStatus = constants.BusinessApproved
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedHotel(t *testing.T, db *gorm.DB, owner *models.User, name, city string, amenities ...string) *models.Hotel {
	t.Helper()
	h := &models.Hotel{
		Name:      name,
		City:      city,
		OwnerID:   owner.ID,
		Status:    constants.HotelActive,
		Amenities: amenities,
	}
	if err := db.Create(h).Error; err != nil {
		t.Fatalf("seed hotel: %v", err)
	}
	return h
}

func seedRoom(t *testing.T, db *gorm.DB, hotel *models.Hotel, price int64, total int) *models.Room {
	t.Helper()
	r := &models.Room{
		HotelID:        hotel.ID,
		Name:           "Standard",
		Type:           "standard",
		Price:          price,
		Capacity:       2,
		TotalRooms:     total,
		AvailableRooms: total,
		Status:         constants.RoomAvailable,
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}
	return r
}

func seedCoupon(t *testing.T, db *gorm.DB, code string, typ constants.DiscountType, value int64, limit int) *models.Coupon {
	t.Helper()
	c := &models.Coupon{
		Code:          code,
		Name:          code,
		DiscountType:  typ,
		DiscountValue: value,
		ValidFrom:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:       time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		UsageLimit:    limit,
		Status:        constants.CouponActive,
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed coupon: %v", err)
	}
	return c
}

func reload(t *testing.T, db *gorm.DB, dest interface{}, id uint) {
	t.Helper()
	if err := db.First(dest, id).Error; err != nil {
		t.Fatalf("reload %T %d: %v", dest, id, err)
	}
}

func assertCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if !apperrors.Is(err, code) {
		t.Fatalf("expected %s error, got %v", code, err)
	}
}

func nop() logger.Logger {
	return logger.Nop{}
}
