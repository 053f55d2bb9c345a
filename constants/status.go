package constants

// Role is the account role.
type Role string

const (
	RoleUser     Role = "user"
	RoleBusiness Role = "business"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleBusiness, RoleAdmin:
		return true
	}
	return false
}

// BusinessStatus is empty for non-business accounts.
type BusinessStatus string

const (
	BusinessNone     BusinessStatus = ""
	BusinessPending  BusinessStatus = "pending"
	BusinessApproved BusinessStatus = "approved"
	BusinessRejected BusinessStatus = "rejected"
	BusinessBlocked  BusinessStatus = "blocked"
)

type HotelStatus string

const (
	HotelPending  HotelStatus = "pending"
	HotelActive   HotelStatus = "active"
	HotelInactive HotelStatus = "inactive"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomUnavailable RoomStatus = "unavailable"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type ReviewStatus string

const (
	ReviewActive ReviewStatus = "active"
	ReviewHidden ReviewStatus = "hidden"
)

// ReportStatus is empty until a review is reported.
type ReportStatus string

const (
	ReportNone     ReportStatus = ""
	ReportPending  ReportStatus = "pending"
	ReportApproved ReportStatus = "approved"
	ReportRejected ReportStatus = "rejected"
)

type CouponStatus string

const (
	CouponActive   CouponStatus = "active"
	CouponInactive CouponStatus = "inactive"
	CouponExpired  CouponStatus = "expired"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

const (
	// PointAccrualPercent is the share of a paid amount credited as points.
	PointAccrualPercent = 1
	FeaturedHotelLimit  = 8
	MonthlyRevenueLimit = 12
	DefaultAdults       = 2
)
