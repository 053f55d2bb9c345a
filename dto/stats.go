package dto

type AdminDashboardStats struct {
	TotalBookings int64 `json:"totalBookings"`
	TotalRevenue  int64 `json:"totalRevenue"`
	TotalBusiness int64 `json:"totalBusiness"`
	TotalHotels   int64 `json:"totalHotels"`
	TotalUsers    int64 `json:"totalUsers"`
}

type BusinessDashboardStats struct {
	TotalBookings int64 `json:"totalBookings"`
	TotalRevenue  int64 `json:"totalRevenue"`
	TotalReviews  int64 `json:"totalReviews"`
	TotalHotels   int64 `json:"totalHotels"`
}

type MonthlyRevenue struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Total int64 `json:"total"`
	Count int   `json:"count"`
}
