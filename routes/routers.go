package routes

import (
	"net/http"
	"time"

	"hotelhub/config"
	"hotelhub/controllers"
	_ "hotelhub/docs"
	"hotelhub/jobs"
	middlewares "hotelhub/middleware"
	"hotelhub/services"
	"hotelhub/services/logger"
	"hotelhub/services/notification"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps is what the HTTP layer needs from main. Gateway, Google and Clock
// default to the production implementations when nil.
type Deps struct {
	Config     *config.Config
	DB         *gorm.DB
	Redis      *redis.Client
	Cloudinary *cloudinary.Cloudinary
	Melody     *melody.Melody
	Logger     logger.Logger
	Gateway    services.Gateway
	Google     services.GoogleVerifier
	Clock      services.Clock
}

// SetupRoutes mounts every route group and returns the price alert job for
// the scheduler.
func SetupRoutes(router *gin.Engine, d Deps) *jobs.PriceAlertJob {
	cfg := d.Config
	log := d.Logger
	cache := services.NewCache(d.Redis, log)

	gateway := d.Gateway
	if gateway == nil {
		gateway = services.NewTossGateway(cfg.TossSecretKey, cfg.TossAPIURL)
	}
	google := d.Google
	if google == nil && cfg.GoogleClientID != "" {
		google = services.NewGoogleVerifier(cfg.GoogleClientID)
	}

	tokens := services.NewTokenService(cfg.SecretKey, cfg.AccessTokenTTL)
	authService := services.NewAuthService(services.AuthServiceOptions{DB: d.DB, Logger: log, Tokens: tokens, Google: google})
	hotelService := services.NewHotelService(services.HotelServiceOptions{DB: d.DB, Logger: log, Cache: cache})
	bookingService := services.NewBookingService(services.BookingServiceOptions{DB: d.DB, Logger: log, Clock: d.Clock, Cache: cache})
	paymentService := services.NewPaymentService(services.PaymentServiceOptions{DB: d.DB, Logger: log, Gateway: gateway})
	reviewService := services.NewReviewService(services.ReviewServiceOptions{DB: d.DB, Logger: log, Cache: cache})
	couponService := services.NewCouponService(services.CouponServiceOptions{DB: d.DB, Logger: log, Clock: d.Clock})
	favoriteService := services.NewFavoriteService(services.FavoriteServiceOptions{DB: d.DB, Logger: log, Clock: d.Clock})
	adminService := services.NewAdminService(services.AdminServiceOptions{DB: d.DB, Logger: log, Cache: cache})
	businessService := services.NewBusinessService(services.BusinessServiceOptions{DB: d.DB, Logger: log})
	uploadService := services.NewUploadService(services.NewCloudinaryStore(d.Cloudinary), log)

	alertJob := &jobs.PriceAlertJob{
		Checker: favoriteService,
		Locker:  cache,
		Logger:  log,
	}
	if d.Melody != nil {
		alertJob.Notifier = notification.NewMelodyService(d.Melody)
	}

	authController := controllers.NewAuthController(authService)
	hotelController := controllers.NewHotelController(hotelService)
	bookingController := controllers.NewBookingController(bookingService)
	paymentController := controllers.NewPaymentController(paymentService)
	reviewController := controllers.NewReviewController(reviewService)
	couponController := controllers.NewCouponController(couponService)
	favoriteController := controllers.NewFavoriteController(favoriteService, alertJob)
	adminController := controllers.NewAdminController(adminService, hotelService, reviewService)
	businessController := controllers.NewBusinessController(businessService, hotelService, reviewService, uploadService)

	authn := middlewares.Authenticate(authService)
	member := middlewares.Authorize(middlewares.AnyMember)

	router.Use(middlewares.SessionMiddleware())

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.POST("/google", authController.Google)
	auth.GET("/me", authn, member, authController.Me)
	auth.PUT("/password", authn, member, authController.ChangePassword)

	hotels := api.Group("/hotels")
	hotels.GET("/search", hotelController.Search)
	hotels.GET("/search/recent", hotelController.RecentSearch)
	hotels.GET("/featured/list", hotelController.Featured)
	hotels.GET("/:id", hotelController.Detail)
	hotels.GET("/:id/rooms", hotelController.Rooms)

	api.GET("/rooms/:id", hotelController.Room)

	bookings := api.Group("/bookings", authn, member)
	bookings.POST("", bookingController.Create)
	bookings.POST("/quote", bookingController.Quote)
	bookings.GET("/my", bookingController.ListMine)
	bookings.GET("/:id", bookingController.Detail)
	bookings.POST("/:id/cancel", bookingController.Cancel)

	reviews := api.Group("/reviews")
	reviews.GET("/hotel/:hotelId", reviewController.ListForHotel)
	reviews.POST("", authn, member, reviewController.Create)
	reviews.PUT("/:id", authn, member, reviewController.Update)
	reviews.DELETE("/:id", authn, member, reviewController.Delete)
	reviews.POST("/:id/report", authn, middlewares.Authorize(middlewares.ApprovedBusiness), reviewController.Report)

	payments := api.Group("/payments", authn, member)
	payments.POST("/confirm", paymentController.Confirm)
	payments.POST("/cancel", paymentController.Cancel)

	admin := middlewares.Authorize(middlewares.AdminOnly)
	coupons := api.Group("/coupons")
	coupons.GET("", couponController.ListActive)
	coupons.GET("/code/:code", couponController.GetByCode)
	coupons.GET("/my", authn, member, couponController.ListMine)
	coupons.POST("/code/:code/claim", authn, member, couponController.Claim)
	coupons.POST("", authn, admin, couponController.Create)
	coupons.PUT("/:id", authn, admin, couponController.Update)
	coupons.DELETE("/:id", authn, admin, couponController.Deactivate)

	favorites := api.Group("/favorites")
	favorites.GET("/check-price-alerts", middlewares.InternalToken(cfg.InternalAPIToken), favoriteController.CheckPriceAlerts)
	favorites.GET("/my", authn, member, favoriteController.ListMine)
	favorites.POST("", authn, member, favoriteController.Add)
	favorites.DELETE("/:hotelId", authn, member, favoriteController.Remove)
	favorites.PUT("/:hotelId/price-alert", authn, member, favoriteController.SetPriceAlert)

	adm := api.Group("/admin", authn, admin)
	adm.GET("/dashboard/stats", adminController.DashboardStats)
	adm.GET("/business", adminController.ListBusinesses)
	adm.PUT("/business/:id/approve", adminController.ApproveBusiness())
	adm.PUT("/business/:id/reject", adminController.RejectBusiness())
	adm.PUT("/business/:id/block", adminController.BlockBusiness())
	adm.GET("/users", adminController.ListUsers)
	adm.PUT("/users/:id/block", adminController.BlockUser())
	adm.PUT("/users/:id/unblock", adminController.UnblockUser())
	adm.DELETE("/users/:id", adminController.DeleteUser)
	adm.GET("/hotels", adminController.ListHotels)
	adm.PUT("/hotels/:id/approve", adminController.ApproveHotel())
	adm.PUT("/hotels/:id/deactivate", adminController.DeactivateHotel())
	adm.DELETE("/hotels/:id", adminController.DeleteHotel)
	adm.GET("/reviews/reported", adminController.ReportedReviews)
	adm.PUT("/reviews/:id/approve", adminController.ApproveReport())
	adm.PUT("/reviews/:id/reject", adminController.RejectReport())
	adm.GET("/bookings", adminController.ListBookings)

	biz := api.Group("/business", authn, middlewares.Authorize(middlewares.ApprovedBusiness))
	biz.GET("/dashboard/stats", businessController.DashboardStats)
	biz.GET("/hotels", businessController.ListHotels)
	biz.POST("/hotels", businessController.CreateHotel)
	biz.PUT("/hotels/:id", businessController.UpdateHotel)
	biz.DELETE("/hotels/:id", businessController.DeleteHotel)
	biz.POST("/hotels/:id/rooms", businessController.CreateRoom)
	biz.GET("/rooms", businessController.ListRooms)
	biz.PUT("/rooms/:id", businessController.UpdateRoom)
	biz.DELETE("/rooms/:id", businessController.DeleteRoom)
	biz.GET("/bookings", businessController.Bookings)
	biz.GET("/reviews", businessController.ListReviews)
	biz.GET("/revenue/monthly", businessController.MonthlyRevenue)
	biz.POST("/uploads", businessController.Upload)

	if d.Melody != nil {
		ws := controllers.NewWSController(authService, d.Melody, log)
		router.GET("/ws", ws.Connect)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "time": time.Now().UTC()})
	})

	return alertJob
}
