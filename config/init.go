package config

import (
	"log"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// InitApp builds the router with CORS, the websocket hub and the scheduler.
func InitApp(cfg *Config) (*gin.Engine, *melody.Melody, *cron.Cron) {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	configCors := cors.DefaultConfig()
	configCors.AllowOrigins = []string{cfg.FrontOrigin}
	configCors.AddAllowHeaders("Authorization", "X-Session-ID")
	configCors.AddExposeHeaders("X-Session-ID")
	configCors.AllowCredentials = true
	configCors.MaxAge = 12 * time.Hour
	router.Use(cors.New(configCors))

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Printf("Warning: SetTrustedProxies: %v", err)
	}

	m := melody.New()
	c := cron.New()

	return router, m, c
}

// ConnectCloudinary returns nil when CLOUDINARY_URL is unset.
func ConnectCloudinary(cfg *Config) (*cloudinary.Cloudinary, error) {
	if cfg.CloudinaryURL == "" {
		log.Println("CLOUDINARY_URL not set, uploads disabled")
		return nil, nil
	}
	return cloudinary.NewFromURL(cfg.CloudinaryURL)
}
