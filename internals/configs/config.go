package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret string

	// VideoSDK (room provider)
	VideoSDKAPIKey    string
	VideoSDKSecretKey string
	VideoSDKEndpoint  string
	WebhookEndpoint   string

	// Recording storage / CDN
	CDNBaseURL   string
	BucketName   string
	BucketRegion string

	// Institution-local timezone for all timetable math
	ClassTimezone string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] no .env file found, using system ENV")
		}
	}

	JWTSecret = GetEnv("JWT_SECRET")

	VideoSDKAPIKey = GetEnv("VIDEOSDK_API_KEY")
	VideoSDKSecretKey = GetEnv("VIDEOSDK_SECRET_KEY")
	VideoSDKEndpoint = GetEnvOr("VIDEOSDK_API_ENDPOINT", "https://api.videosdk.live/v2")
	WebhookEndpoint = GetEnv("WEBHOOK_ENDPOINT")

	CDNBaseURL = GetEnv("CLOUDFLARE_CDN_URL")
	BucketName = GetEnv("B2_BUCKET_NAME")
	BucketRegion = GetEnv("B2_REGION")

	ClassTimezone = GetEnvOr("CLASS_TIMEZONE", "Asia/Kolkata")

	if JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET is not set")
	}
	if VideoSDKSecretKey == "" {
		log.Println("[WARN] VIDEOSDK_SECRET_KEY is not set, live classes will fail to start")
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func GetEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
