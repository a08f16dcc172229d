package app

import "os"

// Config carries every knob the process needs, loaded once at startup and
// handed to NewServer. Nothing below reads the environment after this.
type Config struct {
	Env  string
	Port string

	DBDriver string // "postgres" or "sqlite"
	DBDSN    string

	JWTSecret string

	PaystackSecret  string
	PaystackBaseURL string

	FrontendURL   string
	PublicBaseURL string
	UploadDir     string
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func LoadConfig() Config {
	return Config{
		Env:             getEnv("APP_ENV", "dev"),
		Port:            getEnv("APP_PORT", "8080"),
		DBDriver:        getEnv("DB_DRIVER", "postgres"),
		DBDSN:           os.Getenv("DB_DSN"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		PaystackSecret:  os.Getenv("PAYSTACK_SECRET"),
		PaystackBaseURL: getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		UploadDir:       getEnv("UPLOAD_DIR", "./uploads"),
	}
}
