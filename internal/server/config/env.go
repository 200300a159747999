package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config values from environment variables. A local .env
// file is loaded first when present; real environment variables win over the
// file (godotenv does not override existing variables).
//
// The behavioral knobs the service contract requires to be configurable
// without code changes live here:
//
//	EMAIL_OTP_LENGTH       — digits in the verification code
//	EMAIL_OTP_TTL_SECONDS  — verification code lifetime
//	MAIL_BACKEND           — "smtp" or "console"
//	SMTP_ADDR / SMTP_FROM  — mail transport target
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	setString("ADDRESS", &config.EndpointAddr)
	setString("BASE_URL", &config.BaseURL)
	setString("DATABASE_DSN", &config.DatabaseDSN)
	setString("REDIS_ADDR", &config.RedisAddr)
	setString("SECRET_KEY", &config.SecretKey)
	setString("MAIL_BACKEND", &config.MailBackend)
	setString("SMTP_ADDR", &config.SMTPAddr)
	setString("SMTP_FROM", &config.SMTPFrom)
	setString("S3_ROOT_USER", &config.S3RootUser)
	setString("S3_ROOT_PASSWORD", &config.S3RootPassword)
	setString("S3_BUCKET", &config.S3Bucket)
	setString("S3_REGION", &config.S3Region)
	setString("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)

	if v, ok := os.LookupEnv("EMAIL_OTP_LENGTH"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.OTPLength = n
		}
	}
	if v, ok := os.LookupEnv("EMAIL_OTP_TTL_SECONDS"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.OTPTTL = time.Duration(n) * time.Second
		}
	}
}
