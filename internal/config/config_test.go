// AngelaMos | 2026
// config_test.go

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{Environment: "development"},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{URL: "postgres://localhost/truyenhub"},
		Redis:    RedisConfig{URL: "redis://localhost:6379"},
		JWT: JWTConfig{
			PrivateKeyPath:    "keys/private.pem",
			PublicKeyPath:     "keys/public.pem",
			AccessTokenExpire: time.Hour,
		},
		OTP: OTPConfig{Expire: 10 * time.Minute},
		CORS: CORSConfig{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowCredentials: true,
		},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validate(validConfig()))
}

func TestValidateMissingDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.Database.URL = ""
	assert.ErrorContains(t, validate(cfg), "DATABASE_URL")
}

func TestValidateMissingRedisURL(t *testing.T) {
	cfg := validConfig()
	cfg.Redis.URL = ""
	assert.ErrorContains(t, validate(cfg), "REDIS_URL")
}

func TestValidateZeroOTPExpire(t *testing.T) {
	cfg := validConfig()
	cfg.OTP.Expire = 0
	assert.ErrorContains(t, validate(cfg), "otp.expire")
}

func TestValidateWildcardOriginWithCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.CORS.AllowedOrigins = []string{"*"}
	assert.ErrorContains(t, validate(cfg), "wildcard")
}

func TestValidateProductionRequirements(t *testing.T) {
	cfg := validConfig()
	cfg.App.Environment = "production"
	cfg.SMTP.Host = ""
	assert.ErrorContains(t, validate(cfg), "SMTP_HOST")

	cfg.SMTP.Host = "smtp.example.com"
	cfg.Otel.Enabled = true
	cfg.Otel.Insecure = true
	assert.ErrorContains(t, validate(cfg), "OTEL_INSECURE")
}

func TestServerAddress(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 9090}
	assert.Equal(t, "127.0.0.1:9090", s.Address())
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := validConfig()
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.App.Environment = "production"
	assert.True(t, cfg.IsProduction())
}
