package config

// EnvPrefix is handed to envconfig; every field carries an explicit key so the prefix only
// matters for fields without one.
const EnvPrefix = "KAIROSMIX"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv          = "KAIROSMIX_APP_ENV"
	EnvPort            = "KAIROSMIX_APP_PORT"
	EnvLogLevel        = "KAIROSMIX_LOG_LEVEL"
	EnvUpstreamBaseURL = "KAIROSMIX_UPSTREAM_BASE_URL"
	EnvUpstreamTimeout = "KAIROSMIX_UPSTREAM_TIMEOUT"
	EnvRedisURL        = "KAIROSMIX_REDIS_URL"
	EnvSessionTTL      = "KAIROSMIX_SESSION_TTL"
	EnvAdminEmails     = "KAIROSMIX_ADMIN_EMAILS"
	EnvInFlightTTL     = "KAIROSMIX_INFLIGHT_TTL"
	EnvCORSOrigins     = "KAIROSMIX_CORS_ALLOWED_ORIGINS"
)
