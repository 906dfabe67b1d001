package config

import "time"

type Config interface {
	EnvConfig
	CorsConfig
	AuthConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetDatabaseURL() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type AuthConfig interface {
	GetJWTSecret() string
	GetTokenIssuer() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetSystemTenantID() string
	GetSystemTenantName() string
	GetPlatformAdminEmail() string
	GetPlatformAdminPassword() string
}

type mainConfig struct {
	EnvVars
	Cors
	Auth
}

func New() Config {
	return mainConfig{}
}
