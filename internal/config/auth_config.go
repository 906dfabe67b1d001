package config

import "time"

type Auth struct{}

var _ AuthConfig = Auth{}

func (Auth) GetJWTSecret() string {
	return GetEnv("JWT_SECRET", "dev-only-secret-change-me")
}

func (Auth) GetTokenIssuer() string {
	return GetEnv("TOKEN_ISSUER", "stayware-property-server")
}

// GetAccessTokenTTL defaults to 15 minutes.
func (Auth) GetAccessTokenTTL() time.Duration {
	return getDuration("ACCESS_TOKEN_TTL", 15*time.Minute)
}

// GetRefreshTokenTTL defaults to 7 days.
func (Auth) GetRefreshTokenTTL() time.Duration {
	return getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour)
}

func (Auth) GetSystemTenantID() string {
	return GetEnv("SYSTEM_TENANT_ID", "system")
}

func (Auth) GetSystemTenantName() string {
	return GetEnv("SYSTEM_TENANT_NAME", "Platform")
}

func (Auth) GetPlatformAdminEmail() string {
	return GetEnv("PLATFORM_ADMIN_EMAIL", "admin@localhost")
}

// GetPlatformAdminPassword returns the bootstrap admin password. Empty
// means generate a random one on first start.
func (Auth) GetPlatformAdminPassword() string {
	return GetEnv("PLATFORM_ADMIN_PASSWORD", "")
}

func getDuration(envVar string, defaultValue time.Duration) time.Duration {
	raw := GetEnv(envVar, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return d
}
