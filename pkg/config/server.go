package config

import "time"

// ServerConfig configures the HTTP front end.
type ServerConfig struct {
	Port        string
	AppName     string
	BodyLimit   int
	CORSOrigins string
	Debug       bool
	// PublicURL is linked from completion e-mails.
	PublicURL       string
	ShutdownTimeout time.Duration
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:            getEnv("PORT", "8080"),
		AppName:         getEnv("APP_NAME", "faqgen"),
		BodyLimit:       getEnvInt("BODY_LIMIT", 16*1024*1024),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		Debug:           getEnvBool("DEBUG", false),
		PublicURL:       getEnv("PUBLIC_URL", ""),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// AuthConfig guards administrative routes. An empty secret disables auth.
type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
		Issuer:    getEnv("AUTH_JWT_ISSUER", "faqgen"),
	}
}
