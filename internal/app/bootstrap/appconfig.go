// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings: ports, TLS, logging level, body size limits.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer token configuration
	JWTSecret string        // HMAC key for HS256 tokens
	JWTExpiry time.Duration // token lifetime (default 30 days)

	// Origins allowed by the CORS middleware; "*" allows any.
	CORSAllowedOrigins []string

	// Login attempts per minute per client IP; 0 disables the limiter.
	LoginRateLimit int

	// Take the client IP from forwarding headers. Enable only behind a proxy
	// that overwrites them.
	TrustProxy bool

	// Database timeout overrides; zero keeps the default.
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration

	// Audit logging: "all", "db", "log", or "off"
	AuditLogAuth  string
	AuditLogAdmin string

	// SuperAdmin bootstrap. An empty email skips it.
	SuperAdminEmail    string
	SuperAdminPassword string
}
