package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	Environment     string
	LogLevel        string
	ShutdownTimeout time.Duration
	// AdminToken guards the operator routes; empty disables them.
	AdminToken string
	// AuditCapacity bounds the in-memory audit trail.
	AuditCapacity int
	Protocol      Protocol
	Tracing       Tracing
}

// Tracing controls the OTLP span exporter. It is off unless enabled.
type Tracing struct {
	Enabled  bool
	Endpoint string
}

// Protocol holds the filing protocol knobs.
type Protocol struct {
	// TestClientID is the only ERI client allowed to log in.
	TestClientID string
	// SessionTTL is how long a session stays valid after login.
	SessionTTL time.Duration
	// MinSignatureLength is the mock signature trust threshold; signatures
	// must be strictly longer.
	MinSignatureLength int
	// PortalBaseURL prefixes acknowledgement download links.
	PortalBaseURL string
}

const (
	defaultAddr               = ":8002"
	defaultTestClientID       = "ERI_TEST_CLIENT"
	defaultSessionTTL         = 24 * time.Hour
	defaultMinSignatureLength = 20
	defaultPortalBaseURL      = "https://eportal.incometax.gov.in/iec/foservices"
	defaultShutdownTimeout    = 10 * time.Second
	defaultOTLPEndpoint       = "localhost:4318"
	defaultAuditCapacity      = 10000
)

// Load reads an optional .env file and then builds the config from the
// environment. A missing .env file is not an error.
func Load(files ...string) Server {
	_ = godotenv.Load(files...)
	return FromEnv()
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:            getEnv("ERI_ADDR", defaultAddr),
		Environment:     getEnv("ERI_ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getEnvAsDuration("ERI_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		AdminToken:      getEnv("ERI_ADMIN_TOKEN", ""),
		AuditCapacity:   getEnvAsInt("ERI_AUDIT_CAPACITY", defaultAuditCapacity),
		Protocol: Protocol{
			TestClientID:       getEnv("ERI_TEST_CLIENT_ID", defaultTestClientID),
			SessionTTL:         getEnvAsDuration("ERI_SESSION_TTL", defaultSessionTTL),
			MinSignatureLength: getEnvAsInt("ERI_MIN_SIGNATURE_LENGTH", defaultMinSignatureLength),
			PortalBaseURL:      getEnv("ERI_PORTAL_BASE_URL", defaultPortalBaseURL),
		},
		Tracing: Tracing{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", defaultOTLPEndpoint),
		},
	}
}

// IsProduction reports whether the process runs with production defaults.
func (s Server) IsProduction() bool {
	return s.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil && v > 0 {
		return v
	}
	return fallback
}
