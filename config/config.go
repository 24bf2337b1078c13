// config.go - Handles configuration for the project

package config // Declares the package name

import ( // Import required packages
	"log"     // For the startup environment report
	"os"      // For reading environment variables
	"strconv" // For parsing numeric/boolean env vars
)

type Config struct { // Config struct holds all configuration values
	Port        string // HTTP listen port
	DBPath      string // Path to the SQLite database file
	JWTSecret   string // Secret key for JWT authentication
	Production  bool   // Selects production vs sandbox payment credentials
	BaseURL     string // Public base URL, used in verification links
	FrontendURL string // Storefront origin allowed by CORS

	// Outbound mail (verification emails)
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	SMTPFromName  string
	SMTPFromEmail string

	// Efí PIX credentials. ClientID/ClientSecret are already resolved
	// for the selected environment (sandbox or production).
	EfiClientID     string
	EfiClientSecret string
	EfiCertPath     string // Client certificate (PEM) for mTLS
	EfiCertKeyPath  string // Certificate key; defaults to EfiCertPath (combined PEM)
	EfiPixKey       string // Receiving PIX key registered with Efí

	// Default admin seeding
	CreateAdmin   bool
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

func Load() *Config { // Load reads config from environment variables or uses defaults
	production := getEnv("APP_ENV", "development") == "production"

	clientID := getEnv("EFI_HOMOLOG_CLIENT_ID", "")
	clientSecret := getEnv("EFI_HOMOLOG_CLIENT_SECRET", "")
	if production { // Production picks the live credential pair
		clientID = getEnv("EFI_PROD_CLIENT_ID", "")
		clientSecret = getEnv("EFI_PROD_CLIENT_SECRET", "")
	}

	port := getEnv("PORT", "5000")
	certPath := getEnv("EFI_CERTIFICATE_PATH", "")

	return &Config{
		Port:        port,
		DBPath:      getEnv("DB_PATH", "store.db"),
		JWTSecret:   getEnv("JWT_SECRET", "supersecret"),
		Production:  production,
		BaseURL:     getEnv("APP_BASE_URL", "http://localhost:"+port),
		FrontendURL: getEnv("FRONTEND_URL", ""),

		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnvInt("SMTP_PORT", 587),
		SMTPUser:      getEnv("SMTP_USER", ""),
		SMTPPass:      getEnv("SMTP_PASS", ""),
		SMTPFromName:  getEnv("SMTP_FROM_NAME", "Gamer Store"),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", ""),

		EfiClientID:     clientID,
		EfiClientSecret: clientSecret,
		EfiCertPath:     certPath,
		EfiCertKeyPath:  getEnv("EFI_CERTIFICATE_KEY_PATH", certPath),
		EfiPixKey:       getEnv("EFI_PIX_KEY", ""),

		CreateAdmin:   getEnvBool("CREATE_DEFAULT_ADMIN", false),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

// LogStartup prints which configuration values are present. Secrets are
// reported as set/unset only.
func (c *Config) LogStartup() {
	log.Println("--- Environment ---")
	log.Printf("APP_ENV: %s", mode(c.Production))
	log.Printf("PORT: %s", c.Port)
	log.Printf("DB_PATH: %s", c.DBPath)
	log.Printf("JWT_SECRET: %s", setOrUnset(c.JWTSecret != "" && c.JWTSecret != "supersecret"))
	log.Printf("FRONTEND_URL: %s", c.FrontendURL)
	log.Printf("SMTP: host=%s port=%d user=%s pass=%s", c.SMTPHost, c.SMTPPort, c.SMTPUser, setOrUnset(c.SMTPPass != ""))
	log.Printf("EFI: client_id=%s client_secret=%s certificate=%s pix_key=%s",
		setOrUnset(c.EfiClientID != ""),
		setOrUnset(c.EfiClientSecret != ""),
		setOrUnset(c.EfiCertPath != ""),
		setOrUnset(c.EfiPixKey != ""))
	log.Println("-------------------")
}

func mode(production bool) string {
	if production {
		return "production"
	}
	return "development"
}

func setOrUnset(set bool) string {
	if set {
		return "set"
	}
	return "*** UNSET ***"
}

func getEnv(key, fallback string) string { // Helper to get env var or fallback
	if value := os.Getenv(key); value != "" { // If env var is set, use it
		return value
	}
	return fallback // Otherwise, use fallback value
}

func getEnvInt(key string, fallback int) int { // Helper for integer env vars
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool { // Helper for boolean env vars
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
