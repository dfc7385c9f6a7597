package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries every tunable the process reads from the environment. It is
// loaded once in main and handed down; nothing else reads os.Getenv.
type Config struct {
	Port string

	// SupabaseURL and SupabaseKey select the hosted backend for both the
	// database and file storage. Leaving either empty switches persistence
	// to local JSON files and uploads to local disk.
	SupabaseURL string
	SupabaseKey string
	DBSchema    string

	// AdminUsername and AdminPassword guard the write endpoints. The
	// password may be a bcrypt hash. Unset credentials lock the admin
	// surface entirely.
	AdminUsername string
	AdminPassword string

	// DataDir holds the JSON file store. Empty disables it.
	DataDir string
	// UploadDir receives uploaded files when Supabase storage is not
	// configured, and is also served at /uploads.
	UploadDir string

	// ProxyAllowedHosts is the hostname allow-list for the PDF proxy. When
	// unset it contains just the Supabase host, so a proxy with no explicit
	// configuration can still fetch the bulletins it is meant for.
	ProxyAllowedHosts []string

	// ProjectsFileFallback serves projects from the file store when the
	// hosted database answers with an empty list.
	ProjectsFileFallback bool

	HeartbeatCron string
	LogLevel      string
}

// Load reads the process configuration. A .env file is honored when present;
// real environment variables win over it.
func Load() Config {
	godotenv.Load()

	cfg := Config{
		Port:          getenv("PORT", "8080"),
		SupabaseURL:   strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseKey:   os.Getenv("SUPABASE_SERVICE_KEY"),
		DBSchema:      getenv("DB_SCHEMA", "public"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		DataDir:       getenvOrUnset("DATA_DIR", "data"),
		UploadDir:     getenvOrUnset("UPLOAD_DIR", "uploads"),
		HeartbeatCron: getenvOrUnset("HEARTBEAT_CRON", "@every 5m"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
	}
	cfg.ProjectsFileFallback, _ = strconv.ParseBool(os.Getenv("PROJECTS_FILE_FALLBACK"))
	cfg.ProxyAllowedHosts = splitHosts(os.Getenv("PDF_PROXY_ALLOWED_HOSTS"))
	if len(cfg.ProxyAllowedHosts) == 0 {
		if h := hostOf(cfg.SupabaseURL); h != "" {
			cfg.ProxyAllowedHosts = []string{h}
		}
	}
	return cfg
}

// SupabaseConfigured reports whether the hosted backend is usable.
func (c Config) SupabaseConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

// AdminConfigured reports whether both admin credentials are set.
func (c Config) AdminConfigured() bool {
	return c.AdminUsername != "" && c.AdminPassword != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getenvOrUnset falls back only when the variable is absent. Setting it to an
// empty string is meaningful for these keys and disables the feature.
func getenvOrUnset(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// splitHosts parses a comma-separated hostname list. Entries are lowercased
// and blanks dropped.
func splitHosts(raw string) []string {
	var hosts []string
	for _, h := range strings.Split(raw, ",") {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

// hostOf extracts the lowercased hostname of a URL, "" when unparseable.
func hostOf(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
