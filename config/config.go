package config

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/human-rights-mis-api/logging"
	"github.com/linesmerrill/human-rights-mis-api/models"
)

// Config holds the project config values
type Config struct {
	URL             string
	DatabaseName    string
	Transactions    bool
	BaseURL         string
	Port            string
	Env             string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	EncryptionKey   string
	MediaDir        string
	EvidenceBackend string
	CloudinaryURL   string
	AllowedOrigins  []string
	RequestTimeout  time.Duration
	StatsSchedule   string
	AdminUsername   string
	AdminPassword   string
}

// New sets up all config related services
func New() *Config {
	env := getEnv("ENV", "production")

	//setup zap logger and replace default logger
	logger, err := logging.New(env)
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:             os.Getenv("DB_URI"),
		DatabaseName:    getEnv("DB_NAME", "human_rights_mis"),
		Transactions:    getBool("DB_TRANSACTIONS", false),
		BaseURL:         os.Getenv("BASE_URL"),
		Port:            getEnv("PORT", "8000"),
		Env:             env,
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  getDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		EncryptionKey:   os.Getenv("ENCRYPTION_KEY"),
		MediaDir:        getEnv("MEDIA_DIR", "media"),
		EvidenceBackend: getEnv("EVIDENCE_BACKEND", "disk"),
		CloudinaryURL:   os.Getenv("CLOUDINARY_URL"),
		AllowedOrigins:  getList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 30*time.Second),
		StatsSchedule:   getEnv("STATS_SCHEDULE", "@every 5m"),
		AdminUsername:   os.Getenv("ADMIN_USERNAME"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	resp := models.ErrorMessageResponse{Response: models.MessageError{Message: message}}
	if err != nil {
		resp.Response.Error = err.Error()
		resp.Response.Kind = string(models.KindOf(err))
	}
	b, _ := json.Marshal(resp)
	w.WriteHeader(httpStatusCode)
	w.Write(b)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
