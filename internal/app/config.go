package app

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/equilibra/equilibra-backend/internal/platform/envutil"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
)

type Config struct {
	Environment       string
	Port              string
	FirebaseProjectID string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Environment:       envutil.Str("ENVIRONMENT", "development"),
		Port:              envutil.Str("PORT", "8080"),
		FirebaseProjectID: envutil.Str("FIREBASE_PROJECT_ID", ""),
	}
	if cfg.FirebaseProjectID == "" {
		cfg.FirebaseProjectID = projectIDFromCredentials(log)
	}
	if cfg.FirebaseProjectID == "" {
		log.Warn("no Firebase project id configured, token verification will reject everything",
			"hint", "set FIREBASE_PROJECT_ID or FIREBASE_CREDENTIALS")
	}
	return cfg
}

// projectIDFromCredentials pulls project_id out of a service account JSON,
// given either as a file path (FIREBASE_CREDENTIALS) or inline
// (FIREBASE_CREDENTIALS_JSON).
func projectIDFromCredentials(log *logger.Logger) string {
	raw := strings.TrimSpace(os.Getenv("FIREBASE_CREDENTIALS_JSON"))
	if raw == "" {
		path := strings.TrimSpace(os.Getenv("FIREBASE_CREDENTIALS"))
		if path == "" {
			return ""
		}
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("could not read Firebase credentials file", "path", path, "error", err)
			return ""
		}
		raw = string(data)
	}

	var creds struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		log.Warn("could not parse Firebase credentials", "error", err)
		return ""
	}
	return strings.TrimSpace(creds.ProjectID)
}
