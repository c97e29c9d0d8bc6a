package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	Model           string
	OpenAITimeoutMs int

	ServiceAccountPath string
	SheetID            string
	WorksheetName      string
	SheetsTimeoutMs    int

	HTTPAddr string
	DBPath   string

	ReportPath      string
	SlackWebhookURL string

	LogLevel  string
	LogFormat string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		Model:           getEnv("MODEL", "gpt-4o-mini"),
		OpenAITimeoutMs: getEnvInt("OPENAI_TIMEOUT_MS", 8000),

		ServiceAccountPath: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", filepath.Join(cwd, "credentials.json")),
		SheetID:            getEnv("SHEET_ID", ""),
		WorksheetName:      strings.TrimSpace(getEnv("SHEET_WORKSHEET_NAME", "")),
		SheetsTimeoutMs:    getEnvInt("SHEETS_TIMEOUT_MS", 10000),

		HTTPAddr: getEnv("HTTP_ADDR", ":5000"),
		DBPath:   getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),

		ReportPath:      getEnv("REPORT_PATH", filepath.Join(cwd, "out", "daily_report.xlsx")),
		SlackWebhookURL: strings.TrimSpace(getEnv("SLACK_WEBHOOK_URL", "")),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
