package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
}

type Config struct {
	// Required for AI features; the server still runs without it using
	// rule-based parsing and canned tutoring answers.
	OpenAIAPIKey string

	// Google Calendar OAuth. Tokens are persisted in the database.
	GoogleCredentialsFile string

	// Optional with defaults
	DBPath      string
	HTTPPort    int
	TutorModel  string
	ParserModel string
	Timezone    string

	// Deadline email notifications (Resend). Disabled when the key is empty.
	ResendAPIKey string
	EmailFrom    string
	EmailTo      string
}

func LoadFromEnv() *Config {
	cfg := &Config{
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),

		GoogleCredentialsFile: getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", "./credentials.json"),

		DBPath:      getEnvOrDefault("STUDYBOT_DB_PATH", "./studybot.db"),
		HTTPPort:    getEnvAsIntOrDefault("STUDYBOT_HTTP_PORT", 8080),
		TutorModel:  getEnvOrDefault("STUDYBOT_TUTOR_MODEL", "gpt-3.5-turbo"),
		ParserModel: getEnvOrDefault("STUDYBOT_PARSER_MODEL", "gpt-4o-mini"),
		Timezone:    getEnvOrDefault("STUDYBOT_TIMEZONE", "Asia/Ho_Chi_Minh"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		EmailFrom:    getEnvOrDefault("STUDYBOT_EMAIL_FROM", "StudyBot <noreply@studybot.local>"),
		EmailTo:      os.Getenv("STUDYBOT_EMAIL_TO"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
