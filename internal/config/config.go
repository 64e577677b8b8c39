package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/Dan9191/risk-engine/internal/engine"
	"github.com/Dan9191/risk-engine/internal/models"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port            string
	DBDriver        string
	DBConn          string
	LogLevel        string
	JWTSecret       string
	RescoreSchedule string
	Seed            int64

	SMTPHost        string
	SMTPPort        string
	SMTPUsername    string
	SMTPPassword    string
	SenderEmail     string
	AlertRecipients []string

	Policy PolicyConfig
}

// PolicyConfig holds the score floors applied for reported distress triggers.
// Values of zero keep the built-in defaults.
type PolicyConfig struct {
	JobLossScoreFloor          int
	SalaryDelayScoreFloor      int
	MedicalEmergencyScoreFloor int
	NaturalDisasterScoreFloor  int
	BusinessFailureScoreFloor  int
}

// DistressPolicy returns the default distress policy with the configured floors applied
func (p PolicyConfig) DistressPolicy() engine.Policy {
	policy := engine.DefaultPolicy()
	floors := map[models.Trigger]int{
		models.TriggerJobLoss:          p.JobLossScoreFloor,
		models.TriggerSalaryDelay:      p.SalaryDelayScoreFloor,
		models.TriggerMedicalEmergency: p.MedicalEmergencyScoreFloor,
		models.TriggerNaturalDisaster:  p.NaturalDisasterScoreFloor,
		models.TriggerBusinessFailure:  p.BusinessFailureScoreFloor,
	}
	for trigger, floor := range floors {
		if floor > 0 {
			policy.SetFloor(trigger, floor)
		}
	}
	return policy
}

// NewConfig loads configuration from a .env file (if present) and environment variables
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DBDriver:        getEnv("DB_DRIVER", "postgres"),
		DBConn:          getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=risk sslmode=disable"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		RescoreSchedule: getEnv("RESCORE_SCHEDULE", "0 2 * * *"),
		SMTPHost:        getEnv("SMTP_HOST", "localhost"),
		SMTPPort:        getEnv("SMTP_PORT", "25"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SenderEmail:     getEnv("SENDER_EMAIL", "risk-desk@localhost"),
		AlertRecipients: splitList(getEnv("ALERT_RECIPIENTS", "")),
	}

	var err error
	if cfg.Seed, err = getEnvInt64("SEED", 42); err != nil {
		return nil, err
	}

	floors := []struct {
		key  string
		dest *int
	}{
		{"JOB_LOSS_SCORE_FLOOR", &cfg.Policy.JobLossScoreFloor},
		{"SALARY_DELAY_SCORE_FLOOR", &cfg.Policy.SalaryDelayScoreFloor},
		{"MEDICAL_EMERGENCY_SCORE_FLOOR", &cfg.Policy.MedicalEmergencyScoreFloor},
		{"NATURAL_DISASTER_SCORE_FLOOR", &cfg.Policy.NaturalDisasterScoreFloor},
		{"BUSINESS_FAILURE_SCORE_FLOOR", &cfg.Policy.BusinessFailureScoreFloor},
	}
	for _, f := range floors {
		v, err := getEnvInt64(f.key, 0)
		if err != nil {
			return nil, err
		}
		if v < 0 || v > 100 {
			return nil, fmt.Errorf("%s must be between 0 and 100", f.key)
		}
		*f.dest = int(v)
	}
	if err := cfg.Policy.DistressPolicy().Validate(); err != nil {
		return nil, fmt.Errorf("invalid score floor: %w", err)
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("DB_DRIVER must be one of: postgres, sqlite")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if len(cfg.AlertRecipients) > 0 && cfg.SenderEmail == "" {
		return nil, fmt.Errorf("SENDER_EMAIL is required when ALERT_RECIPIENTS is set")
	}

	return cfg, nil
}

// NotificationsEnabled reports whether distress notices should be emailed
func (c *Config) NotificationsEnabled() bool {
	return len(c.AlertRecipients) > 0
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) (int64, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultVal, nil
	}
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
