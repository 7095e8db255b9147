package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// CSV column layout (0-based indices into each row)
	CSVDateColumn        int
	CSVAmountColumn      int
	CSVDescriptionColumn int

	// Snapshots kept for session continuity
	SnapshotsKept int

	// AMQP (optional; empty URL disables event publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets export (optional)
	GoogleSpreadsheetID string
	GoogleSheetName     string
}

func Load() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8082"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/tally.db"),

		CSVDateColumn:        getEnvInt("CSV_DATE_COLUMN", 0),
		CSVAmountColumn:      getEnvInt("CSV_AMOUNT_COLUMN", 1),
		CSVDescriptionColumn: getEnvInt("CSV_DESCRIPTION_COLUMN", 2),

		SnapshotsKept: getEnvInt("SNAPSHOTS_KEPT", 10),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "tally"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_events"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", ""),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	}

	for name, idx := range map[string]int{
		"CSV_DATE_COLUMN":        c.CSVDateColumn,
		"CSV_AMOUNT_COLUMN":      c.CSVAmountColumn,
		"CSV_DESCRIPTION_COLUMN": c.CSVDescriptionColumn,
	} {
		if idx < 0 {
			errors = append(errors, fmt.Sprintf("invalid %s %d: must not be negative", name, idx))
		}
	}
	if c.CSVDateColumn == c.CSVAmountColumn ||
		c.CSVDateColumn == c.CSVDescriptionColumn ||
		c.CSVAmountColumn == c.CSVDescriptionColumn {
		errors = append(errors, "CSV column indices must be distinct")
	}

	if c.SnapshotsKept < 1 {
		errors = append(errors, fmt.Sprintf("invalid snapshots kept %d: must be at least 1", c.SnapshotsKept))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Sheets export needs both halves or neither.
	if (c.GoogleSpreadsheetID == "") != (c.GoogleSheetName == "") {
		errors = append(errors, "GOOGLE_SPREADSHEET_ID and GOOGLE_SHEET_NAME must be set together")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
