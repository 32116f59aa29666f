package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"lerntracker/internal/models"
	"lerntracker/internal/progress"
)

// EnvPrefix ist das Präfix aller Umgebungsvariablen (TRACKER_PORT, ...)
const EnvPrefix = "TRACKER"

// Config enthält alle Konfigurationseinstellungen
type Config struct {
	// Server-Einstellungen
	ServerPort     string   `json:"server_port" envconfig:"PORT"`
	AllowedOrigins []string `json:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	LogLevel       string   `json:"log_level" envconfig:"LOG_LEVEL"`

	// Daten
	SeedDemoData bool `json:"seed_demo_data" envconfig:"SEED_DEMO_DATA"`

	// Fälligkeiten
	TimeZone    string `json:"time_zone" envconfig:"TIME_ZONE"`
	DueSoonDays int    `json:"due_soon_days" envconfig:"DUE_SOON_DAYS"`
	WarningDays int    `json:"warning_days" envconfig:"WARNING_DAYS"`

	// Portfolio
	ContactLimit int `json:"contact_limit" envconfig:"CONTACT_LIMIT"`
}

// Default gibt die Standardkonfiguration zurück
func Default() *Config {
	return &Config{
		ServerPort:     "8080",
		AllowedOrigins: []string{"*"},
		LogLevel:       "info",
		SeedDemoData:   true,
		TimeZone:       "",
		DueSoonDays:    7,
		WarningDays:    3,
		ContactLimit:   models.MaxContacts,
	}
}

// Load lädt die Konfiguration aus einer Datei
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// LoadOrCreate lädt die Konfiguration. Fehlt die Datei, werden die
// Standardwerte dorthin geschrieben, damit sie angepasst werden können.
func LoadOrCreate(path string) (*Config, error) {
	cfg, err := Load(path)
	if !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}
	cfg = Default()
	if err := cfg.Save(path); err != nil {
		return cfg, fmt.Errorf("standardkonfiguration schreiben: %w", err)
	}
	return cfg, nil
}

// ApplyEnv lädt eine optionale .env-Datei und überschreibt gesetzte Werte
// aus der Umgebung. Nicht gesetzte Variablen lassen die Datei-Werte stehen.
func (c *Config) ApplyEnv(envFiles ...string) error {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf(".env laden: %w", err)
	}
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("umgebung auswerten: %w", err)
	}
	return c.Validate()
}

// Validate prüft die Fälligkeitsfenster und die Zeitzone
func (c *Config) Validate() error {
	if c.DueSoonDays < 1 {
		return fmt.Errorf("due_soon_days muss mindestens 1 sein (ist %d)", c.DueSoonDays)
	}
	if c.WarningDays < 0 {
		return fmt.Errorf("warning_days darf nicht negativ sein (ist %d)", c.WarningDays)
	}
	if c.ContactLimit < 1 {
		return fmt.Errorf("contact_limit muss mindestens 1 sein (ist %d)", c.ContactLimit)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location liefert die Zeitzone für Kalendertage, leer bedeutet lokal
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("zeitzone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// Rules baut die Fälligkeitsregeln aus der Konfiguration
func (c *Config) Rules() progress.Rules {
	rules := progress.DefaultRules()
	rules.DueSoonDays = c.DueSoonDays
	rules.WarningDays = c.WarningDays
	if loc, err := c.Location(); err == nil {
		rules.Location = loc
	}
	return rules
}

// Save speichert die Konfiguration in eine Datei
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
