package config

import (
	"fmt"
	"os"
	"path"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

const appDir = "gagyebu"

type Config struct {
	SupabaseURL     string
	SupabaseKey     string
	DefaultCurrency string
	RatesFile       string
	GuestStoreFile  string
	SessionFile     string
}

// LoadConfig reads settings from the environment (a local .env is honored
// when present) and resolves the data files under the xdg base directories.
func LoadConfig() (*Config, error) {
	// .env is a development convenience, its absence is not an error.
	_ = godotenv.Load()

	guestStore, err := xdg.DataFile(path.Join(appDir, "guest_transactions.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve guest store path: %w", err)
	}
	sessionFile, err := xdg.StateFile(path.Join(appDir, "session.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session path: %w", err)
	}

	ratesFile := os.Getenv("GAGYEBU_RATES_FILE")
	if ratesFile == "" {
		ratesFile = path.Join(xdg.ConfigHome, appDir, "rates.yaml")
	}

	currency := os.Getenv("GAGYEBU_CURRENCY")
	if currency == "" {
		currency = "KRW"
	}

	return &Config{
		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseKey:     os.Getenv("SUPABASE_KEY"),
		DefaultCurrency: currency,
		RatesFile:       ratesFile,
		GuestStoreFile:  guestStore,
		SessionFile:     sessionFile,
	}, nil
}
