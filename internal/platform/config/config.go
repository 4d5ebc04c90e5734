package config

import (
	"fmt"
	"os"
	"time"
)

// StoreConfig locates the remote document store. The store address is always
// deployment-provided; there is no compiled-in default host.
type StoreConfig struct {
	// URL is the base URL of the store, e.g. "http://couch.internal:5984".
	URL string

	UserDatabase  string
	TripDatabase  string
	LoginDatabase string

	// Timeout bounds each store round trip. The data layer itself imposes no
	// other limit on a hung call.
	Timeout time.Duration
}

func LoadStoreConfigFromEnv() (StoreConfig, error) {
	url := os.Getenv("STORE_URL")
	if url == "" {
		return StoreConfig{}, fmt.Errorf("missing required env var: STORE_URL")
	}

	cfg := StoreConfig{
		URL:           url,
		UserDatabase:  getenv("STORE_USER_DB", "users"),
		TripDatabase:  getenv("STORE_TRIP_DB", "trips"),
		LoginDatabase: getenv("STORE_LOGIN_DB", "logins"),
		Timeout:       10 * time.Second,
	}

	if v := os.Getenv("STORE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return StoreConfig{}, fmt.Errorf("STORE_TIMEOUT must be a duration (e.g. 10s): %w", err)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
