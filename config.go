package main

import (
	"fmt"
	"os"
	"strconv"

	"glyph-recents/recent"
)

type config struct {
	Port     string
	Dir      string
	Capacity int
	Debug    bool
}

// loadConfig reads the environment. Unset variables take their defaults.
func loadConfig() (config, error) {
	cfg := config{
		Port:     os.Getenv("PORT"),
		Dir:      os.Getenv("RECENTS_DIR"),
		Capacity: recent.DefaultCapacity,
		Debug:    os.Getenv("RECENTS_DEBUG") != "",
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Dir == "" {
		cfg.Dir = "/data/recents"
	}
	if v := os.Getenv("RECENTS_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return config{}, fmt.Errorf("RECENTS_CAPACITY must be a positive integer, got %q", v)
		}
		cfg.Capacity = n
	}
	return cfg, nil
}
