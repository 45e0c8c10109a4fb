// Package config loads the specsync configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Defaults applied before the file is read.
const (
	DefaultCanonicalSheet  = "Specs"
	DefaultScratchSheet    = "tmp"
	DefaultListenAddr      = ":8104"
	DefaultDocumentBaseURL = "https://docs.google.com/document/d"
	DefaultCacheTTLMinutes = 30
	DefaultDetailsEntries  = 128
)

// Config is the full specsync configuration.
type Config struct {
	Google GoogleConfig `toml:"google"`
	Sheets SheetsConfig `toml:"sheets"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

// GoogleConfig locates the tracked documents and the credentials used
// to read them.
type GoogleConfig struct {
	// CredentialsFile is the path to a service-account JSON key.
	CredentialsFile string `toml:"credentials_file"`

	// RootFolderID is the Drive folder whose first-level subfolders are
	// scanned for documents.
	RootFolderID string `toml:"root_folder_id"`

	// SpreadsheetID is the tracker spreadsheet.
	SpreadsheetID string `toml:"spreadsheet_id"`

	// DocumentBaseURL is joined with a document ID for detail links.
	DocumentBaseURL string `toml:"document_base_url"`
}

// SheetsConfig names the canonical and scratch sheets within the
// tracker spreadsheet.
type SheetsConfig struct {
	Canonical string `toml:"canonical"`
	Scratch   string `toml:"scratch"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	ListenAddr string `toml:"listen_addr"`
}

// CacheConfig bounds the read-path caches.
type CacheConfig struct {
	TTLMinutes     int `toml:"ttl_minutes"`
	DetailsEntries int `toml:"details_entries"`
}

// TTL returns the read-path cache lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Google: GoogleConfig{DocumentBaseURL: DefaultDocumentBaseURL},
		Sheets: SheetsConfig{Canonical: DefaultCanonicalSheet, Scratch: DefaultScratchSheet},
		Server: ServerConfig{ListenAddr: DefaultListenAddr},
		Cache:  CacheConfig{TTLMinutes: DefaultCacheTTLMinutes, DetailsEntries: DefaultDetailsEntries},
	}
}

// Load reads the configuration file at path, applying defaults for
// anything the file leaves unset. If path is empty,
// ~/.specsync/config.toml is used.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".specsync", "config.toml")
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the fields without usable defaults are set.
func (c *Config) Validate() error {
	var errs []error
	if c.Google.CredentialsFile == "" {
		errs = append(errs, errors.New("google.credentials_file is required"))
	}
	if c.Google.RootFolderID == "" {
		errs = append(errs, errors.New("google.root_folder_id is required"))
	}
	if c.Google.SpreadsheetID == "" {
		errs = append(errs, errors.New("google.spreadsheet_id is required"))
	}
	if c.Sheets.Canonical == c.Sheets.Scratch {
		errs = append(errs, errors.New("sheets.canonical and sheets.scratch must differ"))
	}
	return errors.Join(errs...)
}
