// Package config reads server and client settings from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/zenithtodo/zenith/internal/todo"
)

// Environment variable names.
const (
	EnvStoreURI              = "ZENITH_STORE_URI"
	EnvPort                  = "PORT"
	EnvCORSOrigins           = "ZENITH_CORS_ORIGINS"
	EnvDefaultPriority       = "ZENITH_DEFAULT_PRIORITY"
	EnvDebug                 = "DEBUG"
	EnvAPIURL                = "ZENITH_API_URL"
	EnvClientDefaultPriority = "ZENITH_CLIENT_DEFAULT_PRIORITY"
	EnvPrefsPath             = "ZENITH_PREFS_PATH"
)

const (
	defaultPort     = "3000"
	defaultPriority = todo.PriorityLow
)

var defaultCORSOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}

// Server holds the settings for the task service.
type Server struct {
	StoreURI        string
	Port            string
	CORSOrigins     []string
	DefaultPriority todo.Priority
	Debug           bool
}

// Addr returns the listen address.
func (s Server) Addr() string {
	return ":" + s.Port
}

// Client holds the settings for the terminal client.
type Client struct {
	APIURL          string
	DefaultPriority todo.Priority
	PrefsPath       string
}

// LoadDotEnv loads variables from the given files (default ".env") without
// overriding values already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// LoadServer reads the server settings. The store URI is required.
func LoadServer() (Server, error) {
	cfg := Server{
		StoreURI:    strings.TrimSpace(os.Getenv(EnvStoreURI)),
		Port:        envOr(EnvPort, defaultPort),
		CORSOrigins: defaultCORSOrigins,
	}
	if cfg.StoreURI == "" {
		return Server{}, fmt.Errorf("environment variable %s must be set", EnvStoreURI)
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Server{}, fmt.Errorf("invalid %s %q: %w", EnvPort, cfg.Port, err)
	}

	if v := os.Getenv(EnvCORSOrigins); v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	p, err := priorityFromEnv(EnvDefaultPriority)
	if err != nil {
		return Server{}, err
	}
	cfg.DefaultPriority = p

	if dbg, err := strconv.ParseBool(os.Getenv(EnvDebug)); err == nil {
		cfg.Debug = dbg
	}
	return cfg, nil
}

// LoadClient reads the client settings. The API URL is required.
func LoadClient() (Client, error) {
	cfg := Client{
		APIURL:    strings.TrimRight(strings.TrimSpace(os.Getenv(EnvAPIURL)), "/"),
		PrefsPath: os.Getenv(EnvPrefsPath),
	}
	if cfg.APIURL == "" {
		return Client{}, fmt.Errorf("environment variable %s must be set", EnvAPIURL)
	}

	p, err := priorityFromEnv(EnvClientDefaultPriority)
	if err != nil {
		return Client{}, err
	}
	cfg.DefaultPriority = p

	if cfg.PrefsPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Client{}, fmt.Errorf("failed to locate config dir: %w", err)
		}
		cfg.PrefsPath = filepath.Join(dir, "zenith", "prefs.json")
	}
	return cfg, nil
}

func priorityFromEnv(key string) (todo.Priority, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultPriority, nil
	}
	p, err := todo.ParsePriority(v)
	if err != nil {
		return "", fmt.Errorf("invalid %s: %w", key, err)
	}
	return p, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
