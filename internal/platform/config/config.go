package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Gateway environments.
const (
	EnvironmentSandbox    = "sandbox"
	EnvironmentProduction = "production"
)

const (
	sandboxGatewayURL    = "https://api.sandbox.africastalking.com/version1"
	productionGatewayURL = "https://api.africastalking.com/version1"
)

// Config is resolved once at startup and passed to every component that needs it.
type Config struct {
	Server      Server
	RecordStore RecordStore
	Gateway     Gateway
	Display     Display
	Redis       RedisConfig
	Dashboard   Dashboard
	LogLevel    string
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string
	RequestTimeout time.Duration
}

// RecordStore configures the remote record store client.
//
// HashPasswords bcrypt-hashes registration passwords before they are sent.
// Only enable it for a store that keeps the credential verbatim and checks
// logins with a bcrypt compare, since /auth/login always forwards plaintext.
type RecordStore struct {
	BaseURL       string
	Timeout       time.Duration
	HashPasswords bool
}

// Gateway configures the SMS gateway client.
type Gateway struct {
	APIKey           string
	Username         string
	Environment      string
	Timeout          time.Duration
	FailureThreshold int
}

// BaseURL selects the messaging endpoint root for the configured environment.
func (g Gateway) BaseURL() string {
	if g.Environment == EnvironmentProduction {
		return productionGatewayURL
	}
	return sandboxGatewayURL
}

// Display is public metadata shown by clients and embedded in notifications.
type Display struct {
	AppName      string `json:"appName"`
	SupportEmail string `json:"supportEmail"`
	SupportPhone string `json:"supportPhone"`
	USSDCode     string `json:"ussdCode"`
}

// RedisConfig configures the optional dashboard snapshot cache. An empty URL
// disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Dashboard configures the aggregation side.
type Dashboard struct {
	CacheTTL time.Duration
}

var defaults = map[string]any{
	"sherialink_addr":             ":8080",
	"request_timeout":             "30s",
	"record_store_base_url":       "https://ussd-test-x27k.onrender.com/api",
	"record_store_timeout":        "10s",
	"record_store_hash_passwords": false,
	"africastalking_api_key":      "",
	"africastalking_username":     "sandbox",
	"africastalking_environment":  EnvironmentSandbox,
	"africastalking_timeout":      "10s",
	"gateway_failure_threshold":   5,
	"ussd_code":                   "*384*00#",
	"app_name":                    "ShariaLink Dashboard",
	"support_email":               "support@sharialink.go.ke",
	"support_phone":               "+254 719 732842",
	"redis_url":                   "",
	"redis_pool_size":             10,
	"redis_min_idle_conns":        2,
	"redis_dial_timeout":          "5s",
	"redis_read_timeout":          "3s",
	"redis_write_timeout":         "3s",
	"dashboard_cache_ttl":         "30s",
	"log_level":                   "info",
}

// aliases lets deployments keep the variable names used by the old front-end build.
var aliases = map[string][]string{
	"record_store_base_url":      {"RECORD_STORE_BASE_URL", "REACT_APP_API_BASE_URL"},
	"africastalking_api_key":     {"AFRICASTALKING_API_KEY", "REACT_APP_AFRICASTALKING_API_KEY"},
	"africastalking_username":    {"AFRICASTALKING_USERNAME", "REACT_APP_AFRICASTALKING_USERNAME"},
	"africastalking_environment": {"AFRICASTALKING_ENVIRONMENT", "REACT_APP_AFRICASTALKING_ENVIRONMENT"},
	"ussd_code":                  {"USSD_CODE", "REACT_APP_USSD_CODE"},
	"app_name":                   {"APP_NAME", "REACT_APP_APP_NAME"},
	"support_email":              {"SUPPORT_EMAIL", "REACT_APP_SUPPORT_EMAIL"},
	"support_phone":              {"SUPPORT_PHONE", "REACT_APP_SUPPORT_PHONE"},
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, envs := range aliases {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}
	v.AutomaticEnv()
	return load(v)
}

func load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Server: Server{
			Addr:           v.GetString("sherialink_addr"),
			RequestTimeout: v.GetDuration("request_timeout"),
		},
		RecordStore: RecordStore{
			BaseURL:       strings.TrimRight(v.GetString("record_store_base_url"), "/"),
			Timeout:       v.GetDuration("record_store_timeout"),
			HashPasswords: v.GetBool("record_store_hash_passwords"),
		},
		Gateway: Gateway{
			APIKey:           v.GetString("africastalking_api_key"),
			Username:         v.GetString("africastalking_username"),
			Environment:      strings.ToLower(strings.TrimSpace(v.GetString("africastalking_environment"))),
			Timeout:          v.GetDuration("africastalking_timeout"),
			FailureThreshold: v.GetInt("gateway_failure_threshold"),
		},
		Display: Display{
			AppName:      v.GetString("app_name"),
			SupportEmail: v.GetString("support_email"),
			SupportPhone: v.GetString("support_phone"),
			USSDCode:     v.GetString("ussd_code"),
		},
		Redis: RedisConfig{
			URL:          v.GetString("redis_url"),
			PoolSize:     v.GetInt("redis_pool_size"),
			MinIdleConns: v.GetInt("redis_min_idle_conns"),
			DialTimeout:  v.GetDuration("redis_dial_timeout"),
			ReadTimeout:  v.GetDuration("redis_read_timeout"),
			WriteTimeout: v.GetDuration("redis_write_timeout"),
		},
		Dashboard: Dashboard{
			CacheTTL: v.GetDuration("dashboard_cache_ttl"),
		},
		LogLevel: v.GetString("log_level"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the clients cannot run with.
func (c Config) Validate() error {
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.Server.RequestTimeout)
	}
	if c.RecordStore.Timeout <= 0 {
		return fmt.Errorf("record store timeout must be positive, got %s", c.RecordStore.Timeout)
	}
	if c.Gateway.Timeout <= 0 {
		return fmt.Errorf("gateway timeout must be positive, got %s", c.Gateway.Timeout)
	}
	u, err := url.Parse(c.RecordStore.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("record store base URL %q is not an absolute URL", c.RecordStore.BaseURL)
	}
	switch c.Gateway.Environment {
	case EnvironmentSandbox, EnvironmentProduction:
	default:
		return fmt.Errorf("unknown gateway environment %q", c.Gateway.Environment)
	}
	if c.Dashboard.CacheTTL < 0 {
		return fmt.Errorf("dashboard cache TTL must not be negative, got %s", c.Dashboard.CacheTTL)
	}
	return nil
}
