package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultCodeLength     = 6
	defaultSMSCodeTTL     = 60 * time.Second
	defaultEmailCodeTTL   = 300 * time.Second
	defaultAccessTTL      = 15 * time.Minute
	defaultRefreshTTL     = 7 * 24 * time.Hour
	defaultResendInterval = 30 * time.Second
	defaultDirectoryTTL   = 5 * time.Second
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth AuthConfig `json:"auth" yaml:"auth"`

	Token TokenConfig `json:"token" yaml:"token"`

	Captcha CaptchaConfig `json:"captcha" yaml:"captcha"`

	Cache CacheConfig `json:"cache" yaml:"cache"`

	// Store selects where user aggregates are loaded from: "memory" or "postgres".
	Store struct {
		Driver string     `json:"driver" yaml:"driver"`
		Seed   []SeedUser `json:"seed" yaml:"seed"`
	} `json:"store" yaml:"store"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Directory enables the DIRECTORY scheme when set.
	Directory *DirectoryConfig `json:"directory" yaml:"directory"`

	// GoogleOAuth enables the GOOGLE scheme when set.
	GoogleOAuth *GoogleOAuthConfig `json:"googleOAuth" yaml:"googleOAuth"`

	TOTP TOTPConfig `json:"totp" yaml:"totp"`

	// Delivery selects the channel one-time codes are sent through.
	Delivery DeliveryConfig `json:"delivery" yaml:"delivery"`

	// QRCode configuration for TOTP enrollment images
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

// SeedUser is an account preloaded into the memory store.
type SeedUser struct {
	Username     string   `json:"username" yaml:"username"`
	Email        string   `json:"email" yaml:"email"`
	Phone        string   `json:"phone" yaml:"phone"`
	PasswordHash string   `json:"passwordHash" yaml:"passwordHash"`
	Roles        []string `json:"roles" yaml:"roles"`
}

type GoogleOAuthConfig struct {
	ClientID string `json:"clientId" yaml:"clientId"`
	// RedirectURIs, when set, restricts the redirect URI a login may name.
	RedirectURIs []string `json:"redirectUris" yaml:"redirectUris"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`
	// Schemes lists the enabled login schemes; empty enables every configured one.
	Schemes []string `json:"schemes" yaml:"schemes"`
}

// TokenConfig controls access and refresh token issuance.
type TokenConfig struct {
	Issuer      string        `json:"issuer" yaml:"issuer"`
	DefaultType string        `json:"defaultType" yaml:"defaultType"`
	AccessTTL   time.Duration `json:"accessTtl" yaml:"accessTtl"`
	RefreshTTL  time.Duration `json:"refreshTtl" yaml:"refreshTtl"`
}

// CaptchaConfig controls one-time code issuance.
type CaptchaConfig struct {
	Length         int           `json:"length" yaml:"length"`
	ResendInterval time.Duration `json:"resendInterval" yaml:"resendInterval"`
	ResendBurst    int           `json:"resendBurst" yaml:"resendBurst"`
	SMS            CodeChannel   `json:"sms" yaml:"sms"`
	Email          CodeChannel   `json:"email" yaml:"email"`
}

// CodeChannel is the per-scheme code policy.
type CodeChannel struct {
	TTL      time.Duration `json:"ttl" yaml:"ttl"`
	Template string        `json:"template" yaml:"template"`
}

// CacheConfig selects the shared TTL store.
type CacheConfig struct {
	// Driver is "memory" or "redis".
	Driver          string        `json:"driver" yaml:"driver"`
	Shards          int           `json:"shards" yaml:"shards"`
	JanitorInterval time.Duration `json:"janitorInterval" yaml:"janitorInterval"`
	Redis           RedisConfig   `json:"redis" yaml:"redis"`
}

// RedisConfig defines the redis connection.
type RedisConfig struct {
	Addr      string `json:"addr" yaml:"addr"`
	Password  string `json:"password" yaml:"password"`
	DB        int    `json:"db" yaml:"db"`
	KeyPrefix string `json:"keyPrefix" yaml:"keyPrefix"`
}

// DirectoryConfig defines the LDAP directory used by the DIRECTORY scheme.
type DirectoryConfig struct {
	URL          string `json:"url" yaml:"url"`
	BindDN       string `json:"bindDn" yaml:"bindDn"`
	BindPassword string `json:"bindPassword" yaml:"bindPassword"`
	BaseDN       string `json:"baseDn" yaml:"baseDn"`
	// UserFilter is a template; {username} and {directoryId} are replaced with escaped values.
	UserFilter         string        `json:"userFilter" yaml:"userFilter"`
	EmailAttribute     string        `json:"emailAttribute" yaml:"emailAttribute"`
	IDAttribute        string        `json:"idAttribute" yaml:"idAttribute"`
	GroupAttribute     string        `json:"groupAttribute" yaml:"groupAttribute"`
	Timeout            time.Duration `json:"timeout" yaml:"timeout"`
	InsecureSkipVerify bool          `json:"insecureSkipVerify" yaml:"insecureSkipVerify"`
}

// TOTPConfig defines authenticator app settings.
type TOTPConfig struct {
	Issuer string `json:"issuer" yaml:"issuer"`
	Skew   uint   `json:"skew" yaml:"skew"`
}

// DeliveryConfig defines the out-of-band channel for one-time codes.
type DeliveryConfig struct {
	// Provider type: "log", "pubsub" or "firebase"
	Provider        string `json:"provider" yaml:"provider"`
	ProjectID       string `json:"projectId" yaml:"projectId"`
	TopicID         string `json:"topicId" yaml:"topicId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if cfg.Postgres != nil {
		// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.Captcha.Length <= 0 {
		cfg.Captcha.Length = defaultCodeLength
	}
	if cfg.Captcha.SMS.TTL <= 0 {
		cfg.Captcha.SMS.TTL = defaultSMSCodeTTL
	}
	if cfg.Captcha.Email.TTL <= 0 {
		cfg.Captcha.Email.TTL = defaultEmailCodeTTL
	}
	if cfg.Captcha.ResendInterval <= 0 {
		cfg.Captcha.ResendInterval = defaultResendInterval
	}
	if cfg.Captcha.ResendBurst <= 0 {
		cfg.Captcha.ResendBurst = 1
	}
	if cfg.Token.AccessTTL <= 0 {
		cfg.Token.AccessTTL = defaultAccessTTL
	}
	if cfg.Token.RefreshTTL <= 0 {
		cfg.Token.RefreshTTL = defaultRefreshTTL
	}
	if cfg.Token.DefaultType == "" {
		cfg.Token.DefaultType = "jwt"
	}
	if cfg.Cache.Driver == "" {
		cfg.Cache.Driver = "memory"
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "memory"
	}
	if cfg.Delivery.Provider == "" {
		cfg.Delivery.Provider = "log"
	}
	if cfg.Directory != nil {
		if cfg.Directory.Timeout <= 0 {
			cfg.Directory.Timeout = defaultDirectoryTTL
		}
		if cfg.Directory.EmailAttribute == "" {
			cfg.Directory.EmailAttribute = "mail"
		}
		if cfg.Directory.IDAttribute == "" {
			cfg.Directory.IDAttribute = "employeeNumber"
		}
		if cfg.Directory.GroupAttribute == "" {
			cfg.Directory.GroupAttribute = "memberOf"
		}
	}
}

// Validate rejects configurations the service cannot start with.
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.SecretKey.Access) == "" {
		return errors.New("secretKey.access must be provided")
	}
	if cfg.Store.Driver == "postgres" && cfg.Postgres == nil {
		return errors.New("store.driver is postgres but postgres is not configured")
	}
	if cfg.Cache.Driver == "redis" && cfg.Cache.Redis.Addr == "" {
		return errors.New("cache.driver is redis but cache.redis.addr is empty")
	}
	if cfg.Directory != nil && (cfg.Directory.URL == "" || cfg.Directory.UserFilter == "") {
		return errors.New("directory.url and directory.userFilter are required")
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
// Example: POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, POSTGRES_REPLICAS_0_USERNAME, POSTGRES_REPLICAS_0_PASSWORD
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}
