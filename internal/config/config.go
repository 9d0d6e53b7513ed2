package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

// Config holds all configuration
type Config struct {
	MySQL    MySQLConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CAS      CASConfig
	CCDB     CCDBConfig
	TestAuth TestAuthConfig
	Enums    Enums
	Migrate  bool
	HTTPAddr string
}

// MySQLConfig holds MySQL configuration
type MySQLConfig struct {
	DSN string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	ExpireMinutes int
	Issuer        string
}

// CASConfig holds the external SSO endpoint configuration
type CASConfig struct {
	// BaseURL is the CAS server root, e.g. https://auth.example.org/cas
	BaseURL string
	// ServiceURL is the callback URL registered with CAS for this app
	ServiceURL string
	TimeoutSec int
}

// CCDBConfig holds the external slot-data source configuration
type CCDBConfig struct {
	BaseURL    string
	TimeoutSec int
}

// TestAuthConfig holds the non-production login bypass credentials
type TestAuthConfig struct {
	Enabled  bool
	Username string
	// Password is the plaintext test password; it is bcrypt-hashed when the
	// account is seeded and never stored as-is
	Password string
}

// Enums holds the canonical enumerated value lists consumed by both the
// request validator and the client-facing config endpoint. Immutable after
// Load.
type Enums struct {
	LevelOfCare    []string `json:"levelOfCareEnums"`
	Status         []string `json:"statusEnums"`
	InstStatus     []string `json:"instStatusEnums"`
	Area           []string `json:"areaEnums"`
	VersionControl []string `json:"rcsEnums"`
}

// Default enum lists; overridable via the [enums] INI section or env.
var (
	defaultLevelOfCare    = []string{"LOW", "MEDIUM", "HIGH"}
	defaultStatus         = []string{"DEVEL", "RDY_TEST", "RDY_INST", "DEP"}
	defaultInstStatus     = []string{"RDY_INST", "RDY_VER", "RDY_BEAM", "RETIRED"}
	defaultArea           = []string{"Global", "FE", "CF", "LINAC", "Target"}
	defaultVersionControl = []string{"Git", "AssetCentre", "Filesystem", "Debian", "Other"}
)

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		MySQL: MySQLConfig{
			DSN: getEnv("MYSQL_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASS", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:        os.Getenv("JWT_SECRET"),
			ExpireMinutes: getEnvInt("JWT_EXPIRE_MINUTES", 1440),
			Issuer:        getEnv("JWT_ISSUER", "swdb"),
		},
		CAS: CASConfig{
			BaseURL:    getEnv("CAS_BASE_URL", ""),
			ServiceURL: getEnv("CAS_SERVICE_URL", ""),
			TimeoutSec: getEnvInt("CAS_TIMEOUT_SEC", 5),
		},
		CCDB: CCDBConfig{
			BaseURL:    getEnv("CCDB_BASE_URL", ""),
			TimeoutSec: getEnvInt("CCDB_TIMEOUT_SEC", 5),
		},
		TestAuth: TestAuthConfig{
			Enabled:  getEnv("TEST_AUTH_ENABLED", "0") == "1",
			Username: getEnv("TEST_AUTH_USER", ""),
			Password: getEnv("TEST_AUTH_PASS", ""),
		},
		Enums: Enums{
			LevelOfCare:    getEnvList("ENUM_LEVEL_OF_CARE", defaultLevelOfCare),
			Status:         getEnvList("ENUM_STATUS", defaultStatus),
			InstStatus:     getEnvList("ENUM_INST_STATUS", defaultInstStatus),
			Area:           getEnvList("ENUM_AREA", defaultArea),
			VersionControl: getEnvList("ENUM_VERSION_CONTROL", defaultVersionControl),
		},
		Migrate:  getEnv("MIGRATE", "0") == "1",
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromINI loads configuration from an INI file with environment variable
// override. Priority: ENV > INI > default.
func LoadFromINI(iniPath string) (*Config, error) {
	_ = godotenv.Load()

	cfgFile, err := ini.Load(iniPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load INI file: %w", err)
	}

	getValue := func(envKey, iniSection, iniKey, defaultValue string) string {
		if value := os.Getenv(envKey); value != "" {
			return value
		}
		if value := cfgFile.Section(iniSection).Key(iniKey).String(); value != "" {
			return value
		}
		return defaultValue
	}

	getValueInt := func(envKey, iniSection, iniKey string, defaultValue int) int {
		if value := os.Getenv(envKey); value != "" {
			if intValue, err := strconv.Atoi(value); err == nil {
				return intValue
			}
		}
		if cfgFile.Section(iniSection).HasKey(iniKey) {
			if value, err := cfgFile.Section(iniSection).Key(iniKey).Int(); err == nil {
				return value
			}
		}
		return defaultValue
	}

	getValueBool := func(envKey, iniSection, iniKey string, defaultValue bool) bool {
		if value := os.Getenv(envKey); value != "" {
			return value == "1" || value == "true"
		}
		if value, err := cfgFile.Section(iniSection).Key(iniKey).Bool(); err == nil {
			return value
		}
		return defaultValue
	}

	getValueList := func(envKey, iniSection, iniKey string, defaultValue []string) []string {
		if value := os.Getenv(envKey); value != "" {
			return splitList(value)
		}
		if value := cfgFile.Section(iniSection).Key(iniKey).String(); value != "" {
			return splitList(value)
		}
		return defaultValue
	}

	cfg := &Config{
		MySQL: MySQLConfig{
			DSN: getValue("MYSQL_DSN", "mysql", "dsn", ""),
		},
		Redis: RedisConfig{
			Addr:     getValue("REDIS_ADDR", "redis", "addr", "localhost:6379"),
			Password: getValue("REDIS_PASS", "redis", "pass", ""),
			DB:       getValueInt("REDIS_DB", "redis", "db", 0),
		},
		JWT: JWTConfig{
			Secret:        getValue("JWT_SECRET", "jwt", "secret", ""),
			ExpireMinutes: getValueInt("JWT_EXPIRE_MINUTES", "jwt", "expire_minutes", 1440),
			Issuer:        getValue("JWT_ISSUER", "jwt", "issuer", "swdb"),
		},
		CAS: CASConfig{
			BaseURL:    getValue("CAS_BASE_URL", "cas", "base_url", ""),
			ServiceURL: getValue("CAS_SERVICE_URL", "cas", "service_url", ""),
			TimeoutSec: getValueInt("CAS_TIMEOUT_SEC", "cas", "timeout_sec", 5),
		},
		CCDB: CCDBConfig{
			BaseURL:    getValue("CCDB_BASE_URL", "ccdb", "base_url", ""),
			TimeoutSec: getValueInt("CCDB_TIMEOUT_SEC", "ccdb", "timeout_sec", 5),
		},
		TestAuth: TestAuthConfig{
			Enabled:  getValueBool("TEST_AUTH_ENABLED", "testauth", "enabled", false),
			Username: getValue("TEST_AUTH_USER", "testauth", "username", ""),
			Password: getValue("TEST_AUTH_PASS", "testauth", "password", ""),
		},
		Enums: Enums{
			LevelOfCare:    getValueList("ENUM_LEVEL_OF_CARE", "enums", "level_of_care", defaultLevelOfCare),
			Status:         getValueList("ENUM_STATUS", "enums", "status", defaultStatus),
			InstStatus:     getValueList("ENUM_INST_STATUS", "enums", "inst_status", defaultInstStatus),
			Area:           getValueList("ENUM_AREA", "enums", "area", defaultArea),
			VersionControl: getValueList("ENUM_VERSION_CONTROL", "enums", "version_control", defaultVersionControl),
		},
		Migrate:  getValueBool("MIGRATE", "app", "migrate", false),
		HTTPAddr: getValue("HTTP_ADDR", "http", "addr", ":8080"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MySQL.DSN == "" {
		return fmt.Errorf("MYSQL_DSN is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
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
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return splitList(value)
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
