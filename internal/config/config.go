package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// Config holds the process-wide settings. It is built once at startup and
// passed explicitly into constructors; nothing reads it afterwards.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	ServerName    string
	ServerVersion string
	LogLevel      string
}

// Validate reports missing required configuration.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("missing required configuration: fogcast.base_url")
	}
	if c.Timeout <= 0 {
		return errors.New("invalid configuration: fogcast.timeout must be positive")
	}
	return nil
}

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func initConfig() {
	once.Do(func() {
		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Errorw("Error finding project root", "error", err)
		}
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			viper.AddConfigPath(root)
			if err = viper.MergeInConfig(); err != nil {
				GetLogger().Errorw("Error reading test config file", "error", err)
			}
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// Load builds the immutable Config value from the yaml config, with
// environment variables taking precedence for the upstream settings.
func Load() Config {
	initConfig()
	return Config{
		BaseURL:       GetFogcastBaseURL(),
		Timeout:       GetFogcastTimeout(),
		ServerName:    GetServerName(),
		ServerVersion: GetServerVersion(),
		LogLevel:      GetLogLevel(),
	}
}

// GetFogcastBaseURL returns the upstream API base URL. The FOGCAST_BASE_URL
// environment variable overrides the yaml config.
func GetFogcastBaseURL() string {
	_ = godotenv.Load()
	if v := os.Getenv("FOGCAST_BASE_URL"); v != "" {
		return v
	}
	initConfig()
	return viper.GetString("fogcast.base_url")
}

// GetFogcastTimeout returns the upstream request timeout.
// Defaults to 30s if not set or invalid.
func GetFogcastTimeout() time.Duration {
	_ = godotenv.Load()
	durStr := os.Getenv("FOGCAST_TIMEOUT")
	if durStr == "" {
		initConfig()
		durStr = viper.GetString("fogcast.timeout")
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil || dur <= 0 {
		return 30 * time.Second
	}
	return dur
}

func GetServerName() string {
	initConfig()
	name := viper.GetString("mcp.server_name")
	if name == "" {
		name = "fogcast-weather"
	}
	return name
}

func GetServerVersion() string {
	initConfig()
	version := viper.GetString("mcp.server_version")
	if version == "" {
		version = "1.0.0"
	}
	return version
}

func GetLogLevel() string {
	initConfig()
	level := viper.GetString("log.level")
	if level == "" {
		level = "info"
	}
	return level
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		if lvl, err := zapcore.ParseLevel(viper.GetString("log.level")); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
		// MCP clients own stdout for the JSON-RPC stream; logs go to stderr.
		cfg.OutputPaths = []string{"stderr"}
		l, err := cfg.Build()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}
