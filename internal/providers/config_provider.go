package providers

import (
	"fmt"
	"mindful/internal/structures"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const AppName = "MindfulBrowsing"

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8787)
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.syncWrites", true)
	v.SetDefault("storage.saveInterval", 30*time.Second)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("streak.checkAt", "00:01")
	v.SetDefault("streak.initialDelay", time.Minute)
	v.SetDefault("stats.minutesPerBlock", 5.5)
	v.SetDefault("cache.ttl", 5*time.Minute)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	if flags.EnvFile != "" {
		if err := godotenv.Load(flags.EnvFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", flags.EnvFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	_ = v.BindEnv("logger.level", "MINDFUL_LOG_LEVEL")
	_ = v.BindEnv("logger.dir", "MINDFUL_LOG_DIR")
	_ = v.BindEnv("webServer.port", "MINDFUL_PORT")
	_ = v.BindEnv("storage.driver", "MINDFUL_STORAGE_DRIVER")
	_ = v.BindEnv("storage.filePath", "MINDFUL_STORAGE_PATH")
	_ = v.BindEnv("streak.timezone", "MINDFUL_TIMEZONE")
	_ = v.BindEnv("cache.enabled", "MINDFUL_CACHE_ENABLED")
	_ = v.BindEnv("cache.size", "MINDFUL_CACHE_SIZE")
	_ = v.BindEnv("metrics.enabled", "MINDFUL_METRICS_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
