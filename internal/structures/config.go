package structures

import "time"

type Server struct {
	Host string `yaml:"host" mapstructure:"host" validate:"required"`
	Port int    `yaml:"port" mapstructure:"port" validate:"required|uint|min:1|max:65535"`
}

type StorageConfig struct {
	Driver       string        `yaml:"driver" mapstructure:"driver" validate:"required|in:memory,file,sqlite"`
	FilePath     string        `yaml:"filePath" mapstructure:"filePath" validate:"unixPath"`
	SyncWrites   bool          `yaml:"syncWrites" mapstructure:"syncWrites"`
	SaveInterval time.Duration `yaml:"saveInterval" mapstructure:"saveInterval"`
}

type LoggerConfig struct {
	Level string `yaml:"level" mapstructure:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" mapstructure:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" mapstructure:"dir" validate:"required|unixPath"`
}

type StreakConfig struct {
	Timezone     string        `yaml:"timezone" mapstructure:"timezone"`
	CheckAt      string        `yaml:"checkAt" mapstructure:"checkAt" validate:"required|clock"`
	InitialDelay time.Duration `yaml:"initialDelay" mapstructure:"initialDelay"`
}

type StatsConfig struct {
	MinutesPerBlock float64 `yaml:"minutesPerBlock" mapstructure:"minutesPerBlock" validate:"required"`
}

type RuleSetConfig struct {
	ID      string   `yaml:"id" mapstructure:"id" validate:"required"`
	Enabled bool     `yaml:"enabled" mapstructure:"enabled"`
	Domains []string `yaml:"domains" mapstructure:"domains"`
}

type BlockingConfig struct {
	RuleSets []RuleSetConfig `yaml:"ruleSets" mapstructure:"ruleSets"`
}

type QuotesConfig struct {
	FilePath string `yaml:"filePath" mapstructure:"filePath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Size    int           `yaml:"size" mapstructure:"size"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server         `yaml:"webServer" mapstructure:"webServer"`
	Storage   StorageConfig  `yaml:"storage" mapstructure:"storage"`
	Logger    LoggerConfig   `yaml:"logger" mapstructure:"logger"`
	Streak    StreakConfig   `yaml:"streak" mapstructure:"streak"`
	Stats     StatsConfig    `yaml:"stats" mapstructure:"stats"`
	Blocking  BlockingConfig `yaml:"blocking" mapstructure:"blocking"`
	Quotes    QuotesConfig   `yaml:"quotes" mapstructure:"quotes"`
	Cache     CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics" mapstructure:"metrics"`
}
