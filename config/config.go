package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

const (
	defaultPort                  = 9095
	defaultRoundRobinTimeQuantum = 4
	defaultMinTrainingSamples    = 1
	defaultRidgeLambda           = 1.0
)

type SchedulerConfig struct {
	Port                  int
	RoundRobinTimeQuantum int
	MinTrainingSamples    int
	RidgeLambda           float64
	MetricsEnabled        bool
	Logger                LoggerConfig
}

type LoggerConfig struct {
	Level    string // debug, info, warn, error
	Output   string // console, file
	FilePath string
}

var once sync.Once
var config *SchedulerConfig

// GetSchedulerConfig loads config.yaml from the working directory (or the
// file named by SCHEDSIM_CONFIG) once. A missing config.yaml leaves the defaults.
func GetSchedulerConfig() *SchedulerConfig {
	once.Do(func() {
		v := viper.New()
		setDefaults(v)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
		if path := os.Getenv("SCHEDSIM_CONFIG"); path != "" {
			v.SetConfigFile(path)
		}
		v.SetEnvPrefix("SCHEDSIM")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				log.Fatalln(err)
			}
		}
		config = load(v)
	})

	return config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", defaultPort)
	v.SetDefault("scheduler.round_robin.time_quantum", defaultRoundRobinTimeQuantum)
	v.SetDefault("prediction.min_training_samples", defaultMinTrainingSamples)
	v.SetDefault("prediction.ridge_lambda", defaultRidgeLambda)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output", "console")
	v.SetDefault("logger.file.path", "logs/schedsim.log")
}

func load(v *viper.Viper) *SchedulerConfig {
	cfg := &SchedulerConfig{
		Port:                  v.GetInt("port"),
		RoundRobinTimeQuantum: v.GetInt("scheduler.round_robin.time_quantum"),
		MinTrainingSamples:    v.GetInt("prediction.min_training_samples"),
		RidgeLambda:           v.GetFloat64("prediction.ridge_lambda"),
		MetricsEnabled:        v.GetBool("metrics.enabled"),
		Logger: LoggerConfig{
			Level:    v.GetString("logger.level"),
			Output:   v.GetString("logger.output"),
			FilePath: v.GetString("logger.file.path"),
		},
	}

	// out-of-range values fall back to defaults
	if cfg.RoundRobinTimeQuantum < 1 {
		cfg.RoundRobinTimeQuantum = defaultRoundRobinTimeQuantum
	}
	if cfg.MinTrainingSamples < 1 {
		cfg.MinTrainingSamples = defaultMinTrainingSamples
	}
	if cfg.RidgeLambda <= 0 {
		cfg.RidgeLambda = defaultRidgeLambda
	}
	return cfg
}
