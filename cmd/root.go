package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "skill-scout"
)

type Config struct {
	Cache       *CacheConfig       `mapstructure:"cache"`
	Aggregation *AggregationConfig `mapstructure:"aggregation"`
	Providers   *ProvidersConfig   `mapstructure:"providers"`
}

type CacheConfig struct {
	TTLSeconds    int    `mapstructure:"ttl-seconds"`
	RedisAddr     string `mapstructure:"redis-addr"`
	RedisPassword string `mapstructure:"redis-password"`
	RedisDB       int    `mapstructure:"redis-db"`
}

type AggregationConfig struct {
	TimeoutSeconds   int `mapstructure:"timeout-seconds"`
	DefaultLimit     int `mapstructure:"default-limit"`
	TrendsSampleSize int `mapstructure:"trends-sample-size"`
	RecommendLimit   int `mapstructure:"recommend-limit"`
}

type ProvidersConfig struct {
	Coursera *SourceConfig `mapstructure:"coursera"`
	Udemy    *UdemyConfig  `mapstructure:"udemy"`
	Adzuna   *AdzunaConfig `mapstructure:"adzuna"`
	Remotive *SourceConfig `mapstructure:"remotive"`
}

type SourceConfig struct {
	RateLimitPerHour int `mapstructure:"rate-limit-per-hour"`
}

type UdemyConfig struct {
	SourceConfig     `mapstructure:",squash"`
	ClientID         string `mapstructure:"client-id"`
	ClientIDFile     string `mapstructure:"client-id-file"`
	ClientSecret     string `mapstructure:"client-secret"`
	ClientSecretFile string `mapstructure:"client-secret-file"`
}

type AdzunaConfig struct {
	SourceConfig `mapstructure:",squash"`
	AppID        string `mapstructure:"app-id"`
	AppIDFile    string `mapstructure:"app-id-file"`
	AppKey       string `mapstructure:"app-key"`
	AppKeyFile   string `mapstructure:"app-key-file"`
	Country      string `mapstructure:"country"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "skill-scout aggregates course catalogs and job boards into one ranked, cached view",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range map[string]string{
		"cache.redis-addr":              "SKILLSCOUT_REDIS_ADDR",
		"cache.redis-password":          "SKILLSCOUT_REDIS_PASSWORD",
		"providers.udemy.client-id":     "UDEMY_CLIENT_ID",
		"providers.udemy.client-secret": "UDEMY_CLIENT_SECRET",
		"providers.adzuna.app-id":       "ADZUNA_APP_ID",
		"providers.adzuna.app-key":      "ADZUNA_APP_KEY",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is skill-scout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional: without one every source runs in its
	// synthetic sample mode.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}
	if config == nil {
		config = &Config{}
	}
	return config, nil
}
