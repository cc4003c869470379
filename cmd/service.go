package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mkorolev/skill-scout/internal/aggregator"
	"github.com/mkorolev/skill-scout/internal/cache"
	"github.com/mkorolev/skill-scout/internal/domain"
	"github.com/mkorolev/skill-scout/internal/logger"
	"github.com/mkorolev/skill-scout/internal/provider"
	"github.com/mkorolev/skill-scout/internal/provider/adzuna"
	"github.com/mkorolev/skill-scout/internal/provider/coursera"
	"github.com/mkorolev/skill-scout/internal/provider/remotive"
	"github.com/mkorolev/skill-scout/internal/provider/synthetic"
	"github.com/mkorolev/skill-scout/internal/provider/udemy"
	"github.com/mkorolev/skill-scout/internal/ratelimit"
	"github.com/mkorolev/skill-scout/internal/secrets"
)

const (
	defaultCacheTTL         = time.Hour
	defaultRateLimitPerHour = 60
)

// newService assembles the aggregation service from the resolved config.
// Sources without credentials come up as synthetic sample adapters so the
// CLI works out of the box.
func newService() (*aggregator.Service, *zap.Logger, error) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}

	config, err := getConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("getting a config: %w", err)
	}

	adapters, limits := buildAdapters(zlog, config.Providers)

	ttl := defaultCacheTTL
	var remote cache.Remote
	if config.Cache != nil {
		if config.Cache.TTLSeconds > 0 {
			ttl = time.Duration(config.Cache.TTLSeconds) * time.Second
		}
		if config.Cache.RedisAddr != "" {
			remote = cache.NewRedis(config.Cache.RedisAddr, config.Cache.RedisPassword, config.Cache.RedisDB)
			zlog.Info("shared cache tier enabled", zap.String("addr", config.Cache.RedisAddr))
		}
	}

	aggCfg := aggregator.Config{}
	if config.Aggregation != nil {
		aggCfg = aggregator.Config{
			AggregationTimeout: time.Duration(config.Aggregation.TimeoutSeconds) * time.Second,
			DefaultLimit:       config.Aggregation.DefaultLimit,
			TrendsSampleSize:   config.Aggregation.TrendsSampleSize,
			RecommendLimit:     config.Aggregation.RecommendLimit,
		}
	}

	svc := aggregator.New(
		zlog,
		adapters,
		ratelimit.New(limits),
		cache.NewTiered(zlog, remote, ttl),
		aggCfg,
	)

	return svc, zlog, nil
}

func buildAdapters(zlog *zap.Logger, pc *ProvidersConfig) ([]provider.Adapter, map[string]int) {
	if pc == nil {
		pc = &ProvidersConfig{}
	}

	limits := make(map[string]int)
	var adapters []provider.Adapter

	add := func(name string, rate int, a provider.Adapter) {
		if a.Configured() {
			limits[name] = rateOrDefault(rate)
		} else {
			zlog.Info("provider not configured, serving samples", zap.String("provider", name))
		}
		adapters = append(adapters, a)
	}

	if pc.Coursera != nil {
		add("coursera", pc.Coursera.RateLimitPerHour, coursera.New())
	} else {
		add("coursera", 0, synthetic.NewAdapter("coursera", domain.KindCourse))
	}

	udemyID, udemySecret := "", ""
	if pc.Udemy != nil {
		udemyID = optionalSecret(zlog, "udemy client id", pc.Udemy.ClientID, pc.Udemy.ClientIDFile)
		udemySecret = optionalSecret(zlog, "udemy client secret", pc.Udemy.ClientSecret, pc.Udemy.ClientSecretFile)
	}
	if udemyID != "" && udemySecret != "" {
		add("udemy", pc.Udemy.RateLimitPerHour, udemy.New(udemyID, udemySecret))
	} else {
		add("udemy", 0, synthetic.NewAdapter("udemy", domain.KindCourse))
	}

	adzunaID, adzunaKey := "", ""
	if pc.Adzuna != nil {
		adzunaID = optionalSecret(zlog, "adzuna app id", pc.Adzuna.AppID, pc.Adzuna.AppIDFile)
		adzunaKey = optionalSecret(zlog, "adzuna app key", pc.Adzuna.AppKey, pc.Adzuna.AppKeyFile)
	}
	if adzunaID != "" && adzunaKey != "" {
		add("adzuna", pc.Adzuna.RateLimitPerHour, adzuna.New(adzunaID, adzunaKey, pc.Adzuna.Country))
	} else {
		add("adzuna", 0, synthetic.NewAdapter("adzuna", domain.KindJob))
	}

	if pc.Remotive != nil {
		add("remotive", pc.Remotive.RateLimitPerHour, remotive.New())
	} else {
		add("remotive", 0, synthetic.NewAdapter("remotive", domain.KindJob))
	}

	return adapters, limits
}

func optionalSecret(zlog *zap.Logger, name, value, file string) string {
	secret, ok, err := secrets.LoadOptional(secrets.Source{Name: name, Value: value, File: file})
	if err != nil {
		zlog.Warn("credential not usable", zap.String("secret", name), zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return secret
}

func rateOrDefault(rate int) int {
	if rate > 0 {
		return rate
	}
	return defaultRateLimitPerHour
}
