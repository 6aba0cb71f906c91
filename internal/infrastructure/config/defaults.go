package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Game defaults
	if cfg.Game.PlayerName == "" {
		cfg.Game.PlayerName = "Driver 001"
	}
	if cfg.Game.JobPoolSize == 0 {
		cfg.Game.JobPoolSize = 10
	}
	if cfg.Game.DriveTick == 0 {
		cfg.Game.DriveTick = 500 * time.Millisecond
	}
	if cfg.Game.ProgressStep == 0 {
		cfg.Game.ProgressStep = 0.05
	}
	if cfg.Game.BillingInterval == 0 {
		cfg.Game.BillingInterval = 2 * time.Minute
	}
	if cfg.Game.LogCapacity == 0 {
		cfg.Game.LogCapacity = 50
	}
	if cfg.Game.JobRefreshInterval == 0 {
		cfg.Game.JobRefreshInterval = 10 * time.Second
	}
	if cfg.Game.Weather == "" {
		cfg.Game.Weather = "sunny"
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "trucklife.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "trucklife"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "trucklife"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
	if cfg.Logging.Rotation.MaxSize == 0 {
		cfg.Logging.Rotation.MaxSize = 100 // MB
	}
	if cfg.Logging.Rotation.MaxBackups == 0 {
		cfg.Logging.Rotation.MaxBackups = 3
	}
	if cfg.Logging.Rotation.MaxAge == 0 {
		cfg.Logging.Rotation.MaxAge = 28 // days
	}
}
