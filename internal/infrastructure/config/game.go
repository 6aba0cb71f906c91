package config

import "time"

// GameConfig holds the career settings of a play session
type GameConfig struct {
	// Driver name shown in the profile
	PlayerName string `mapstructure:"player_name"`

	// Cash at career start; 0 uses the world catalog value
	StartingMoney float64 `mapstructure:"starting_money" validate:"min=0"`

	// Offers kept on the job board
	JobPoolSize int `mapstructure:"job_pool_size" validate:"min=1,max=100"`

	// Random seed for job generation; 0 seeds from the clock
	Seed int64 `mapstructure:"seed"`

	// Wall time between driving progress steps
	DriveTick time.Duration `mapstructure:"drive_tick" validate:"min=1ms"`

	// Progress added per driving tick (0-1]
	ProgressStep float64 `mapstructure:"progress_step" validate:"gt=0,lte=1"`

	// Wall time of one simulated month of loan billing
	BillingInterval time.Duration `mapstructure:"billing_interval" validate:"min=1ms"`

	// Maximum entries kept in the event log
	LogCapacity int `mapstructure:"log_capacity" validate:"min=1"`

	// Deduct fuel and maintenance from the payout on delivery
	DeductTripCosts bool `mapstructure:"deduct_trip_costs"`

	// Minimum wall time between job board refreshes; 0 disables throttling
	JobRefreshInterval time.Duration `mapstructure:"job_refresh_interval" validate:"min=0"`

	// Weather label of the session
	Weather string `mapstructure:"weather" validate:"weather"`
}
