package config

// LoggingConfig controls the structured diagnostic log. The in-game event
// log is separate and always kept by the session.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// stderr keeps diagnostics off the console the player is typing into
	Output   string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`

	Rotation RotationConfig `mapstructure:"rotation"`

	// Adds file:line to every record
	IncludeCaller bool `mapstructure:"include_caller"`
}

// RotationConfig is handed to lumberjack when logging to a file
type RotationConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	MaxSize    int  `mapstructure:"max_size" validate:"min=1"` // MB
	MaxBackups int  `mapstructure:"max_backups" validate:"min=0"`
	MaxAge     int  `mapstructure:"max_age" validate:"min=0"` // days
	Compress   bool `mapstructure:"compress"`
}
