package cli

import (
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage Truck Life configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (TL_* prefix, e.g. TL_GAME_SEED=42)
2. Config file (config.yaml)
3. Default values

Examples:
  trucklife config show
  trucklife config init --output config.yaml`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.Default()
			}
			writeConfig(out, cfg)
			return nil
		},
	}
}

// newConfigInitCommand creates the config init subcommand
func newConfigInitCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &config.Config{}
			config.SetDefaults(cfg)

			data, err := yaml.Marshal(configDocument(cfg))
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			if output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if _, err := os.Stat(output); err == nil {
				return fmt.Errorf("%s already exists", output)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "config.yaml", "Destination file, - for stdout")

	return cmd
}

func writeConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Truck Life Configuration")
	fmt.Fprintln(out, "========================")

	fmt.Fprintln(out, "\nGame:")
	fmt.Fprintf(out, "  Player name:      %s\n", cfg.Game.PlayerName)
	fmt.Fprintf(out, "  Starting money:   %.2f\n", cfg.Game.StartingMoney)
	fmt.Fprintf(out, "  Job pool size:    %d\n", cfg.Game.JobPoolSize)
	fmt.Fprintf(out, "  Seed:             %d\n", cfg.Game.Seed)
	fmt.Fprintf(out, "  Drive tick:       %s (step %.2f)\n", cfg.Game.DriveTick, cfg.Game.ProgressStep)
	fmt.Fprintf(out, "  Billing interval: %s\n", cfg.Game.BillingInterval)
	fmt.Fprintf(out, "  Refresh interval: %s\n", cfg.Game.JobRefreshInterval)
	fmt.Fprintf(out, "  Trip costs:       %s\n", map[bool]string{true: "deducted", false: "informational"}[cfg.Game.DeductTripCosts])

	fmt.Fprintln(out, "\nDatabase:")
	fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
	switch {
	case cfg.Database.URL != "":
		fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
	case cfg.Database.Type == "sqlite":
		fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
	default:
		fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
		fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
		fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
		fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
	}
	fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

	fmt.Fprintln(out, "\nMetrics:")
	fmt.Fprintf(out, "  Enabled:          %s\n", yesNo(cfg.Metrics.Enabled))
	fmt.Fprintf(out, "  Address:          %s%s\n", cfg.Metrics.Addr(), cfg.Metrics.Path)

	fmt.Fprintln(out, "\nLogging:")
	fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
	fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)
}

// configDocument mirrors the keys LoadConfig reads
func configDocument(cfg *config.Config) map[string]interface{} {
	return map[string]interface{}{
		"game": map[string]interface{}{
			"player_name":          cfg.Game.PlayerName,
			"starting_money":       cfg.Game.StartingMoney,
			"job_pool_size":        cfg.Game.JobPoolSize,
			"seed":                 cfg.Game.Seed,
			"drive_tick":           cfg.Game.DriveTick.String(),
			"progress_step":        cfg.Game.ProgressStep,
			"billing_interval":     cfg.Game.BillingInterval.String(),
			"log_capacity":         cfg.Game.LogCapacity,
			"deduct_trip_costs":    cfg.Game.DeductTripCosts,
			"job_refresh_interval": cfg.Game.JobRefreshInterval.String(),
			"weather":              cfg.Game.Weather,
		},
		"database": map[string]interface{}{
			"type": cfg.Database.Type,
			"path": cfg.Database.Path,
		},
		"logging": map[string]interface{}{
			"level":  cfg.Logging.Level,
			"format": cfg.Logging.Format,
			"output": cfg.Logging.Output,
		},
		"metrics": map[string]interface{}{
			"enabled": cfg.Metrics.Enabled,
			"host":    cfg.Metrics.Host,
			"port":    cfg.Metrics.Port,
			"path":    cfg.Metrics.Path,
		},
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
