// Package cli implements the lanscout command-line interface: a root
// command carrying configuration and logging setup, and the scan
// subcommand that runs a sweep.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lanscout/internal/config"
	"github.com/lanscout/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// Build information - these will be set by ldflags during build.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "lanscout",
	Short: "LAN host and service scanner",
	Long: `Lanscout sweeps a local network in three phases: an ICMP liveness
probe over the target range, ARP and reverse-DNS resolution of the live
hosts, and a TCP connect scan with service detection on the open ports.
Results are printed as a table and written as CSV and HTML reports.`,
	Version: getVersion(),
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind verbose flag: %v\n", err)
	}
}

// initConfig reads in the config file and matching environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("LANSCOUT")

	setConfigDefaults()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}

	initLogging()
}

// setConfigDefaults mirrors config.Default so viper lookups agree with
// the typed configuration.
func setConfigDefaults() {
	viper.SetDefault("scanning.probe_timeout", config.DefaultProbeTimeout)
	viper.SetDefault("scanning.probe_workers", config.DefaultProbeWorkers)
	viper.SetDefault("scanning.resolve_timeout", config.DefaultResolveTimeout)
	viper.SetDefault("scanning.resolve_workers", config.DefaultResolveWorkers)
	viper.SetDefault("scanning.connect_timeout", config.DefaultConnectTimeout)
	viper.SetDefault("scanning.scan_workers", config.DefaultScanWorkers)
	viper.SetDefault("scanning.detect_timeout", config.DefaultDetectTimeout)
	viper.SetDefault("scanning.reverse_dns", true)

	viper.SetDefault("reports.dir", "reports")
	viper.SetDefault("reports.csv", true)
	viper.SetDefault("reports.html", true)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.output", "stderr")
}

// getVersion returns the version string.
func getVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime)
}

// SetVersion sets the version information (called from main).
func SetVersion(v, c, bt string) {
	version = v
	commit = c
	buildTime = bt
	rootCmd.Version = getVersion()
}

// initLogging initializes structured logging based on configuration.
func initLogging() {
	cfg, err := config.Load(viper.ConfigFileUsed())
	if err != nil {
		logging.SetDefault(logging.NewDefault())
		return
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:     logging.LogLevel(level),
		Format:    logging.LogFormat(cfg.Logging.Format),
		Output:    cfg.Logging.Output,
		AddSource: level == "debug",
	})
	if err != nil {
		logger = logging.NewDefault()
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	logging.SetDefault(logger)
}

// loadConfig returns the typed configuration for a command run.
func loadConfig() (*config.Config, error) {
	return config.Load(viper.ConfigFileUsed())
}
