package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lanscout/internal/arp"
	"github.com/lanscout/internal/config"
	"github.com/lanscout/internal/logging"
	"github.com/lanscout/internal/probe"
	"github.com/lanscout/internal/report"
	"github.com/lanscout/internal/scan"
	"github.com/lanscout/internal/target"
)

var (
	scanPorts   string
	scanCSV     bool
	scanHTML    bool
	scanRDNS    bool
	reportsDir  string
	metricsAddr string
)

var scanCmd = &cobra.Command{
	Use:   "scan <target>",
	Short: "Sweep a host or CIDR range",
	Long: `Scan probes every host in the target (a single IPv4 address or an
IPv4 CIDR block) for liveness, resolves hardware addresses and hostnames
for the live ones, then connect-scans the given ports and identifies the
services behind them. Without --ports the well-known service ports are
scanned.`,
	Example: `  lanscout scan 192.168.1.10
  lanscout scan 192.168.1.0/24 --ports 22,80,443,8000-8010
  lanscout scan 10.0.0.0/24 --no-rdns --reports-dir /tmp/scans`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanPorts, "ports", "p", "",
		"comma-separated ports and ranges (default: well-known service ports)")
	scanCmd.Flags().BoolVar(&scanCSV, "csv", true, "write a CSV report")
	scanCmd.Flags().BoolVar(&scanHTML, "html", true, "write an HTML report")
	scanCmd.Flags().BoolVar(&scanRDNS, "rdns", true, "resolve hostnames via reverse DNS")
	scanCmd.Flags().StringVar(&reportsDir, "reports-dir", "", "base directory for report folders")
	scanCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "",
		"serve Prometheus metrics on this address while the scan runs (e.g. :9466)")
}

func runScan(cmd *cobra.Command, args []string) error {
	spec := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyScanFlags(cmd, cfg)

	tgt, err := target.Parse(spec)
	if err != nil {
		return err
	}

	ports, err := parsePortList(scanPorts)
	if err != nil {
		return fmt.Errorf("invalid port list %q: %w", scanPorts, err)
	}

	paths := report.NewPaths(cfg.Reports.Dir, spec, time.Now())
	if err := paths.Ensure(); err != nil {
		return err
	}

	logger, closeLog, err := newRunLogger(cfg, paths.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if metricsAddr != "" {
		shutdown := serveMetrics(metricsAddr, logger)
		defer shutdown()
	}

	orch := scan.New(cfg.Scanning, probe.NewPingProber(), arp.NewCommandSource(), logger)
	result := orch.Run(ctx, tgt, ports)

	report.PrintTable(os.Stdout, result, cfg.Reports.DetailMaxLen)

	writer := report.NewWriter(cfg.Reports, logger)
	if err := writer.Write(result, paths); err != nil {
		// The scan itself succeeded; a broken report target should not
		// discard it.
		fmt.Fprintf(os.Stderr, "Warning: some reports could not be written: %v\n", err)
	} else {
		fmt.Printf("Reports written to %s\n", paths.Dir)
	}
	return nil
}

// applyScanFlags folds explicit command-line flags into the loaded
// configuration. Only flags the user actually set override the file.
func applyScanFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("csv") {
		cfg.Reports.CSV = scanCSV
	}
	if cmd.Flags().Changed("html") {
		cfg.Reports.HTML = scanHTML
	}
	if cmd.Flags().Changed("rdns") {
		cfg.Scanning.ReverseDNS = scanRDNS
	}
	if reportsDir != "" {
		cfg.Reports.Dir = reportsDir
	}
}

// newRunLogger builds a logger that writes to both the configured
// output and the per-run log file inside the report folder.
func newRunLogger(cfg *config.Config, logPath string) (*logging.Logger, func(), error) {
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open run log: %w", err)
	}

	logCfg := logging.Config{
		Level:  logging.LogLevel(cfg.Logging.Level),
		Format: logging.LogFormat(cfg.Logging.Format),
	}
	if verbose {
		logCfg.Level = logging.LevelDebug
	}

	logger := logging.NewWithWriter(logCfg, io.MultiWriter(os.Stderr, file))
	return logger, func() { _ = file.Close() }, nil
}

// parsePortList expands a comma-separated list of ports and inclusive
// ranges ("22,80,8000-8010") into a sorted, deduplicated port slice. An
// empty list means the caller's default applies.
func parsePortList(list string) ([]uint16, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}

	seen := make(map[uint16]bool)
	var ports []uint16
	add := func(p uint64) {
		port := uint16(p)
		if !seen[port] {
			seen[port] = true
			ports = append(ports, port)
		}
	}

	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start, err := parsePort(lo)
			if err != nil {
				return nil, err
			}
			end, err := parsePort(hi)
			if err != nil {
				return nil, err
			}
			if start > end {
				return nil, fmt.Errorf("range %q is inverted", part)
			}
			for p := start; p <= end; p++ {
				add(p)
			}
			continue
		}
		p, err := parsePort(part)
		if err != nil {
			return nil, err
		}
		add(p)
	}

	slices.Sort(ports)
	return ports, nil
}

func parsePort(s string) (uint64, error) {
	p, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil || p == 0 {
		return 0, fmt.Errorf("%q is not a valid port", s)
	}
	return p, nil
}
