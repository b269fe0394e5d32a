// Package report renders scan results as CSV and HTML files inside a
// per-run folder, plus a summary table on the terminal. Report failures
// are never fatal to a scan: the results already exist in memory, so a
// failed artifact is logged and the remaining artifacts still get
// written.
package report

import (
	goerrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lanscout/internal/config"
	"github.com/lanscout/internal/errors"
	"github.com/lanscout/internal/logging"
	"github.com/lanscout/internal/scan"
)

const (
	reportDirPerm = 0750
	timeLayout    = "20060102_150405"
)

// Paths names the artifacts of one run. Everything lives in a single
// folder so a run can be archived or deleted as a unit.
type Paths struct {
	Dir  string
	CSV  string
	HTML string
	Log  string
}

// NewPaths derives the per-run folder and file names from the target
// spec, e.g. reports/192.168.1.0_24_scan_20260826_153000/. Slashes in
// the spec are flattened because they cannot appear in file names.
func NewPaths(baseDir, targetSpec string, now time.Time) Paths {
	sanitized := strings.ReplaceAll(targetSpec, "/", "_")
	stem := fmt.Sprintf("%s_scan_%s", sanitized, now.Format(timeLayout))
	dir := filepath.Join(baseDir, stem)
	return Paths{
		Dir:  dir,
		CSV:  filepath.Join(dir, stem+".csv"),
		HTML: filepath.Join(dir, stem+".html"),
		Log:  filepath.Join(dir, stem+".log"),
	}
}

// Ensure creates the run folder.
func (p Paths) Ensure() error {
	if err := os.MkdirAll(p.Dir, reportDirPerm); err != nil {
		return errors.NewReportError("directory", p.Dir, err)
	}
	return nil
}

// Writer renders the configured artifacts for a result.
type Writer struct {
	cfg config.ReportsConfig
	log *logging.Logger
}

func NewWriter(cfg config.ReportsConfig, log *logging.Logger) *Writer {
	return &Writer{cfg: cfg, log: log.WithComponent("report")}
}

// Write renders every enabled artifact into paths. Each artifact fails
// independently; the returned error joins whatever went wrong so the
// caller can surface it without losing the run.
func (w *Writer) Write(result *scan.Result, paths Paths) error {
	var errs []error

	if w.cfg.CSV {
		if err := WriteCSV(paths.CSV, result, w.cfg.DetailMaxLen); err != nil {
			w.log.Error("CSV export failed", "path", paths.CSV, "error", err)
			errs = append(errs, err)
		} else {
			w.log.Info("CSV report written", "path", paths.CSV)
		}
	}

	if w.cfg.HTML {
		if err := WriteHTML(paths.HTML, result, w.cfg.DetailMaxLen); err != nil {
			w.log.Error("HTML export failed", "path", paths.HTML, "error", err)
			errs = append(errs, err)
		} else {
			w.log.Info("HTML report written", "path", paths.HTML)
		}
	}

	return goerrors.Join(errs...)
}

// truncateDetail caps a detail string for display. Stored results keep
// the full text; only rendering truncates.
func truncateDetail(detail string, maxLen int) string {
	if maxLen <= 0 || len(detail) <= maxLen {
		return detail
	}
	return detail[:maxLen] + "..."
}

// formatPorts renders a host's open ports as "port (service) [detail]"
// entries joined by commas, or "none" for a host with nothing open.
func formatPorts(rec *scan.HostRecord, detailMaxLen int) string {
	if len(rec.Ports) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(rec.Ports))
	for _, p := range rec.Ports {
		entry := fmt.Sprintf("%d", p.Port)
		if p.Service != "" {
			entry += fmt.Sprintf(" (%s)", p.Service)
		}
		if p.Detail != "" {
			entry += fmt.Sprintf(" [%s]", truncateDetail(p.Detail, detailMaxLen))
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, ", ")
}
