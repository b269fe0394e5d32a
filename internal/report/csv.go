package report

import (
	"encoding/csv"
	"os"

	"github.com/lanscout/internal/errors"
	"github.com/lanscout/internal/scan"
)

// WriteCSV exports one row per live host: address, hardware address,
// and the formatted open-port list.
func WriteCSV(path string, result *scan.Result, detailMaxLen int) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.NewReportError("csv", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"IP Address", "MAC Address", "Open Ports & Services"}); err != nil {
		return errors.NewReportError("csv", path, err)
	}

	for _, rec := range result.SortedHosts() {
		row := []string{
			rec.Addr.String(),
			rec.MAC,
			formatPorts(rec, detailMaxLen),
		}
		if err := w.Write(row); err != nil {
			return errors.NewReportError("csv", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.NewReportError("csv", path, err)
	}
	return nil
}
