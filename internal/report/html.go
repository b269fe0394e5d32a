package report

import (
	"html/template"
	"os"
	"time"

	"github.com/lanscout/internal/errors"
	"github.com/lanscout/internal/scan"
)

type htmlHost struct {
	Addr     string
	MAC      string
	Hostname string
	Ports    string
}

type htmlData struct {
	Target    string
	RunID     string
	StartedAt string
	Duration  string
	Partial   bool
	Stats     Stats
	Services  []htmlServiceCount
	Hosts     []htmlHost
}

type htmlServiceCount struct {
	Service string
	Count   int
}

// WriteHTML renders a self-contained summary page: run header, headline
// statistics, service distribution, and the per-host table.
func WriteHTML(path string, result *scan.Result, detailMaxLen int) error {
	stats := ComputeStats(result)

	data := htmlData{
		Target:    result.Target,
		RunID:     result.RunID,
		StartedAt: result.StartedAt.Format("2006-01-02 15:04:05"),
		Duration:  result.Duration().Round(time.Millisecond).String(),
		Partial:   result.Partial,
		Stats:     stats,
	}
	for _, name := range sortedServiceNames(stats.ServiceCounts) {
		data.Services = append(data.Services, htmlServiceCount{
			Service: name,
			Count:   stats.ServiceCounts[name],
		})
	}
	for _, rec := range result.SortedHosts() {
		data.Hosts = append(data.Hosts, htmlHost{
			Addr:     rec.Addr.String(),
			MAC:      rec.MAC,
			Hostname: rec.Hostname,
			Ports:    formatPorts(rec, detailMaxLen),
		})
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewReportError("html", path, err)
	}
	defer file.Close()

	if err := reportTemplate.Execute(file, data); err != nil {
		return errors.NewReportError("html", path, err)
	}
	return nil
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Scan report for {{.Target}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; margin: 2rem; color: #1f2933; }
h1 { font-size: 1.4rem; }
table { border-collapse: collapse; margin: 1rem 0; width: 100%; }
th, td { border: 1px solid #cbd2d9; padding: 0.4rem 0.7rem; text-align: left; font-size: 0.9rem; }
th { background: #f5f7fa; }
.cards { display: flex; gap: 1rem; flex-wrap: wrap; margin: 1rem 0; }
.card { border: 1px solid #cbd2d9; border-radius: 6px; padding: 0.8rem 1.2rem; min-width: 10rem; }
.card .value { font-size: 1.5rem; font-weight: 600; }
.card .label { font-size: 0.8rem; color: #52606d; }
.partial { color: #b44d12; font-weight: 600; }
footer { margin-top: 2rem; font-size: 0.75rem; color: #7b8794; }
</style>
</head>
<body>
<h1>Network scan report &mdash; {{.Target}}</h1>
<p>Started {{.StartedAt}}, took {{.Duration}}.{{if .Partial}} <span class="partial">Scan was cancelled; results are partial.</span>{{end}}</p>

<div class="cards">
  <div class="card"><div class="value">{{.Stats.ActiveHosts}}</div><div class="label">Active hosts</div></div>
  <div class="card"><div class="value">{{.Stats.TotalOpenPorts}}</div><div class="label">Open ports</div></div>
  <div class="card"><div class="value">{{.Stats.ServiceTypes}}</div><div class="label">Service types</div></div>
  <div class="card"><div class="value">{{if .Stats.MostCommon}}{{.Stats.MostCommon}}{{else}}&ndash;{{end}}</div><div class="label">Most common service</div></div>
</div>

{{if .Services}}
<h2>Service distribution</h2>
<table>
<tr><th>Service</th><th>Open ports</th></tr>
{{range .Services}}<tr><td>{{.Service}}</td><td>{{.Count}}</td></tr>
{{end}}</table>
{{end}}

<h2>Hosts</h2>
<table>
<tr><th>IP address</th><th>MAC address</th><th>Hostname</th><th>Open ports &amp; services</th></tr>
{{range .Hosts}}<tr><td>{{.Addr}}</td><td>{{.MAC}}</td><td>{{.Hostname}}</td><td>{{.Ports}}</td></tr>
{{end}}</table>

<footer>Run {{.RunID}}</footer>
</body>
</html>
`))
