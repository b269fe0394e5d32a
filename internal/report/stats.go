package report

import (
	"sort"

	"github.com/lanscout/internal/scan"
)

// Stats summarizes a scan result for report headers.
type Stats struct {
	ActiveHosts    int
	TotalOpenPorts int
	ServiceTypes   int
	MostCommon     string
	ServiceCounts  map[string]int
}

// ComputeStats tallies services across all hosts. Ties for the most
// common service break toward the lexically smaller name so repeated
// runs over the same result agree.
func ComputeStats(result *scan.Result) Stats {
	counts := make(map[string]int)
	total := 0
	for _, rec := range result.Hosts {
		for _, p := range rec.Ports {
			counts[p.Service]++
			total++
		}
	}

	most := ""
	for _, name := range sortedServiceNames(counts) {
		if most == "" || counts[name] > counts[most] {
			most = name
		}
	}

	return Stats{
		ActiveHosts:    len(result.Hosts),
		TotalOpenPorts: total,
		ServiceTypes:   len(counts),
		MostCommon:     most,
		ServiceCounts:  counts,
	}
}

func sortedServiceNames(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
