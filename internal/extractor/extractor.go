package extractor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Shadab909/couchbase-cluster-report-automation/internal/util"
	"github.com/Shadab909/couchbase-cluster-report-automation/model"
)

// Mount point of the Couchbase data volume; only this storage entry's usage
// lands in the report.
const dataMountPath = "/opt/appdata"

var serviceNames = map[string]string{
	"kv":       "Data",
	"index":    "Index",
	"n1ql":     "Query",
	"fts":      "Search",
	"cbas":     "Analytics",
	"eventing": "Eventing",
}

// Extract maps one node's detail response into a dataset row. Missing or
// malformed fields degrade to 0 or empty, never to an error.
func Extract(detail model.NodeDetail, date, period, cluster string) model.MetricRecord {
	record := model.MetricRecord{
		Date:     date,
		Period:   period,
		Cluster:  cluster,
		Hostname: util.ShortHostname(detail.Hostname),
		Health:   detail.Status,
	}

	names := make([]string, 0, len(detail.Services))
	for _, code := range detail.Services {
		if name, ok := serviceNames[code]; ok {
			names = append(names, name)
		} else {
			names = append(names, code)
		}
	}
	record.Services = strings.Join(names, "+")

	// systemStats reports the same physical quantity as the top-level
	// memoryTotal/memoryFree pair; older API shapes omit the nested block.
	memTotal, memFree := detail.SystemStats.MemTotal, detail.SystemStats.MemFree
	if memTotal <= 0 {
		memTotal, memFree = detail.MemoryTotal, detail.MemoryFree
	}
	record.MemUtil = strconv.FormatInt(percentOf(memTotal-memFree, memTotal), 10) + "%"
	record.SwapUtil = strconv.FormatInt(percentOf(detail.SystemStats.SwapUsed, detail.SystemStats.SwapTotal), 10) + "%"

	for _, disk := range detail.AvailableStorage.HDD {
		if disk.Path == dataMountPath {
			record.DiskUtil = strconv.Itoa(disk.UsagePercent) + "%"
			break
		}
	}

	record.Uptime = fmt.Sprintf("%d days(s)", uptimeDays(detail.Uptime))

	return record
}

// ErrorRecord is the single placeholder row for a cluster whose node list
// could not be fetched.
func ErrorRecord(date, period, cluster string) model.MetricRecord {
	return model.MetricRecord{
		Date:    date,
		Period:  period,
		Cluster: cluster,
		Health:  "Error",
	}
}

// FailureRecord is the single placeholder row for a node whose detail could
// not be fetched.
func FailureRecord(date, period, cluster, host string) model.MetricRecord {
	return model.MetricRecord{
		Date:     date,
		Period:   period,
		Cluster:  cluster,
		Hostname: util.ShortHostname(host),
		Health:   "Failure",
	}
}

func percentOf(used, total int64) int64 {
	if total <= 0 {
		return 0
	}
	return used * 100 / total
}

func uptimeDays(uptime string) int64 {
	seconds, err := strconv.ParseInt(strings.TrimSpace(uptime), 10, 64)
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds / 86400
}
