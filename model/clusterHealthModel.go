package model

import "time"

// ClusterCredential is one monitored cluster as resolved from the
// configuration source. Slice order defines report order.
type ClusterCredential struct {
	Username    string `mapstructure:"username" json:"username"`
	Password    string `mapstructure:"password" json:"password"`
	BaseURL     string `mapstructure:"baseUrl" json:"baseUrl"`
	DisplayName string `mapstructure:"displayName" json:"displayName"`
}

// Response shape of GET {baseURL}/pools/nodes.
type PoolNodes struct {
	Nodes []PoolNode `json:"nodes"`
}

type PoolNode struct {
	Hostname string `json:"hostname"`
}

// Response shape of GET http://{hostname}/nodes/self.
type NodeDetail struct {
	Hostname         string           `json:"hostname"`
	Status           string           `json:"status"`
	Services         []string         `json:"services"`
	MemoryTotal      int64            `json:"memoryTotal"`
	MemoryFree       int64            `json:"memoryFree"`
	Uptime           string           `json:"uptime"`
	SystemStats      SystemStats      `json:"systemStats"`
	AvailableStorage AvailableStorage `json:"availableStorage"`
}

type SystemStats struct {
	MemTotal  int64 `json:"mem_total"`
	MemFree   int64 `json:"mem_free"`
	SwapTotal int64 `json:"swap_total"`
	SwapUsed  int64 `json:"swap_used"`
}

type AvailableStorage struct {
	HDD []StorageInfo `json:"hdd"`
}

type StorageInfo struct {
	Path         string `json:"path"`
	UsagePercent int    `json:"usagePercent"`
}

// MetricRecord is one row of the health dataset. Metric fields hold their
// display form ("74%", "12 days(s)"); placeholder rows leave them empty.
type MetricRecord struct {
	Date     string `json:"date"`
	Period   string `json:"period"`
	Cluster  string `json:"cluster"`
	Hostname string `json:"hostname"`
	Health   string `json:"health"`
	DiskUtil string `json:"diskUtil"`
	MemUtil  string `json:"memUtil"`
	SwapUtil string `json:"swapUtil"`
	Uptime   string `json:"uptime"`
	Services string `json:"services"`
}

// Fields returns the row in CSV column order.
func (r MetricRecord) Fields() []string {
	return []string{
		r.Date, r.Period, r.Cluster,
		r.Hostname, r.Health,
		r.DiskUtil, r.MemUtil, r.SwapUtil,
		r.Uptime, r.Services,
	}
}

// HealthSnapshot is the payload published to NATS after a run.
type HealthSnapshot struct {
	Time    time.Time      `json:"time"`
	Records []MetricRecord `json:"records"`
}
