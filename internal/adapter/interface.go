package adapter

import (
	"github.com/Shadab909/couchbase-cluster-report-automation/model"
)

type ClusterConfigAdapter interface {
	GetClusterInfos() ([]model.ClusterCredential, error)
}
