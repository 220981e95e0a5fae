package adapter

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Shadab909/couchbase-cluster-report-automation/config"
	"github.com/Shadab909/couchbase-cluster-report-automation/internal/vault"
	"github.com/Shadab909/couchbase-cluster-report-automation/model"
)

// VaultClusterInfoClient is the slice of the vault client the adapter needs.
type VaultClusterInfoClient interface {
	GetClusterInfos() ([]model.ClusterCredential, error)
}

var newVaultClient = func(cfg *vault.Config) (VaultClusterInfoClient, error) {
	return vault.NewClient(cfg)
}

// GetClusterInfos resolves the monitored clusters from Vault when a Vault
// address is configured, otherwise from the clusters file. A missing or
// unparsable source is a configuration error and aborts the run.
func GetClusterInfos() ([]model.ClusterCredential, error) {
	if config.Env.VaultUrl != "" {
		vaultClient, err := newVaultClient(vault.ConfigFromEnv())
		if err != nil {
			return nil, fmt.Errorf("vault client creation failed: %w", err)
		}
		return getClusterInfosFrom(vaultClient)
	}
	return loadClustersFile(config.Env.ClustersFile)
}

func getClusterInfosFrom(client VaultClusterInfoClient) ([]model.ClusterCredential, error) {
	infos, err := client.GetClusterInfos()
	if err != nil {
		return nil, fmt.Errorf("cluster info lookup failed: %w", err)
	}
	return infos, nil
}

func loadClustersFile(path string) ([]model.ClusterCredential, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("clusters file read failed: %w", err)
	}

	var out struct {
		Clusters []model.ClusterCredential `mapstructure:"clusters"`
	}
	if err := v.Unmarshal(&out); err != nil {
		return nil, fmt.Errorf("clusters file parse failed: %w", err)
	}
	if len(out.Clusters) == 0 {
		return nil, fmt.Errorf("clusters file %s lists no clusters", path)
	}
	return out.Clusters, nil
}
