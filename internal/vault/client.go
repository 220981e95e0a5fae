package vault

import (
	"fmt"
	"strings"

	"github.com/hashicorp/vault/api"

	"github.com/Shadab909/couchbase-cluster-report-automation/config"
	"github.com/Shadab909/couchbase-cluster-report-automation/model"
)

type Config struct {
	URL      string
	RoleID   string
	SecretID string
}

func ConfigFromEnv() *Config {
	return &Config{
		URL:      config.Env.VaultUrl,
		RoleID:   config.Env.VaultRoleId,
		SecretID: config.Env.VaultSecretId,
	}
}

type Client struct {
	api *api.Client
}

var (
	logicalList = func(c *api.Client, path string) (*api.Secret, error) {
		return c.Logical().List(path)
	}
	logicalRead = func(c *api.Client, path string) (*api.Secret, error) {
		return c.Logical().Read(path)
	}
)

func NewClient(cfg *Config) (*Client, error) {
	vaultCfg := api.DefaultConfig()
	vaultCfg.Address = cfg.URL

	client, err := api.NewClient(vaultCfg)
	if err != nil {
		return nil, err
	}

	resp, err := client.Logical().Write("auth/approle/login", map[string]interface{}{
		"role_id":   cfg.RoleID,
		"secret_id": cfg.SecretID,
	})
	if err != nil {
		return nil, err
	}
	client.SetToken(resp.Auth.ClientToken)

	return &Client{api: client}, nil
}

// GetClusterInfos lists the cluster secrets and reads each one's basic-auth
// credentials and base URL.
func (c *Client) GetClusterInfos() ([]model.ClusterCredential, error) {
	secrets, err := logicalList(c.api, "secret/metadata/cluster")
	if err != nil {
		return nil, err
	}
	if secrets == nil || secrets.Data == nil {
		return nil, fmt.Errorf("no cluster secrets found")
	}
	keys, ok := secrets.Data["keys"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected keys type in cluster secret list")
	}

	infos := extractClusterInfos(keys, func(path string) (*api.Secret, error) {
		return logicalRead(c.api, path)
	})
	return infos, nil
}

func extractClusterInfos(keys []interface{}, read func(path string) (*api.Secret, error)) []model.ClusterCredential {
	var infos []model.ClusterCredential
	for _, key := range keys {
		name, ok := key.(string)
		if !ok {
			continue
		}
		secret, err := read(fmt.Sprintf("secret/data/cluster/%s", name))
		if err != nil || secret == nil || secret.Data == nil || secret.Data["data"] == nil {
			continue
		}
		data, ok := secret.Data["data"].(map[string]interface{})
		if !ok {
			continue
		}

		cred := model.ClusterCredential{
			Username:    asString(data["username"]),
			Password:    asString(data["password"]),
			BaseURL:     asString(data["clusterUrl"]),
			DisplayName: asString(data["displayName"]),
		}
		if cred.BaseURL == "" {
			continue
		}
		if cred.DisplayName == "" {
			cred.DisplayName = strings.TrimSuffix(name, "/")
		}
		infos = append(infos, cred)
	}
	return infos
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
