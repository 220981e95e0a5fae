package couchbase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Shadab909/couchbase-cluster-report-automation/model"
)

const (
	connectTimeout = 5 * time.Second
	requestTimeout = 10 * time.Second
)

// ErrEmptyBody marks a 200 response with no payload. The caller cannot
// distinguish it from a transport failure and handles both the same way.
var ErrEmptyBody = errors.New("empty response body")

type Client struct {
	username string
	password string
	baseURL  string
	client   *http.Client
}

func NewClient(cred model.ClusterCredential) *Client {
	tr := &http.Transport{
		DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
	}
	return &Client{
		username: cred.Username,
		password: cred.Password,
		baseURL:  strings.TrimRight(cred.BaseURL, "/"),
		client:   &http.Client{Transport: tr, Timeout: requestTimeout},
	}
}

// FetchNodeList returns the cluster's node membership from /pools/nodes.
func (c *Client) FetchNodeList(ctx context.Context) ([]model.PoolNode, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/pools/nodes", c.baseURL))
	if err != nil {
		return nil, err
	}

	var pool model.PoolNodes
	if err := json.Unmarshal(body, &pool); err != nil {
		return nil, fmt.Errorf("node list decode failed: %w", err)
	}
	return pool.Nodes, nil
}

// FetchNodeDetail returns one node's health detail from its /nodes/self
// endpoint, queried with the cluster credentials.
func (c *Client) FetchNodeDetail(ctx context.Context, hostname string) (model.NodeDetail, error) {
	var detail model.NodeDetail

	body, err := c.get(ctx, fmt.Sprintf("http://%s/nodes/self", hostname))
	if err != nil {
		return detail, err
	}
	if err := json.Unmarshal(body, &detail); err != nil {
		return detail, fmt.Errorf("node detail decode failed: %w", err)
	}
	if detail.Hostname == "" {
		detail.Hostname = hostname
	}
	return detail, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cluster request failed: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("cluster response error: %d - %s", resp.StatusCode, string(body))
	}
	if len(body) == 0 {
		return nil, ErrEmptyBody
	}
	return body, nil
}
