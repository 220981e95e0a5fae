package nats

import (
	"encoding/json"
	"log"

	"github.com/nats-io/nats.go"

	"github.com/Shadab909/couchbase-cluster-report-automation/config"
	"github.com/Shadab909/couchbase-cluster-report-automation/model"
)

type Client struct {
	api        string
	id         string
	password   string
	natsClient *nats.Conn
	jetStream  nats.JetStreamContext
}

var natsConnect = func(url, user, pass string) (*nats.Conn, error) {
	return nats.Connect(url, nats.UserInfo(user, pass))
}

var jetStreamFromConn = func(nc *nats.Conn) (nats.JetStreamContext, error) {
	return nc.JetStream()
}

func NewClient() *Client {
	nc, err := natsConnect(config.Env.NatsUrl, config.Env.NatsId, config.Env.NatsPassword)
	if err != nil {
		log.Printf("NATS connection failed: %v", err)
		return nil
	}
	js, err := jetStreamFromConn(nc)
	if err != nil {
		log.Printf("JetStream connection failed: %v", err)
		return nil
	}

	return &Client{
		api:        config.Env.NatsUrl,
		id:         config.Env.NatsId,
		password:   config.Env.NatsPassword,
		natsClient: nc,
		jetStream:  js,
	}
}

func (c *Client) CreateKeyValue(bucket string) (nats.KeyValue, error) {
	return c.jetStream.CreateKeyValue(&nats.KeyValueConfig{Bucket: bucket})
}

func (c *Client) KeyValue(bucket string) (nats.KeyValue, error) {
	return c.jetStream.KeyValue(bucket)
}

// PublishSnapshot puts the run's health snapshot into the bucket under the
// given key, creating the bucket on first use.
func (c *Client) PublishSnapshot(bucket, key string, snapshot model.HealthSnapshot) error {
	kv, err := c.CreateKeyValue(bucket)
	if err != nil {
		kv, err = c.KeyValue(bucket)
		if err != nil {
			return err
		}
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	_, err = kv.Put(key, data)
	return err
}
