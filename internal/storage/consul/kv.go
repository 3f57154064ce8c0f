package consul

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/consul/api"
)

// Config contains configuration options for the Consul KV.
type Config struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string

	// Token for Consul ACL authentication (optional)
	Token string

	// Datacenter to use (optional)
	Datacenter string

	// Prefix for all keys (default: "lumin-os/")
	Prefix string
}

// KV stores string slots in Consul KV. Values are limited to 512KB by Consul.
type KV struct {
	kv     *api.KV
	prefix string
}

// NewKV creates a Consul-backed KV. The client is stateless, so nothing is
// contacted until the first call.
func NewKV(cfg Config) (*KV, error) {
	if cfg.Address == "" {
		cfg.Address = "127.0.0.1:8500"
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "lumin-os/"
	}
	if !strings.HasSuffix(cfg.Prefix, "/") {
		cfg.Prefix += "/"
	}

	clientConfig := api.DefaultConfig()
	clientConfig.Address = cfg.Address
	if cfg.Token != "" {
		clientConfig.Token = cfg.Token
	}
	if cfg.Datacenter != "" {
		clientConfig.Datacenter = cfg.Datacenter
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	return &KV{kv: client.KV(), prefix: cfg.Prefix}, nil
}

func (*KV) Name() string {
	return "consul"
}

func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	pair, _, err := k.kv.Get(k.prefix+key, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if pair == nil {
		return "", false, nil
	}
	return string(pair.Value), true, nil
}

func (k *KV) Set(ctx context.Context, key, value string) error {
	pair := &api.KVPair{Key: k.prefix + key, Value: []byte(value)}
	if _, err := k.kv.Put(pair, (&api.WriteOptions{}).WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (k *KV) Delete(ctx context.Context, key string) error {
	if _, err := k.kv.Delete(k.prefix+key, (&api.WriteOptions{}).WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close is a no-op; the Consul client holds no connections.
func (k *KV) Close(ctx context.Context) error {
	return nil
}
