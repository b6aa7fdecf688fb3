package config

import (
	"context"
	"fmt"
	"strconv"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/zero-day-ai/libdiff/differr"
)

// ShowMitigationValuesKey is the property toggling mitigation visibility.
const ShowMitigationValuesKey = "show-mitigation-values-on-changelog"

const opProperty = "config.Property"

// PropertySource resolves runtime properties. ok is false when the property
// is not set.
type PropertySource interface {
	ShowMitigationValues(ctx context.Context) (value bool, ok bool, err error)
}

// StaticProperties is a PropertySource backed by a fixed map.
type StaticProperties map[string]string

// ShowMitigationValues implements PropertySource.
func (p StaticProperties) ShowMitigationValues(context.Context) (bool, bool, error) {
	raw, ok := p[ShowMitigationValuesKey]
	if !ok {
		return false, false, nil
	}
	return parseBool(raw)
}

// EtcdProperties reads properties from etcd keys under a prefix.
type EtcdProperties struct {
	kv     clientv3.KV
	prefix string
	client *clientv3.Client
}

// NewEtcdProperties connects to the etcd cluster described by cfg.
// The returned source must be closed.
func NewEtcdProperties(cfg EtcdConfig) (*EtcdProperties, error) {
	if len(cfg.Endpoints) == 0 {
		return nil, differr.NewConfiguration(opProperty,
			fmt.Errorf("%w: etcd endpoints cannot be empty", differr.ErrInvalidConfig))
	}

	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: timeout,
	})
	if err != nil {
		return nil, differr.NewConfiguration(opProperty, fmt.Errorf("failed to create etcd client: %w", err))
	}

	p := NewEtcdPropertiesFromKV(cli, cfg.Prefix)
	p.client = cli
	return p, nil
}

// NewEtcdPropertiesFromKV wraps an existing KV.
func NewEtcdPropertiesFromKV(kv clientv3.KV, prefix string) *EtcdProperties {
	return &EtcdProperties{kv: kv, prefix: prefix}
}

// ShowMitigationValues implements PropertySource.
func (p *EtcdProperties) ShowMitigationValues(ctx context.Context) (bool, bool, error) {
	key := p.prefix + ShowMitigationValuesKey
	resp, err := p.kv.Get(ctx, key)
	if err != nil {
		return false, false, differr.NewStorage(opProperty, fmt.Errorf("failed to get %s: %w", key, err))
	}
	if len(resp.Kvs) == 0 {
		return false, false, nil
	}
	return parseBool(string(resp.Kvs[0].Value))
}

// Close releases the etcd client, if this source owns one.
func (p *EtcdProperties) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}

func parseBool(raw string) (bool, bool, error) {
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, differr.NewConfiguration(opProperty,
			fmt.Errorf("%w: %s=%q is not a boolean", differr.ErrInvalidConfig, ShowMitigationValuesKey, raw))
	}
	return v, true, nil
}
