package database

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/valkey-io/valkey-go"
)

var ErrCacheKeyRequired = errors.New("cache key is required")

// CacheBuilder issues a single valkey command against one key. A nil client
// turns every operation into a miss so callers need no cache-enabled checks.
type CacheBuilder struct {
	client CacheClient
	key    string
	value  any
	ttl    time.Duration
	ctx    context.Context
}

func NewCacheBuilder(client CacheClient, key string) *CacheBuilder {
	return &CacheBuilder{
		client: client,
		key:    key,
		ctx:    context.Background(),
	}
}

func (b *CacheBuilder) WithStruct(value any) *CacheBuilder {
	b.value = value
	return b
}

func (b *CacheBuilder) WithTTL(ttl time.Duration) *CacheBuilder {
	b.ttl = ttl
	return b
}

func (b *CacheBuilder) WithContext(ctx context.Context) *CacheBuilder {
	if ctx != nil {
		b.ctx = ctx
	}
	return b
}

func (b *CacheBuilder) Set() error {
	if b.client == nil {
		return nil
	}
	if b.key == "" {
		return ErrCacheKeyRequired
	}

	payload, err := json.Marshal(b.value)
	if err != nil {
		return err
	}

	cmd := b.client.B().Set().Key(b.key).Value(valkey.BinaryString(payload))
	if seconds := int64(b.ttl / time.Second); seconds > 0 {
		return b.client.Do(b.ctx, cmd.ExSeconds(seconds).Build()).Error()
	}
	return b.client.Do(b.ctx, cmd.Build()).Error()
}

// Get decodes the cached value into target and reports whether the key was
// present.
func (b *CacheBuilder) Get(target any) (bool, error) {
	if b.client == nil {
		return false, nil
	}
	if b.key == "" {
		return false, ErrCacheKeyRequired
	}

	payload, err := b.client.Do(b.ctx, b.client.B().Get().Key(b.key).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(payload, target); err != nil {
		return false, err
	}
	return true, nil
}

func (b *CacheBuilder) Delete() error {
	if b.client == nil {
		return nil
	}
	if b.key == "" {
		return ErrCacheKeyRequired
	}
	return b.client.Do(b.ctx, b.client.B().Del().Key(b.key).Build()).Error()
}
