package memory

import (
	"context"
	"sync"

	"github.com/tidwall/btree"
)

// KV is an in-memory string store. Contents are lost on restart.
type KV struct {
	mu    sync.RWMutex
	slots *btree.Map[string, string]
}

// NewKV creates an empty in-memory KV.
func NewKV() *KV {
	return &KV{slots: btree.NewMap[string, string](0)}
}

func (*KV) Name() string {
	return "memory"
}

func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	k.mu.RLock()
	defer k.mu.RUnlock()

	value, ok := k.slots.Get(key)
	return value, ok, nil
}

func (k *KV) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.slots.Set(key, value)
	return nil
}

func (k *KV) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.slots.Delete(key)
	return nil
}

func (k *KV) Close(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.slots.Clear()
	return nil
}
