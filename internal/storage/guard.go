package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
)

// guardedRecords routes every record-store call through a circuit breaker.
type guardedRecords struct {
	next    RecordStore
	breaker *resilience.Breaker
}

// GuardRecords wraps next with the breaker.
func GuardRecords(next RecordStore, breaker *resilience.Breaker) RecordStore {
	return &guardedRecords{next: next, breaker: breaker}
}

func (g *guardedRecords) Name() string { return g.next.Name() }

func (g *guardedRecords) Open(ctx context.Context) error {
	_, err := call(ctx, g.breaker, func() (struct{}, error) { return struct{}{}, g.next.Open(ctx) })
	return err
}

// Close bypasses the breaker so resources are always released.
func (g *guardedRecords) Close(ctx context.Context) error { return g.next.Close(ctx) }

func (g *guardedRecords) Put(ctx context.Context, entry *types.Entry) error {
	_, err := call(ctx, g.breaker, func() (struct{}, error) { return struct{}{}, g.next.Put(ctx, entry) })
	return err
}

func (g *guardedRecords) Get(ctx context.Context, path string) (*types.Entry, error) {
	return call(ctx, g.breaker, func() (*types.Entry, error) { return g.next.Get(ctx, path) })
}

func (g *guardedRecords) Delete(ctx context.Context, path string) error {
	_, err := call(ctx, g.breaker, func() (struct{}, error) { return struct{}{}, g.next.Delete(ctx, path) })
	return err
}

func (g *guardedRecords) ListByParent(ctx context.Context, parent string) ([]*types.Entry, error) {
	return call(ctx, g.breaker, func() ([]*types.Entry, error) { return g.next.ListByParent(ctx, parent) })
}

func (g *guardedRecords) ListByType(ctx context.Context, typ string) ([]*types.Entry, error) {
	return call(ctx, g.breaker, func() ([]*types.Entry, error) { return g.next.ListByType(ctx, typ) })
}

func (g *guardedRecords) Paths(ctx context.Context) ([]string, error) {
	return call(ctx, g.breaker, func() ([]string, error) { return g.next.Paths(ctx) })
}

// guardedKV routes every KV call through a circuit breaker.
type guardedKV struct {
	next    KV
	breaker *resilience.Breaker
}

// GuardKV wraps next with the breaker.
func GuardKV(next KV, breaker *resilience.Breaker) KV {
	return &guardedKV{next: next, breaker: breaker}
}

func (g *guardedKV) Name() string { return g.next.Name() }

func (g *guardedKV) Get(ctx context.Context, key string) (string, bool, error) {
	type slot struct {
		value string
		ok    bool
	}
	res, err := call(ctx, g.breaker, func() (slot, error) {
		value, ok, err := g.next.Get(ctx, key)
		return slot{value: value, ok: ok}, err
	})
	return res.value, res.ok, err
}

func (g *guardedKV) Set(ctx context.Context, key, value string) error {
	_, err := call(ctx, g.breaker, func() (struct{}, error) { return struct{}{}, g.next.Set(ctx, key, value) })
	return err
}

func (g *guardedKV) Delete(ctx context.Context, key string) error {
	_, err := call(ctx, g.breaker, func() (struct{}, error) { return struct{}{}, g.next.Delete(ctx, key) })
	return err
}

func (g *guardedKV) Close(ctx context.Context) error { return g.next.Close(ctx) }

// call executes fn through the breaker and maps a rejected call to ErrUnavailable.
func call[T any](ctx context.Context, breaker *resilience.Breaker, fn func() (T, error)) (T, error) {
	var out T
	err := breaker.Do(ctx, func() error {
		var err error
		out, err = fn()
		return err
	})
	if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
		var zero T
		return zero, fmt.Errorf("%w: %s: %v", ErrUnavailable, breaker.Name(), err)
	}
	return out, err
}
