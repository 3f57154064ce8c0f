package vfs

import (
	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
)

// ChangeOp names a write to the tree.
type ChangeOp string

const (
	ChangeSaved   ChangeOp = "saved"
	ChangeDeleted ChangeOp = "deleted"
)

// Change reports one successful write. Deleted entries carry only their
// path, name and parent.
type Change struct {
	Op    ChangeOp     `json:"op"`
	Entry *types.Entry `json:"entry"`
}

// WithMetrics adds metrics tracking to the file system
func (f *FS) WithMetrics(metrics *monitoring.Metrics) *FS {
	f.metrics = metrics
	return f
}

// OnChange registers the function that receives every successful save,
// directory creation and deletion.
func (f *FS) OnChange(fn func(Change)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listener = fn
}

func (f *FS) notify(op ChangeOp, entry *types.Entry) {
	f.mu.RLock()
	listener := f.listener
	f.mu.RUnlock()

	if listener != nil {
		listener(Change{Op: op, Entry: entry.Clone()})
	}
}

func (f *FS) observe(op string, err error) {
	if f.metrics != nil {
		f.metrics.RecordFSOperation(op, err)
	}
}
