package sheet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/LuminOS/backend/internal/storage"
)

// StorageKey is the key/value slot holding the serialized cell store.
const StorageKey = "lumin-os.spreadsheet.data"

var (
	// ErrInvalidCell is returned for ids outside the A1:H20 grid.
	ErrInvalidCell = errors.New("invalid cell id")
	// ErrNoSelection is returned by Commit when no cell is selected.
	ErrNoSelection = errors.New("no cell selected")
)

// Snapshot is the state of the sheet as shown to a client.
type Snapshot struct {
	Cells    Cells             `json:"cells"`
	Values   map[string]string `json:"values"`
	Cycles   []string          `json:"cycles,omitempty"`
	Selected string            `json:"selected,omitempty"`
}

// Sheet is the spreadsheet app state: a cell store, its last
// recalculation and the selected cell. Every write is persisted to one
// key/value slot and followed by a full recalculation.
type Sheet struct {
	mu       sync.RWMutex
	saveMu   sync.Mutex
	kv       storage.KV
	engine   *Engine
	cells    Cells
	result   Result
	selected string

	logger   *zap.Logger
	metrics  *monitoring.Metrics
	listener func(Snapshot)
}

// New creates an empty sheet persisted through kv. Call Load to restore
// the saved cells.
func New(kv storage.KV, logger *zap.Logger) *Sheet {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Sheet{
		kv:     kv,
		engine: NewEngine(),
		cells:  make(Cells),
		logger: logger,
	}
	s.result = s.engine.Recalculate(s.cells)
	return s
}

// WithMetrics adds metrics tracking to the sheet
func (s *Sheet) WithMetrics(metrics *monitoring.Metrics) *Sheet {
	s.metrics = metrics
	return s
}

// OnChange registers the function that receives a snapshot after every
// write. It is called without the sheet lock held.
func (s *Sheet) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = fn
}

// Load restores the cell store from the key/value slot. A missing or
// corrupt slot yields an empty sheet. Only a store failure is an error, in
// which case the sheet keeps its current cells.
func (s *Sheet) Load(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("load spreadsheet: %w", err)
	}

	cells := make(Cells)
	if ok {
		cells = s.decode(raw)
	}

	s.mu.Lock()
	s.cells = cells
	s.recalculate()
	s.mu.Unlock()
	return nil
}

func (s *Sheet) decode(raw string) Cells {
	var data map[string]interface{}
	if err := sonic.UnmarshalString(raw, &data); err != nil {
		s.logger.Warn("Corrupt spreadsheet slot, starting empty", zap.Error(err))
		return make(Cells)
	}

	cells := make(Cells, len(data))
	for id, v := range data {
		if !ValidCellID(id) {
			continue
		}
		switch val := v.(type) {
		case string:
			cells[id] = val
		case float64:
			cells[id] = FormatNumber(val)
		}
	}
	return cells
}

// Select makes id the selected cell and returns its raw content for the
// edit surface.
func (s *Sheet) Select(id string) (string, error) {
	if !ValidCellID(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCell, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = id
	return s.cells[id], nil
}

// Selected returns the selected cell id, empty when none is selected.
func (s *Sheet) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Commit writes raw to the selected cell.
func (s *Sheet) Commit(ctx context.Context, raw string) (Snapshot, error) {
	id := s.Selected()
	if id == "" {
		return Snapshot{}, ErrNoSelection
	}
	return s.Set(ctx, id, raw)
}

// Set writes raw, trimmed, to cell id, recalculates every cell and
// persists the store. The new content stays in effect even when
// persisting fails; the error is returned.
func (s *Sheet) Set(ctx context.Context, id, raw string) (Snapshot, error) {
	if !ValidCellID(id) {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrInvalidCell, id)
	}

	s.mu.Lock()
	s.cells[id] = strings.TrimSpace(raw)
	s.recalculate()
	snap := s.snapshot()
	listener := s.listener
	s.mu.Unlock()

	err := s.save(ctx)
	if err != nil {
		s.logger.Warn("Spreadsheet not persisted", zap.String("cell", id), zap.Error(err))
	}

	if listener != nil {
		listener(snap)
	}
	return snap, err
}

// save writes the current cell store to the slot. Saves are serialized
// and each one encodes the cells it finds once it holds saveMu, so the
// last save to finish always carries every committed write.
func (s *Sheet) save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	payload, err := sonic.ConfigStd.MarshalToString(s.cells)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode spreadsheet: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey, payload); err != nil {
		return fmt.Errorf("persist spreadsheet: %w", err)
	}
	return nil
}

// Raw returns the raw content of a cell.
func (s *Sheet) Raw(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cells[id]
}

// Value returns the display value of a cell.
func (s *Sheet) Value(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result.Value(id)
}

// Snapshot returns a copy of the current state.
func (s *Sheet) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// snapshot copies the state. Caller holds mu.
func (s *Sheet) snapshot() Snapshot {
	values := make(map[string]string, len(s.result.Values))
	for k, v := range s.result.Values {
		values[k] = v
	}
	return Snapshot{
		Cells:    s.cells.Clone(),
		Values:   values,
		Cycles:   append([]string(nil), s.result.Cycles...),
		Selected: s.selected,
	}
}

// recalculate refreshes the display values. Caller holds mu.
func (s *Sheet) recalculate() {
	start := time.Now()
	s.result = s.engine.Recalculate(s.cells)
	if s.metrics != nil {
		s.metrics.RecordSheetRecalc(time.Since(start), len(s.result.Cycles))
	}
}
