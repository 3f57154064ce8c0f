package notepad

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/paths"
	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
	"github.com/GriffinCanCode/LuminOS/backend/internal/storage"
)

const (
	// DocumentsDir is where notes are saved.
	DocumentsDir = paths.Documents
	// DefaultName is used when a note is saved without a name.
	DefaultName = "untitled.md"
	// ContentType tags saved notes.
	ContentType = "text/markdown"
	// AutosaveKey is the key/value slot holding the unsaved editor text.
	AutosaveKey = "lumin-os.notepad.autosave"
)

var (
	// ErrNameRequired is returned when loading without a file name.
	ErrNameRequired = errors.New("file name required")
	// ErrInvalidName is returned for names that would leave the documents directory.
	ErrInvalidName = errors.New("invalid file name")
	// ErrNotFound is returned when the named note does not exist.
	ErrNotFound = errors.New("note not found")
)

// Note is a loaded or saved document.
type Note struct {
	Name    string       `json:"name"`
	Path    string       `json:"path"`
	Content string       `json:"content"`
	Entry   *types.Entry `json:"entry,omitempty"`
}

// Provider is the notepad back end: markdown notes stored in the virtual
// file system plus one autosave slot.
type Provider struct {
	fs     *vfs.FS
	kv     storage.KV
	policy *bluemonday.Policy
	logger *zap.Logger
}

// NewProvider creates a notepad provider
func NewProvider(fs *vfs.FS, kv storage.KV, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}

	policy := bluemonday.UGCPolicy()
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Provider{
		fs:     fs,
		kv:     kv,
		policy: policy,
		logger: logger,
	}
}

// Save writes content to DocumentsDir/name as markdown, creating the
// documents directory when needed. An empty name saves as DefaultName.
func (p *Provider) Save(ctx context.Context, name, content string) (Note, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	path, err := notePath(name)
	if err != nil {
		return Note{}, err
	}

	if _, err := p.fs.CreateDirectory(ctx, DocumentsDir); err != nil {
		return Note{}, fmt.Errorf("prepare %s: %w", DocumentsDir, err)
	}
	entry, err := p.fs.SaveFile(ctx, path, content, ContentType)
	if err != nil {
		return Note{}, err
	}

	p.logger.Info("Note saved", zap.String("path", path), zap.Int64("size", entry.Size))
	return Note{Name: name, Path: path, Content: content, Entry: entry}, nil
}

// Load reads DocumentsDir/name. The loaded text also replaces the
// autosave slot, as the editor does after opening a file.
func (p *Provider) Load(ctx context.Context, name string) (Note, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Note{}, ErrNameRequired
	}
	path, err := notePath(name)
	if err != nil {
		return Note{}, err
	}

	entry, err := p.fs.ReadFile(ctx, path)
	if err != nil {
		return Note{}, err
	}
	if entry == nil || entry.IsDir() {
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	note := Note{Name: name, Path: path, Content: entry.Text(), Entry: entry}
	if err := p.Autosave(ctx, note.Content); err != nil {
		p.logger.Warn("Autosave after load failed", zap.String("path", path), zap.Error(err))
	}
	return note, nil
}

// Autosave stores the editor text in the autosave slot.
func (p *Provider) Autosave(ctx context.Context, content string) error {
	if err := p.kv.Set(ctx, AutosaveKey, content); err != nil {
		return fmt.Errorf("autosave: %w", err)
	}
	return nil
}

// Autosaved returns the autosaved text, if any.
func (p *Provider) Autosaved(ctx context.Context) (string, bool, error) {
	content, ok, err := p.kv.Get(ctx, AutosaveKey)
	if err != nil {
		return "", false, fmt.Errorf("read autosave: %w", err)
	}
	return content, ok && content != "", nil
}

// ClearAutosave empties the autosave slot.
func (p *Provider) ClearAutosave(ctx context.Context) error {
	if err := p.kv.Delete(ctx, AutosaveKey); err != nil {
		return fmt.Errorf("clear autosave: %w", err)
	}
	return nil
}

// Preview renders markdown to sanitized HTML.
func (p *Provider) Preview(content string) string {
	return p.policy.Sanitize(Render(content))
}

func notePath(name string) (string, error) {
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return paths.InDocuments(name), nil
}
