package notepad

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/LuminOS/backend/internal/storage/memory"
)

func newProvider(t *testing.T) (*Provider, *vfs.FS) {
	t.Helper()
	fs := vfs.New(memory.NewRecordStore(), nil)
	require.NoError(t, fs.Init(context.Background()))
	return NewProvider(fs, memory.NewKV(), nil), fs
}

func TestSaveAndLoad(t *testing.T) {
	p, fs := newProvider(t)
	ctx := context.Background()

	note, err := p.Save(ctx, "  todo.md ", "# Todo\n- milk")
	require.NoError(t, err)
	assert.Equal(t, "/documents/todo.md", note.Path)
	assert.Equal(t, ContentType, note.Entry.Type)

	dir, err := fs.ReadFile(ctx, DocumentsDir)
	require.NoError(t, err)
	require.NotNil(t, dir)
	assert.True(t, dir.IsDir())

	loaded, err := p.Load(ctx, "todo.md")
	require.NoError(t, err)
	assert.Equal(t, "# Todo\n- milk", loaded.Content)

	autosaved, ok, err := p.Autosaved(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, loaded.Content, autosaved)
}

func TestSaveDefaultName(t *testing.T) {
	p, _ := newProvider(t)

	note, err := p.Save(context.Background(), "", "hello")
	require.NoError(t, err)
	assert.Equal(t, "/documents/"+DefaultName, note.Path)
}

func TestLoadErrors(t *testing.T) {
	p, _ := newProvider(t)
	ctx := context.Background()

	_, err := p.Load(ctx, " ")
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = p.Load(ctx, "absent.md")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = p.Save(ctx, "../escape.md", "x")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestStorageUnavailable(t *testing.T) {
	p := NewProvider(vfs.New(memory.NewRecordStore(), nil), memory.NewKV(), nil)

	_, err := p.Save(context.Background(), "a.md", "x")
	assert.ErrorIs(t, err, vfs.ErrStorageUnavailable)
}

func TestAutosaveSlot(t *testing.T) {
	p, _ := newProvider(t)
	ctx := context.Background()

	_, ok, err := p.Autosaved(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, p.Autosave(ctx, "draft"))
	text, ok, err := p.Autosaved(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "draft", text)

	require.NoError(t, p.ClearAutosave(ctx))
	_, ok, err = p.Autosaved(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPreviewSanitizes(t *testing.T) {
	p, _ := newProvider(t)

	out := p.Preview("<script>alert(1)</script>\n[home](https://example.com)\n[bad](javascript:alert(1))")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, `href="https://example.com"`)
	assert.Contains(t, out, `target="_blank"`)
	assert.NotContains(t, out, `href="javascript`)
}
