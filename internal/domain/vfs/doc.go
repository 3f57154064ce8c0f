// Package vfs implements the desktop's virtual file system.
//
// Entries live in a flat record store keyed by absolute path, with parent
// and type indexes; the directory tree is implied by each entry's Parent.
// Directories carry no content. Deleting an entry never touches its
// children, so subtree removal is the depth-first RemoveAll.
//
// All operations fail with ErrStorageUnavailable until Init has opened the
// store. Reading a missing path returns a nil entry, not an error.
//
// Example Usage:
//
//	fs := vfs.New(memory.NewRecordStore(), logger)
//	if err := fs.Init(ctx); err != nil {
//	    return err
//	}
//	fs.CreateDirectory(ctx, "/documents")
//	fs.SaveFile(ctx, "/documents/todo.md", "# Todo", "text/markdown")
package vfs
