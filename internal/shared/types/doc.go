// Package types provides shared data structures for the LuminOS backend.
//
// This package defines the records that cross package boundaries, so that
// storage back ends, domain services and the HTTP layer agree on one shape
// without importing each other.
//
// Core Types:
//   - Entry: Virtual file system record (file or directory)
//   - Manifest: App descriptor loaded from disk or registered at boot
//   - WindowSize: Preferred window geometry for an app
//
// Request Types:
//   - CreateWindowRequest, DragRequest, ResizeRequest: Window operations
//   - SaveFileRequest, DirRequest: VFS operations
//   - CellRequest, NoteRequest: Spreadsheet and notepad operations
//   - WSMessage: WebSocket communication
//
// Example Usage:
//
//	entry := &types.Entry{
//	    Path:   "/documents/todo.md",
//	    Name:   "todo.md",
//	    Parent: "/documents",
//	    Type:   "text/markdown",
//	}
package types
