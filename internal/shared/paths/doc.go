// Package paths names the standard directories of the desktop's virtual
// file system.
//
// # Directory Structure
//
//	/
//	├── documents/   (notepad saves, file manager start)
//	├── images/
//	└── music/
//
// # Usage
//
//	notePath := paths.InDocuments("todo.md") // /documents/todo.md
package paths
