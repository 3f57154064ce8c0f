// Package main is luminctl, a command-line client for a running desktop.
//
// Usage:
//
//	luminctl apps list
//	luminctl apps launch notepad
//	luminctl windows minimize window-notepad-1
//	luminctl fs write /documents/todo.txt "buy milk"
//	luminctl sheet set B1 "=A1*2"
//
// The desktop address comes from --server or LUMIN_URL.
package main
