// Package notepad is the back end of the notepad app.
//
// Notes are markdown files under /documents in the virtual file system.
// The editor's unsaved text lives in a single key/value autosave slot.
// Previews are rendered by a small markdown renderer and sanitized with
// bluemonday before they reach the browser.
package notepad
