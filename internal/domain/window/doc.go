// Package window manages the desktop's windows.
//
// Each window has a stable id ("window-<appId>-<n>"), a rectangle, a
// stacking value that only ever grows, and one display mode: normal,
// minimized or maximized. Opening and closing are transitions: a window
// becomes visible one frame after creation and its record is removed a
// short delay after it is closed.
//
// Operations on unknown ids return false and change nothing.
package window
