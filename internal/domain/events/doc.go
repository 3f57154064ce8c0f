// Package events fans desktop changes out to stream subscribers.
//
// Window, file system and spreadsheet changes are published as Event
// values. Each subscriber owns a buffered channel; a subscriber that falls
// behind misses events instead of slowing the desktop down.
package events
