// Package filemanager is the back end of the file manager app: a current
// directory, directory-first listings, entry creation, recursive delete
// and glob search over the virtual file system.
package filemanager
