// Package utils holds input validation shared by the loaders of
// user-supplied data.
package utils
