// Package clock is the back end of the clock app's stopwatch.
package clock
