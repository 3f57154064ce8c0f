/*
Package resilience provides the circuit breaker that guards network storage
back ends.

# Overview

A Breaker counts failures of the calls it admits. Once ReadyToTrip says so,
it opens and rejects every call with ErrCircuitOpen until Timeout elapses.
It then admits MaxRequests trial calls (half-open). Enough successes close it
again; any failure reopens it.

# Usage

	breaker := resilience.New("records-postgres", resilience.Settings{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	err := breaker.Do(ctx, func() error {
		return store.Put(ctx, entry)
	})

# Pattern

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open
*/
package resilience
