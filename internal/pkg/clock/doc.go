// Package clock provides a tiny time abstraction.
//
// Production code should depend on the Clocker interface instead of calling
// time.Now() directly. Challenge expiry and session TTL checks become
// deterministic in tests by swapping in a fake clock.
package clock
