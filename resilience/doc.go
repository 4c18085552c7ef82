// Package resilience provides retry and timeout helpers for service
// construction and teardown.
//
// The container runs factories exactly as declared, so resilience is added
// by wrapping the factory:
//
//	di.Declare(c, keys.Store, resilience.RetryFactory(
//	    resilience.DefaultRetryConfig(),
//	    resilience.TimeoutFactory(2*time.Second, newStore),
//	))
//
// Race bounds any blocking call, such as container disposal at shutdown:
//
//	err := resilience.Race(ctx, "dispose", 15*time.Second, c.Dispose)
package resilience
