// Package analytics implements the telemetry session and batching client
// used across the Prime Hotels intranet.
//
// A Client owns one session for the lifetime of the running application,
// buffers tracked events in memory, and ships them to the remote event
// sink in batches: when the buffer reaches its size threshold, on a
// periodic timer, and on lifecycle signals (NotifyPageHidden, Close).
//
// Tracking is strictly best-effort. No public operation ever returns an
// error to the caller; failures are logged and swallowed so that
// telemetry can never degrade the primary application flow. Batches that
// fail to deliver are dropped, not retried.
//
// The client is constructed once at application start with its
// collaborators injected (session store, event sink, local state store,
// auth provider, host environment) and passed by reference to call
// sites. All methods are safe for concurrent use.
package analytics
