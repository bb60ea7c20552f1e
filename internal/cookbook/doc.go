// Package cookbook keeps the in-memory recipe collection in step with the
// durable store.
//
// Every mutation updates memory first and then persists through the store.
// When persistence fails with a *store.StorageError the in-memory change is
// kept and the error is returned, so the caller can warn that the change
// may not survive a restart. Operations on an unknown id are no-ops that
// report found == false.
//
// The collection is guarded by a mutex; View and the debounced Search may
// run on other goroutines.
package cookbook
