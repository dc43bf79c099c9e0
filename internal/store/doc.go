// Package store defines interfaces for wish persistence operations.
// These interfaces abstract the underlying storage mechanism from the
// application's core logic, allowing the in-memory store to be swapped
// for a durable backend without changing any contract.
package store
