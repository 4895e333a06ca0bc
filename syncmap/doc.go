// Package syncmap wraps expiringmap.Map with a single mutex so it can be
// shared between goroutines, and adds read-through loading.
package syncmap
