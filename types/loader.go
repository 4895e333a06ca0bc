package types

import "context"

// Loader is the contract between a read-through map and whatever produces
// values for missing keys.
type Loader[K comparable, V any] interface {

	/*
		Load is called when a key is absent.
		1. Map checks memory → key not found (or already swept)
		2. Map calls Load(key)
		3. Loader computes or fetches the value
		4. Map inserts the result if the key is still absent
		5. Map returns the live value
	*/
	Load(ctx context.Context, key K) (V, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

func (f LoaderFunc[K, V]) Load(ctx context.Context, key K) (V, error) {
	return f(ctx, key)
}
