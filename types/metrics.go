package types

// This file defines how the map reports what it is doing.

/*
Metrics is an interface that defines what the map wants to measure.
Each method represents an event in an entry's lifecycle. The map calls these methods as things happen.
*/
type Metrics interface {

	// Insert is called when a new entry is stored.
	Insert()

	// Duplicate is called when an insert finds the key already present and discards the new value.
	Duplicate()

	// Hit is called when indexed access finds a live entry.
	Hit()

	// Miss is called when indexed access has to create a default entry.
	Miss()

	// Remove is called when a key is deleted explicitly by the caller.
	Remove()

	// Expire is called once for every entry removed by a sweep.
	Expire()
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

Callers who do not care about metrics still get a working map without
nil checks on every code path.
*/
type NoopMetrics struct{}

func (NoopMetrics) Insert()    {}
func (NoopMetrics) Duplicate() {}
func (NoopMetrics) Hit()       {}
func (NoopMetrics) Miss()      {}
func (NoopMetrics) Remove()    {}
func (NoopMetrics) Expire()    {}
