package models

import (
	"sync"
	"time"
)

// Store owns the seven reference-data collections and their id counters.
// Construct one per process (or per test) and pass it by handle; there is
// no package-level state. A single mutex serializes every read-modify-write
// sequence so HTTP handlers can share the store safely.
type Store struct {
	mu sync.Mutex

	uoms            []UOM
	commodities     []Commodity
	locations       []Location
	counterParties  []CounterParty
	blends          []Blend
	blendComponents []BlendComponent
	capacities      []Capacity

	nextUOMId            int
	nextCommodityId      int
	nextLocationId       int
	nextCounterPartyId   int
	nextBlendId          int
	nextBlendComponentId int
	nextCapacityId       int

	// idemMu guards idempotentCreates separately from mu so a create
	// running under the registry lock can still take mu.
	idemMu            sync.Mutex
	idempotentCreates map[string]any
}

func NewStore() *Store {
	return &Store{
		nextUOMId:            1,
		nextCommodityId:      1,
		nextLocationId:       1,
		nextCounterPartyId:   1,
		nextBlendId:          1,
		nextBlendComponentId: 1,
		nextCapacityId:       1,
		idempotentCreates:    make(map[string]any),
	}
}

func now() time.Time {
	return time.Now().UTC()
}

func nowPtr() *time.Time {
	t := now()
	return &t
}
