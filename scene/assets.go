package scene

import (
	"fmt"
	"reflect"

	"github.com/plus3/leveled/ecs"
)

// Handle references an asset inside an Assets store. The zero Handle is
// invalid.
type Handle[A any] struct {
	ID uint32
}

// IsValid reports whether h was returned by Assets.Add.
func (h Handle[A]) IsValid() bool {
	return h.ID != 0
}

// Assets is an append-only store of one asset type. Pointers returned by Get
// stay valid across later Adds.
type Assets[A any] struct {
	items []*A
}

// NewAssets returns an empty store.
func NewAssets[A any]() Assets[A] {
	return Assets[A]{}
}

// Add stores asset and returns its handle. Identical assets are never
// deduplicated.
func (a *Assets[A]) Add(asset A) Handle[A] {
	a.items = append(a.items, &asset)
	return Handle[A]{ID: uint32(len(a.items))}
}

// Get returns the asset behind h.
func (a *Assets[A]) Get(h Handle[A]) (*A, bool) {
	if h.ID == 0 || int(h.ID) > len(a.items) {
		return nil, false
	}
	return a.items[h.ID-1], true
}

// Len returns the number of stored assets.
func (a *Assets[A]) Len() int {
	return len(a.items)
}

// StoreAsset adds asset to the Assets[A] resource of storage. It panics
// when storage has no store for A.
func StoreAsset[A any](storage *ecs.Storage, asset A) Handle[A] {
	var store *Assets[A]
	if !storage.ReadSingleton(&store) {
		panic(fmt.Sprintf("could not find asset store for type %s", reflect.TypeFor[A]()))
	}
	return store.Add(asset)
}
