// Package objstore implements the typed object store the rasterizer state
// uses for every owned object kind (buffers, textures, framebuffers,
// shaders, programs, vertex arrays): a monotonic per-type id counter plus a
// map from id to a heap-allocated instance.
//
// Handles here are non-owning: they carry both the id (for equality and
// Get by id) and a direct pointer to the stored instance. The source this
// is grounded on (ObjectHandle<T>/State::CreateObject<T>) stores raw
// pointers into a std::unordered_map<ObjectId, T>, which dangle on rehash.
// This store never does that: each object is individually heap-allocated
// with Go's `new`, and the map holds *T, so inserting or deleting other
// entries never moves or invalidates a previously returned pointer.
package objstore

// Id is a per-type, monotonically increasing object identifier. Ids are
// never reused within the lifetime of a Store (Clear resets the counter,
// matching State.Destroy's full teardown semantics).
type Id uint32

// Handle is a non-owning reference to an object of type T held by a Store.
// The zero Handle is invalid (Ptr is nil).
type Handle[T any] struct {
	ID  Id
	Ptr *T
}

// Valid reports whether this handle still resolves to a live pointer.
// It does not re-check the Store — a Handle obtained before a Delete/Clear
// call is a stale, dangling reference exactly like the handles in §3's
// data model.
func (h Handle[T]) Valid() bool {
	return h.Ptr != nil
}

func (h Handle[T]) Get() *T {
	return h.Ptr
}

// Store is a typed map from monotonic Id to an owned, heap-allocated T.
type Store[T any] struct {
	objects map[Id]*T
	nextID  Id
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{objects: make(map[Id]*T)}
}

// Create takes ownership of obj, assigns it the next id of this store and
// returns a handle to the stored copy.
func (s *Store[T]) Create(obj T) Handle[T] {
	s.nextID++
	id := s.nextID

	ptr := new(T)
	*ptr = obj
	s.objects[id] = ptr

	return Handle[T]{ID: id, Ptr: ptr}
}

// Get resolves id to a handle. The second return value is false if no
// object with that id exists in this store.
func (s *Store[T]) Get(id Id) (Handle[T], bool) {
	ptr, ok := s.objects[id]
	if !ok {
		return Handle[T]{}, false
	}
	return Handle[T]{ID: id, Ptr: ptr}, true
}

func (s *Store[T]) Delete(id Id) {
	delete(s.objects, id)
}

// Clear empties the store and resets the id counter, matching State.Destroy
// tearing down every store it owns.
func (s *Store[T]) Clear() {
	s.objects = make(map[Id]*T)
	s.nextID = 0
}

func (s *Store[T]) Len() int {
	return len(s.objects)
}
