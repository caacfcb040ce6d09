package graphql

import "sync"

// Future is the "future of a value" half of the value monad described by the
// core: a single-fire, single-value handoff between the goroutine that
// produces a result and whatever is waiting on it. A field resolver that
// wants to suspend returns one of these instead of blocking the caller.
// IsTypeOf predicates return a plain bool, and a ResolveType hook is called
// synchronously: a Future it returns is not awaited.
//
// Future is safe to Await from multiple goroutines; only the first Resolve
// takes effect.
type Future struct {
	once sync.Once
	done chan struct{}
	val  interface{}
	err  error
}

// NewFuture allocates an unresolved Future.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolve settles the future. Only the first call has any effect.
func (f *Future) Resolve(val interface{}, err error) {
	f.once.Do(func() {
		f.val, f.err = val, err
		close(f.done)
	})
}

// Await blocks until the future settles and returns its result.
func (f *Future) Await() (interface{}, error) {
	<-f.done
	return f.val, f.err
}

// Done exposes the completion signal so a caller can select on many futures
// at once.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Go runs fn on a new goroutine and returns a Future for its outcome. This is
// the idiomatic-Go stand-in for "a resolver that returns a thenable": a field
// resolver that wants to suspend calls Go and hands the Future back
// immediately instead of blocking.
func Go(fn func() (interface{}, error)) *Future {
	f := NewFuture()
	go func() {
		val, err := fn()
		f.Resolve(val, err)
	}()
	return f
}

// value is the tagged union at the heart of the completion pipeline: either a
// value is in hand already (ready) or it is being produced by a Future
// (pending). Every combinator inspects the tag before it allocates a
// goroutine or a channel, which is what keeps a fully synchronous operation
// from ever touching the scheduler.
type value struct {
	ready  bool
	result interface{}
	err    error
	future *Future
}

func readyValue(v interface{}, err error) value {
	return value{ready: true, result: v, err: err}
}

func pendingValue(f *Future) value {
	return value{future: f}
}

func (v value) isPending() bool {
	return !v.ready
}

// await collapses a value to its (result, error) pair, blocking only if it is
// pending.
func (v value) await() (interface{}, error) {
	if v.ready {
		return v.result, v.err
	}
	return v.future.Await()
}

// mapValue applies f to the eventual result of v. On the sync fast path (v
// ready) it runs f inline and returns a ready value with no allocation of a
// goroutine. Otherwise it spawns exactly one goroutine to wait on v's future
// and forward through f.
func mapValue(v value, f func(interface{}) (interface{}, error)) value {
	if v.ready {
		if v.err != nil {
			return v
		}
		res, err := f(v.result)
		return readyValue(res, err)
	}
	out := NewFuture()
	go func() {
		res, err := v.future.Await()
		if err != nil {
			out.Resolve(nil, err)
			return
		}
		out.Resolve(f(res))
	}()
	return pendingValue(out)
}

// flatMapValue is mapValue's cousin for a continuation that itself returns a
// value instead of a plain (result, error) pair. It is what lets a
// synchronous resolver feed a completion that turns out to be asynchronous
// (and vice versa) without ever allocating a goroutine when both halves are
// synchronous.
func flatMapValue(v value, f func(interface{}) value) value {
	if v.ready {
		if v.err != nil {
			return v
		}
		return f(v.result)
	}
	out := NewFuture()
	go func() {
		res, err := v.await()
		if err != nil {
			out.Resolve(nil, err)
			return
		}
		inner := f(res)
		innerRes, innerErr := inner.await()
		out.Resolve(innerRes, innerErr)
	}()
	return pendingValue(out)
}

// swallowToNull converts a propagating error into a benign null, the
// operation a nullable field or list element applies to a child value that
// bubbled an error up from a non-null descendant. The error has already been
// recorded against the response by the time this runs; it is discarded here,
// not re-reported.
func swallowToNull(v value) value {
	if v.ready {
		if v.err != nil {
			return readyValue(nil, nil)
		}
		return v
	}
	out := NewFuture()
	go func() {
		res, err := v.await()
		if err != nil {
			out.Resolve(nil, nil)
			return
		}
		out.Resolve(res, nil)
	}()
	return pendingValue(out)
}

// allValues combines an ordered slice of values into a value of a slice,
// preserving order regardless of settlement order. If none are pending it
// returns synchronously.
func allValues(vs []value) value {
	pending := false
	for _, v := range vs {
		if v.isPending() {
			pending = true
			break
		}
	}
	if !pending {
		results := make([]interface{}, len(vs))
		for i, v := range vs {
			if v.err != nil {
				return readyValue(nil, v.err)
			}
			results[i] = v.result
		}
		return readyValue(results, nil)
	}

	out := NewFuture()
	go func() {
		results := make([]interface{}, len(vs))
		for i, v := range vs {
			res, err := v.await()
			if err != nil {
				out.Resolve(nil, err)
				return
			}
			results[i] = res
		}
		out.Resolve(results, nil)
	}()
	return pendingValue(out)
}

// keyedValue pairs a response key with the value computed for it, used by
// mapObjectValues to rebuild an object in collection order once every field
// has settled.
type keyedValue struct {
	key   string
	value value
}

// mapObjectValues combines keyed values into a value of an ordered map,
// preserving the input order of kvs as the field order of the resulting
// object. Sync fast path mirrors allValues.
func mapObjectValues(kvs []keyedValue) value {
	pending := false
	for _, kv := range kvs {
		if kv.value.isPending() {
			pending = true
			break
		}
	}
	if !pending {
		obj := newOrderedMap(len(kvs))
		for _, kv := range kvs {
			if kv.value.err != nil {
				return readyValue(nil, kv.value.err)
			}
			obj.set(kv.key, kv.value.result)
		}
		return readyValue(obj, nil)
	}

	out := NewFuture()
	go func() {
		obj := newOrderedMap(len(kvs))
		for _, kv := range kvs {
			res, err := kv.value.await()
			if err != nil {
				out.Resolve(nil, err)
				return
			}
			obj.set(kv.key, res)
		}
		out.Resolve(obj, nil)
	}()
	return pendingValue(out)
}
