package graphql

import (
	"context"
	"sync"

	"github.com/vektah/gqlparser/v2/ast"

	gerrors "github.com/shyptr/gqlexec/errors"
)

// Patch is one incremental payload produced by a @defer'd fragment or a
// @stream'd list item: a value keyed by the response path it belongs at,
// merged into the client's in-progress document as it arrives.
type Patch struct {
	Path   []interface{}
	Label  string
	Data   interface{}
	Errors []*gerrors.GraphQLError
}

// Dispatcher fans in every deferred fragment and streamed list item queued
// during a single request's execution, running each on its own goroutine and
// delivering completed Patches over a channel as they settle - the natural
// realization in Go of "race whichever unit of incremental work finishes
// first" rather than delivering them in selection order.
type Dispatcher struct {
	patches chan *Patch
	wg      sync.WaitGroup
}

// NewDispatcher allocates a Dispatcher ready to accept queued work.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{patches: make(chan *Patch, 8)}
}

// Patches exposes the channel a caller drains for incremental payloads. It
// closes once every queued unit of work (including nested defers queued by
// earlier patches) has been delivered.
func (d *Dispatcher) Patches() <-chan *Patch {
	return d.patches
}

// Wait blocks until every queued unit of work has produced its patch, then
// closes the channel. Call it from its own goroutine once the initial result
// has settled, so that any later queueing happens inside work still counted.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
	close(d.patches)
}

func (d *Dispatcher) queue(fn func() *Patch) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.patches <- fn()
	}()
}

// queueDefer schedules a deferred fragment's selection set to be collected
// and executed against source, delivered later as a Patch at path.
func (d *Dispatcher) queueDefer(ctx context.Context, ec *ExecutionContext, path *Path, fragment *DeferredFragment, source interface{}) {
	d.queue(func() *Patch {
		fork := ec.forkErrors()
		groups, nested := CollectFields(ctx, fork, fragment.Owner, fragment.ObjectType, fragment.SelectionSet)
		for _, n := range nested {
			d.queueDefer(ctx, ec, path, n, source)
		}
		v := executeFieldGroups(ctx, fork, path, fragment.ObjectType, source, groups)
		data, _ := v.await()
		return &Patch{
			Path:   path.Linearize(),
			Label:  fragment.Label,
			Data:   data,
			Errors: fork.errors.all(),
		}
	})
}

// queueStreamItem schedules one list element beyond a @stream directive's
// initialCount to be completed and delivered as its own Patch.
func (d *Dispatcher) queueStreamItem(ctx context.Context, ec *ExecutionContext, listPath *Path, label string, index int, itemType Type, fieldNodes []*ast.Field, item interface{}) {
	d.queue(func() *Patch {
		fork := ec.forkErrors()
		itemPath := AppendPath(listPath, index, "")
		v := settle(itemType, completeValue(ctx, fork, itemPath, itemType, fieldNodes, item))
		data, _ := v.await()
		return &Patch{
			Path:   itemPath.Linearize(),
			Label:  label,
			Data:   data,
			Errors: fork.errors.all(),
		}
	})
}
