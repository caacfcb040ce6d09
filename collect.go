package graphql

import (
	"context"

	"github.com/vektah/gqlparser/v2/ast"
)

// FieldGroup is every selection in a selection set that resolves to the same
// response key, merged together the way the spec requires so that a field
// selected once directly and once through a fragment only resolves once.
type FieldGroup struct {
	ResponseKey string
	Nodes       []*ast.Field
}

// DeferredFragment is a fragment spread or inline fragment collection put
// off until after the initial payload because it (or one of its ancestors)
// carries @defer. Owner is the AST node the fragment's selection set hangs
// off, used both as the collection memo key and to report positions.
type DeferredFragment struct {
	Label        string
	Owner        interface{}
	ObjectType   *Object
	SelectionSet ast.SelectionSet
}

// collectMemo caches a completed field collection by (owner node identity,
// concrete type name), the reference-based memoization the spec calls for:
// collectFields for a given selection set against a given runtime type never
// depends on the source value, so the same list result is produced no matter
// how many times a list field re-visits it for different elements.
type collectMemo struct {
	mu      chan struct{} // binary semaphore; sync.Mutex works too but this avoids importing it twice across files
	entries map[collectMemoKey]*collectMemoEntry
}

type collectMemoKey struct {
	owner    interface{}
	typeName string
}

type collectMemoEntry struct {
	groups   []*FieldGroup
	deferred []*DeferredFragment
}

func newCollectMemo() collectMemo {
	m := collectMemo{mu: make(chan struct{}, 1), entries: make(map[collectMemoKey]*collectMemoEntry)}
	m.mu <- struct{}{}
	return m
}

func (m collectMemo) lookup(owner interface{}, typeName string) (*collectMemoEntry, bool) {
	<-m.mu
	e, ok := m.entries[collectMemoKey{owner, typeName}]
	m.mu <- struct{}{}
	return e, ok
}

func (m collectMemo) store(owner interface{}, typeName string, groups []*FieldGroup, deferred []*DeferredFragment) {
	<-m.mu
	m.entries[collectMemoKey{owner, typeName}] = &collectMemoEntry{groups: groups, deferred: deferred}
	m.mu <- struct{}{}
}

// CollectFields groups selectionSet's fields by response key against
// objectType, inlining fragment spreads and inline fragments whose type
// condition matches, applying @skip/@include, and pulling out any fragment
// marked @defer into a separate list the caller schedules independently.
// owner identifies the AST node selectionSet came from (an *ast.Field, the
// *ast.OperationDefinition, an *ast.InlineFragment, or an
// *ast.FragmentDefinition) and is used purely as a memoization key.
func CollectFields(ctx context.Context, ec *ExecutionContext, owner interface{}, objectType *Object, selectionSet ast.SelectionSet) ([]*FieldGroup, []*DeferredFragment) {
	if entry, ok := ec.memo.lookup(owner, objectType.Name); ok {
		return entry.groups, entry.deferred
	}

	index := map[string]*FieldGroup{}
	var order []string
	var deferred []*DeferredFragment

	var walk func(ss ast.SelectionSet, visited map[string]bool)
	walk = func(ss ast.SelectionSet, visited map[string]bool) {
		for _, sel := range ss {
			switch sel := sel.(type) {
			case *ast.Field:
				if !shouldInclude(ec, sel.Directives) {
					continue
				}
				key := sel.Alias
				if key == "" {
					key = sel.Name
				}
				group, ok := index[key]
				if !ok {
					group = &FieldGroup{ResponseKey: key}
					index[key] = group
					order = append(order, key)
				}
				group.Nodes = append(group.Nodes, sel)

			case *ast.FragmentSpread:
				if !shouldInclude(ec, sel.Directives) || visited[sel.Name] {
					continue
				}
				fragment := ec.Fragments.ForName(sel.Name)
				if fragment == nil {
					continue
				}
				if !doesTypeConditionMatch(ec, fragment.TypeCondition, objectType) {
					continue
				}
				if label, ok := deferLabel(ec, sel.Directives); ok {
					deferred = append(deferred, &DeferredFragment{
						Label:        label,
						Owner:        fragment,
						ObjectType:   objectType,
						SelectionSet: fragment.SelectionSet,
					})
					continue
				}
				next := cloneVisited(visited)
				next[sel.Name] = true
				walk(fragment.SelectionSet, next)

			case *ast.InlineFragment:
				if !shouldInclude(ec, sel.Directives) {
					continue
				}
				if sel.TypeCondition != "" && !doesTypeConditionMatch(ec, sel.TypeCondition, objectType) {
					continue
				}
				if label, ok := deferLabel(ec, sel.Directives); ok {
					deferred = append(deferred, &DeferredFragment{
						Label:        label,
						Owner:        sel,
						ObjectType:   objectType,
						SelectionSet: sel.SelectionSet,
					})
					continue
				}
				walk(sel.SelectionSet, visited)
			}
		}
	}
	walk(selectionSet, map[string]bool{})

	groups := make([]*FieldGroup, len(order))
	for i, key := range order {
		groups[i] = index[key]
	}
	ec.memo.store(owner, objectType.Name, groups, deferred)
	return groups, deferred
}

func cloneVisited(visited map[string]bool) map[string]bool {
	next := make(map[string]bool, len(visited)+1)
	for k, v := range visited {
		next[k] = v
	}
	return next
}

// doesTypeConditionMatch reports whether objectType satisfies a fragment's
// type condition: an exact object match, membership in a named union, or
// implementation of a named interface.
func doesTypeConditionMatch(ec *ExecutionContext, typeCondition string, objectType *Object) bool {
	if typeCondition == "" || typeCondition == objectType.Name {
		return true
	}
	named := ec.Schema.GetType(typeCondition)
	switch t := named.(type) {
	case *Object:
		return t.Name == objectType.Name
	case *Interface, *Union:
		return ec.Schema.IsSubType(t.(Type), objectType)
	default:
		return false
	}
}

// shouldInclude evaluates @skip and @include against directives, returning
// false if the selection they annotate should be omitted from collection.
func shouldInclude(ec *ExecutionContext, directives ast.DirectiveList) bool {
	for _, d := range directives {
		switch d.Name {
		case "skip":
			if boolArg(ec, d, "if", false) {
				return false
			}
		case "include":
			if !boolArg(ec, d, "if", true) {
				return false
			}
		}
	}
	return true
}

// deferLabel reports whether directives carries an enabled @defer and, if
// so, the label to tag its incremental payload with.
func deferLabel(ec *ExecutionContext, directives ast.DirectiveList) (string, bool) {
	d := directives.ForName("defer")
	if d == nil {
		return "", false
	}
	if !boolArg(ec, d, "if", true) {
		return "", false
	}
	label, _ := stringArg(ec, d, "label")
	return label, true
}

// streamArgs reports whether directives carries an enabled @stream and, if
// so, its initialCount and label.
func streamArgs(ec *ExecutionContext, directives ast.DirectiveList) (initialCount int, label string, ok bool) {
	d := directives.ForName("stream")
	if d == nil {
		return 0, "", false
	}
	if !boolArg(ec, d, "if", true) {
		return 0, "", false
	}
	initialCount = intArg(ec, d, "initialCount", 0)
	label, _ = stringArg(ec, d, "label")
	return initialCount, label, true
}

func boolArg(ec *ExecutionContext, d *ast.Directive, name string, def bool) bool {
	arg := d.Arguments.ForName(name)
	if arg == nil {
		return def
	}
	v, err := coerceArgumentValue(booleanArgType, arg.Value, ec.VariableValues)
	if err != nil {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

func stringArg(ec *ExecutionContext, d *ast.Directive, name string) (string, bool) {
	arg := d.Arguments.ForName(name)
	if arg == nil {
		return "", false
	}
	v, err := coerceArgumentValue(stringArgType, arg.Value, ec.VariableValues)
	if err != nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func intArg(ec *ExecutionContext, d *ast.Directive, name string, def int) int {
	arg := d.Arguments.ForName(name)
	if arg == nil {
		return def
	}
	v, err := coerceArgumentValue(intArgType, arg.Value, ec.VariableValues)
	if err != nil {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

// booleanArgType, stringArgType and intArgType are minimal scalar
// descriptions used only to decode directive argument literals during
// collection, before the full schema-declared directive Args are consulted
// for validation elsewhere.
var (
	booleanArgType = &Scalar{Name: "Boolean", Serialize: Boolean.Serialize, ParseValue: Boolean.ParseValue, ParseLiteral: Boolean.ParseLiteral}
	stringArgType  = &Scalar{Name: "String", Serialize: String.Serialize, ParseValue: String.ParseValue, ParseLiteral: String.ParseLiteral}
	intArgType     = &Scalar{Name: "Int", Serialize: Int.Serialize, ParseValue: Int.ParseValue, ParseLiteral: Int.ParseLiteral}
)

// mergeFieldSelectionSets concatenates the selection sets of every merged
// field node sharing a response key, the input CollectFields needs to gather
// the subfields of an object field selected more than once at the same
// level (an alias collision or fragment overlap).
func mergeFieldSelectionSets(nodes []*ast.Field) ast.SelectionSet {
	var merged ast.SelectionSet
	for _, node := range nodes {
		merged = append(merged, node.SelectionSet...)
	}
	return merged
}
