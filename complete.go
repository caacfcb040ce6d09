package graphql

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
)

// resolveField runs one field's resolver and completes its result against
// the field's declared type. It is the sole place a field's own
// non-null/nullable boundary is applied: whatever error bubbles up out of
// completeValue (necessarily from a non-null descendant, since completeValue
// itself never swallows) is either kept propagating, if this field's own
// declared type is itself non-null, or converted into a benign null for this
// field alone.
func resolveField(ctx context.Context, ec *ExecutionContext, path *Path, objectType *Object, source interface{}, group *FieldGroup) value {
	node := group.Nodes[0]

	fieldDef, ok := objectType.Fields[node.Name]
	if !ok {
		if node.Name == "__typename" {
			return readyValue(objectType.Name, nil)
		}
		err := ec.recordError(fmt.Errorf("unknown field %q on type %q", node.Name, objectType.Name), path, group.Nodes)
		return readyValue(nil, err)
	}

	args, err := coerceArguments(ctx, fieldDef.Args, node.Arguments, ec.VariableValues, node)
	if err != nil {
		located := ec.recordError(err, path, group.Nodes)
		return settle(fieldDef.Type, readyValue(nil, located))
	}

	resolved := invokeResolver(ctx, ec, path, group.Nodes, fieldDef, source, args)
	completed := flatMapValue(resolved, func(raw interface{}) value {
		return completeValue(ctx, ec, path, fieldDef.Type, group.Nodes, raw)
	})
	return settle(fieldDef.Type, completed)
}

// invokeResolver calls the field's resolver (with panic recovery) and lifts
// the outcome into the value monad: a *Future result stays pending, anything
// else settles immediately. A resolver error is located and recorded here,
// at its origin, exactly once.
func invokeResolver(ctx context.Context, ec *ExecutionContext, path *Path, fieldNodes []*ast.Field, fieldDef *Field, source, args interface{}) value {
	raw, resolveErr := safeResolve(ctx, fieldDef.FieldResolve, source, args)
	if resolveErr != nil {
		if resolveErr == Skip {
			return readyValue(nil, nil)
		}
		located := ec.recordError(resolveErr, path, fieldNodes)
		return readyValue(nil, located)
	}
	if fut, ok := raw.(*Future); ok {
		return pendingValue(fut)
	}
	return readyValue(raw, nil)
}

// settle is the field/list-item boundary: it decides whether an error
// bubbling up from a completion converts to a benign null (t is nullable) or
// keeps propagating to the enclosing frame (t is non-null, which can never
// swallow an error of its own).
func settle(t Type, v value) value {
	if _, nonNull := t.(*NonNull); nonNull {
		return v
	}
	return swallowToNull(v)
}

// completeValue is the type-directed completion algorithm: given the
// declared type of a field or list element and the value its resolver
// produced, it serializes leaves, recurses into lists and objects, and
// resolves abstract types to a concrete Object before doing so. It never
// swallows an error itself - that is always the caller's job at the nearest
// field or list-item boundary - which is what lets a chain of nested
// non-null wrappers bubble a single error all the way to the first nullable
// ancestor with no double-reporting along the way.
func completeValue(ctx context.Context, ec *ExecutionContext, path *Path, fieldType Type, fieldNodes []*ast.Field, result interface{}) value {
	if nn, ok := fieldType.(*NonNull); ok {
		inner := completeValue(ctx, ec, path, nn.Type, fieldNodes, result)
		return flatMapValue(inner, func(v interface{}) value {
			if v == nil {
				err := ec.recordError(fmt.Errorf("cannot return null for non-nullable field %q", fieldNodes[0].Name), path, fieldNodes)
				return readyValue(nil, err)
			}
			return readyValue(v, nil)
		})
	}

	if isNilResult(result) {
		return readyValue(nil, nil)
	}

	switch t := fieldType.(type) {
	case *Scalar:
		v, err := t.Serialize(result)
		if err != nil {
			ec.recordError(fmt.Errorf("field %q: %w", fieldNodes[0].Name, err), path, fieldNodes)
			return readyValue(nil, nil)
		}
		return readyValue(v, nil)

	case *Enum:
		name, ok := t.ValuesLookup[result]
		if !ok {
			ec.recordError(fmt.Errorf("enum %s: value %v is not a valid member", t.Name, result), path, fieldNodes)
			return readyValue(nil, nil)
		}
		return readyValue(name, nil)

	case *List:
		return completeListValue(ctx, ec, path, t, fieldNodes, result)

	case *Object:
		return completeObjectValue(ctx, ec, path, t, fieldNodes, result)

	case *Interface:
		obj, err := resolveAbstractType(ctx, t.ResolveType, t.PossibleTypes, result)
		if err != nil {
			ec.recordError(err, path, fieldNodes)
			return readyValue(nil, nil)
		}
		return completeObjectValue(ctx, ec, path, obj, fieldNodes, result)

	case *Union:
		obj, err := resolveAbstractType(ctx, t.ResolveType, t.Types, result)
		if err != nil {
			ec.recordError(err, path, fieldNodes)
			return readyValue(nil, nil)
		}
		return completeObjectValue(ctx, ec, path, obj, fieldNodes, result)

	default:
		ec.recordError(fmt.Errorf("unsupported type %s", fieldType.String()), path, fieldNodes)
		return readyValue(nil, nil)
	}
}

func isNilResult(result interface{}) bool {
	if result == nil {
		return true
	}
	v := reflect.ValueOf(result)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return v.IsNil()
	default:
		return false
	}
}

// completeListValue reflects over result as a slice and completes each
// element against listType.Type, honoring @stream by handing everything
// past initialCount to the dispatcher instead of the synchronous result.
func completeListValue(ctx context.Context, ec *ExecutionContext, path *Path, listType *List, fieldNodes []*ast.Field, result interface{}) value {
	rv := reflect.ValueOf(result)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return readyValue(nil, nil)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return readyValue(nil, ec.recordError(fmt.Errorf("field %q: resolved value is not a list", fieldNodes[0].Name), path, fieldNodes))
	}

	length := rv.Len()
	initialCount := length
	label := ""
	if n, l, ok := streamArgs(ec, fieldNodes[0].Directives); ok {
		initialCount, label = n, l
		if initialCount < 0 {
			initialCount = 0
		}
		if initialCount > length {
			initialCount = length
		}
	}

	items := make([]value, 0, initialCount)
	for i := 0; i < initialCount; i++ {
		itemPath := AppendPath(path, i, "")
		item := completeValue(ctx, ec, itemPath, listType.Type, fieldNodes, rv.Index(i).Interface())
		items = append(items, settle(listType.Type, item))
	}

	if initialCount < length && ec.dispatcher != nil {
		for i := initialCount; i < length; i++ {
			ec.dispatcher.queueStreamItem(ctx, ec, path, label, i, listType.Type, fieldNodes, rv.Index(i).Interface())
		}
	}

	return allValues(items)
}

// completeObjectValue merges the selection sets of every merged field node,
// collects the subfields it selects against objectType, spins off any
// @defer'd fragments to the dispatcher, and executes the remaining fields.
func completeObjectValue(ctx context.Context, ec *ExecutionContext, path *Path, objectType *Object, fieldNodes []*ast.Field, result interface{}) value {
	if objectType.IsTypeOf != nil && !objectType.IsTypeOf(ctx, result) {
		err := ec.recordError(fmt.Errorf("value is not of type %q", objectType.Name), path, fieldNodes)
		return readyValue(nil, err)
	}

	owner := interface{}(fieldNodes[0])
	merged := mergeFieldSelectionSets(fieldNodes)
	groups, deferred := CollectFields(ctx, ec, owner, objectType, merged)

	if ec.dispatcher != nil {
		for _, d := range deferred {
			ec.dispatcher.queueDefer(ctx, ec, path, d, result)
		}
	}

	return executeFieldGroups(ctx, ec, path, objectType, result, groups)
}

// executeFieldGroups resolves every field group against source and combines
// the results into an ordered response object.
func executeFieldGroups(ctx context.Context, ec *ExecutionContext, path *Path, objectType *Object, source interface{}, groups []*FieldGroup) value {
	kvs := make([]keyedValue, 0, len(groups))
	for _, group := range groups {
		childPath := AppendPath(path, group.ResponseKey, objectType.Name)
		v := resolveField(ctx, ec, childPath, objectType, source, group)
		kvs = append(kvs, keyedValue{key: group.ResponseKey, value: v})
	}
	return mapObjectValues(kvs)
}

// resolveAbstractType picks the concrete Object a union or interface value
// belongs to. If resolveType is set it is consulted first and expected to
// return either the runtime value to match candidates' ReflectType against,
// or nil to fall through to IsTypeOf/reflection on the original value.
func resolveAbstractType(ctx context.Context, resolveType ResolveTypeFn, candidates map[string]*Object, result interface{}) (*Object, error) {
	subject := result
	if resolveType != nil {
		if resolved := resolveType(ctx, result); resolved != nil {
			subject = resolved
		}
	}

	names := make([]string, 0, len(candidates))
	for name := range candidates {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		obj := candidates[name]
		if obj.IsTypeOf != nil && obj.IsTypeOf(ctx, subject) {
			return obj, nil
		}
	}

	rt := concreteReflectType(subject)
	for _, name := range names {
		obj := candidates[name]
		if obj.ReflectType != nil && rt != nil && obj.ReflectType == rt {
			return obj, nil
		}
	}

	return nil, fmt.Errorf("could not resolve abstract type to any of its possible types")
}

func concreteReflectType(v interface{}) reflect.Type {
	if v == nil {
		return nil
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
