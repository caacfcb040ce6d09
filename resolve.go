package graphql

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
)

// defaultRecovery wraps a FieldResolve so a panicking resolver turns into a
// located error instead of taking the whole request down with it.
var defaultRecovery ResolveChain = func(resolve FieldResolve) FieldResolve {
	return func(ctx context.Context, source, args interface{}) (res interface{}, err error) {
		defer func() {
			if panicked := recover(); panicked != nil {
				const size = 64 << 10
				buf := make([]byte, size)
				buf = buf[:runtime.Stack(buf, false)]
				res, err = nil, fmt.Errorf("graphql: panic resolving field: %v\n%s", panicked, buf)
			}
		}()
		return resolve(ctx, source, args)
	}
}

// safeResolve invokes resolve with panic recovery installed.
func safeResolve(ctx context.Context, resolve FieldResolve, source, args interface{}) (interface{}, error) {
	return defaultRecovery(resolve)(ctx, source, args)
}

// DefaultFieldResolver builds a FieldResolve that reads name off source by
// reflection, first as an exported struct field and, failing that, as a
// zero/one-argument method. The struct-tag schema builder does not use it
// (it generates its own inline resolver for struct fields); it is available
// for programmatic schema construction outside that builder.
func DefaultFieldResolver(name string) FieldResolve {
	return func(ctx context.Context, source, args interface{}) (interface{}, error) {
		value := reflect.ValueOf(source)
		for value.Kind() == reflect.Ptr {
			if value.IsNil() {
				return nil, nil
			}
			value = value.Elem()
		}
		if !value.IsValid() {
			return nil, nil
		}
		if value.Kind() == reflect.Struct {
			if field := GetField(value, name); field != nil {
				return field.Interface(), nil
			}
		}
		method := reflect.ValueOf(source).MethodByName(name)
		if !method.IsValid() {
			return nil, fmt.Errorf("no field or method %q on %s", name, value.Type())
		}
		var in []reflect.Value
		if method.Type().NumIn() > 0 && method.Type().In(0).ConvertibleTo(reflect.TypeOf((*context.Context)(nil)).Elem()) {
			in = append(in, reflect.ValueOf(ctx))
		}
		out := method.Call(in)
		switch len(out) {
		case 1:
			return out[0].Interface(), nil
		case 2:
			err, _ := out[1].Interface().(error)
			return out[0].Interface(), err
		default:
			return nil, nil
		}
	}
}
