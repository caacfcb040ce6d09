package graphql

import "reflect"

type Option func(*options)

type options struct {
	name             string
	description      string
	serialize        SerializeFn
	parseValue       ParseValueFn
	parseLiteral     ParseLiteralFn
	fieldResolve     FieldResolve
	defaultValue     interface{}
	nonnull          bool
	interfaces       []reflect.Type
	input            map[string]*FieldInputBuilder
	output           *FieldOutputBuilder
	resolveType      ResolveTypeFn
	deprecatedReason string
	isTypeOf         IsTypeOfFn
	validate         string
}

func Name(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func Description(description string) Option {
	return func(o *options) {
		o.description = description
	}
}

func Serialize(fn SerializeFn) Option {
	return func(o *options) {
		o.serialize = fn
	}
}

func ParseValue(fn ParseValueFn) Option {
	return func(o *options) {
		o.parseValue = fn
	}
}

func ParseLiteral(fn ParseLiteralFn) Option {
	return func(o *options) {
		o.parseLiteral = fn
	}
}

func Nonnull() Option {
	return func(o *options) {
		o.nonnull = true
	}
}

func DefaultValue(defaultValue interface{}) Option {
	return func(o *options) {
		o.defaultValue = defaultValue
	}
}

func Interfaces(interfaces ...interface{}) Option {
	return func(o *options) {
		for _, iface := range interfaces {
			ifaceType := reflect.TypeOf(iface)
			if ifaceType.Kind() != reflect.Interface {
				panic("interface type must be go interface")
			}
			o.interfaces = append(o.interfaces, ifaceType)
		}
	}
}

// Input declares one named argument on a field or directive. Applying Input
// more than once on the same FieldFunc/Directive call accumulates
// arguments, one map entry per name, matching how a GraphQL field can take
// several arguments at once.
func Input(name string, argumentType interface{}, opts ...Option) Option {
	return func(o *options) {
		reflectType := reflect.TypeOf(argumentType)

		options := options{name: name}
		for _, opt := range opts {
			opt(&options)
		}

		if o.input == nil {
			o.input = make(map[string]*FieldInputBuilder)
		}
		o.input[name] = &FieldInputBuilder{
			Name:         name,
			Description:  options.description,
			Type:         reflectType,
			DefaultValue: options.defaultValue,
			Validate:     options.validate,
		}
	}
}

func Output(outputType interface{}, opts ...Option) Option {
	return func(o *options) {
		reflectType := reflect.TypeOf(outputType)

		options := options{}
		for _, o := range opts {
			o(&options)
		}

		o.output = &FieldOutputBuilder{
			Type:    reflectType,
			Nonnull: options.nonnull,
		}
	}
}

func ResolveType(fn ResolveTypeFn) Option {
	return func(o *options) {
		o.resolveType = fn
	}
}

// Deprecated marks a field or enum value deprecated with reason as the
// explanation surfaced through introspection.
func Deprecated(reason string) Option {
	return func(o *options) {
		o.deprecatedReason = reason
	}
}

// IsTypeOf attaches a runtime type predicate to an Object.
func IsTypeOf(fn IsTypeOfFn) Option {
	return func(o *options) {
		o.isTypeOf = fn
	}
}

// Validate attaches a go-playground/validator tag (e.g. "gt=0,lte=100") to an
// Input argument, checked against the argument's coerced value before any
// resolver sees it.
func Validate(tag string) Option {
	return func(o *options) {
		o.validate = tag
	}
}
