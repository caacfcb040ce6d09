package graphql

import (
	"context"
	"errors"
	"reflect"
)

type DirectiveLocation string

const (
	// Operations
	DirectiveLocationQuery              DirectiveLocation = "QUERY"
	DirectiveLocationMutation           DirectiveLocation = "MUTATION"
	DirectiveLocationSubscription       DirectiveLocation = "SUBSCRIPTION"
	DirectiveLocationField              DirectiveLocation = "FIELD"
	DirectiveLocationFragmentDefinition DirectiveLocation = "FRAGMENT_DEFINITION"
	DirectiveLocationFragmentSpread     DirectiveLocation = "FRAGMENT_SPREAD"
	DirectiveLocationInlineFragment     DirectiveLocation = "INLINE_FRAGMENT"

	// Schema Definitions
	DirectiveLocationSchema               DirectiveLocation = "SCHEMA"
	DirectiveLocationScalar               DirectiveLocation = "SCALAR"
	DirectiveLocationObject               DirectiveLocation = "OBJECT"
	DirectiveLocationFieldDefinition      DirectiveLocation = "FIELD_DEFINITION"
	DirectiveLocationArgumentDefinition   DirectiveLocation = "ARGUMENT_DEFINITION"
	DirectiveLocationInterface            DirectiveLocation = "INTERFACE"
	DirectiveLocationUnion                DirectiveLocation = "UNION"
	DirectiveLocationEnum                 DirectiveLocation = "ENUM"
	DirectiveLocationEnumValue            DirectiveLocation = "ENUM_VALUE"
	DirectiveLocationInputObject          DirectiveLocation = "INPUT_OBJECT"
	DirectiveLocationInputFieldDefinition DirectiveLocation = "INPUT_FIELD_DEFINITION"
)

var (
	Skip = errors.New("skip")
)

// DefaultDeprecationReason Constant string used for default reason for a deprecation.
const DefaultDeprecationReason = "No longer supported"

type ResolveChain func(FieldResolve) FieldResolve

// DirectiveFn receives the directive's coerced arguments keyed by name and
// returns the chain that wraps the underlying field resolver. @skip, @include,
// @defer and @stream all fit this shape even though each reads a different
// argument out of the map.
type DirectiveFn func(input map[string]interface{}) ResolveChain

// Directive structs are used by the GraphQL runtime as a way of modifying execution
// behavior. Type system creators will usually not create these directly.
type Directive struct {
	Name        string
	Description string
	Locations   []DirectiveLocation
	Args        map[string]*FieldInput
	DirectiveFn DirectiveFn
}

type DirectiveBuilder struct {
	Name        string
	Description string
	Locations   []DirectiveLocation
	Args        map[string]*FieldInputBuilder
	DirectiveFn DirectiveFn
}

// IncludeDirective is used to conditionally include fields or fragments.
var IncludeDirective = &DirectiveBuilder{
	Name:        "include",
	Description: "Directs the executor to include this field or fragment only when the `if` argument is true.",
	Locations: []DirectiveLocation{
		DirectiveLocationField,
		DirectiveLocationFragmentSpread,
		DirectiveLocationInlineFragment,
	},
	Args: map[string]*FieldInputBuilder{
		"if": {
			Name:        "if",
			Description: "Included when true.",
			Type:        reflect.TypeOf(bool(false)),
		},
	},
	DirectiveFn: func(input map[string]interface{}) ResolveChain {
		return func(resolve FieldResolve) FieldResolve {
			return func(ctx context.Context, source, args interface{}) (res interface{}, err error) {
				if b, _ := input["if"].(bool); !b {
					return nil, Skip
				}
				return resolve(ctx, source, args)
			}
		}
	},
}

// SkipDirective Used to conditionally skip (exclude) fields or fragments.
var SkipDirective = &DirectiveBuilder{
	Name:        "skip",
	Description: "Directs the executor to skip this field or fragment when the `if` argument is true.",
	Locations: []DirectiveLocation{
		DirectiveLocationField,
		DirectiveLocationFragmentSpread,
		DirectiveLocationInlineFragment,
	},
	Args: map[string]*FieldInputBuilder{
		"if": {
			Name:        "if",
			Description: "Skipped when true.",
			Type:        reflect.TypeOf(bool(false)),
		},
	},
	DirectiveFn: func(input map[string]interface{}) ResolveChain {
		return func(resolve FieldResolve) FieldResolve {
			return func(ctx context.Context, source, args interface{}) (res interface{}, err error) {
				if b, _ := input["if"].(bool); b {
					return nil, Skip
				}
				return resolve(ctx, source, args)
			}
		}
	},
}

// DeprecatedDirective  Used to declare element of a GraphQL schema as deprecated.
var DeprecatedDirective = &DirectiveBuilder{
	Name:        "deprecated",
	Description: "Marks an element of a GraphQL schema as no longer supported.",
	Locations: []DirectiveLocation{
		DirectiveLocationFieldDefinition,
		DirectiveLocationEnumValue,
	},
	Args: map[string]*FieldInputBuilder{
		"reason": {
			Name: "reason",
			Description: "Explains why this element was deprecated, usually also including a " +
				"suggestion for how to access supported similar data. Formatted" +
				"in [Markdown](https://daringfireball.net/projects/markdown/).",
			Type:         reflect.TypeOf(string("")),
			DefaultValue: DefaultDeprecationReason,
		},
	},
	DirectiveFn: func(input map[string]interface{}) ResolveChain {
		return func(resolve FieldResolve) FieldResolve {
			return func(ctx context.Context, source, args interface{}) (res interface{}, err error) {
				return resolve(ctx, source, args)
			}
		}
	},
}

// DeferDirective defers delivery of the fragment spread or inline fragment it annotates,
// returning it in a later incremental patch instead of the initial payload.
var DeferDirective = &DirectiveBuilder{
	Name:        "defer",
	Description: "Defers execution of this fragment, delivering it in a later incremental payload.",
	Locations: []DirectiveLocation{
		DirectiveLocationFragmentSpread,
		DirectiveLocationInlineFragment,
	},
	Args: map[string]*FieldInputBuilder{
		"if": {
			Name:         "if",
			Description:  "Deferred when true.",
			Type:         reflect.TypeOf(bool(false)),
			DefaultValue: true,
		},
		"label": {
			Name:        "label",
			Description: "A unique label assigned to this deferred payload for client identification.",
			Type:        reflect.TypeOf(string("")),
		},
	},
	DirectiveFn: func(input map[string]interface{}) ResolveChain {
		return func(resolve FieldResolve) FieldResolve {
			return resolve
		}
	},
}

// StreamDirective streams the elements of a list field, delivering initialCount
// items in the initial payload and the remainder as incremental patches.
var StreamDirective = &DirectiveBuilder{
	Name:        "stream",
	Description: "Streams the elements of a list field as a sequence of incremental payloads.",
	Locations: []DirectiveLocation{
		DirectiveLocationField,
	},
	Args: map[string]*FieldInputBuilder{
		"if": {
			Name:         "if",
			Description:  "Streamed when true.",
			Type:         reflect.TypeOf(bool(false)),
			DefaultValue: true,
		},
		"initialCount": {
			Name:         "initialCount",
			Description:  "The number of list items to include in the initial payload.",
			Type:         reflect.TypeOf(int(0)),
			DefaultValue: 0,
		},
		"label": {
			Name:        "label",
			Description: "A unique label assigned to this stream for client identification.",
			Type:        reflect.TypeOf(string("")),
		},
	},
	DirectiveFn: func(input map[string]interface{}) ResolveChain {
		return func(resolve FieldResolve) FieldResolve {
			return resolve
		}
	},
}
