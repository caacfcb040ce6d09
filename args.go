package graphql

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/vektah/gqlparser/v2/ast"

	gerrors "github.com/shyptr/gqlexec/errors"
)

// argumentValidator runs go-playground/validator tags against coerced
// argument values before a field resolver ever sees them. An Input
// declaration can carry a Validate(tag) option (e.g. "gt=0,lte=100"); the
// binder only needs one shared instance to check it.
var argumentValidator = validator.New()

// coerceArguments walks a field's declared arguments, resolving each from the
// literal supplied in the operation or from vars for a $variable reference,
// applying declared default values, and parsing literals/values through the
// argument type's ParseLiteral/ParseValue. The result is a plain
// map[string]interface{} keyed by argument name, which is what every
// FieldResolve in this package receives as its args parameter.
func coerceArguments(ctx context.Context, fieldArgs map[string]*FieldInput, provided ast.ArgumentList, vars map[string]interface{}, fieldNode *ast.Field) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(fieldArgs))

	byName := make(map[string]*ast.Argument, len(provided))
	for _, arg := range provided {
		byName[arg.Name] = arg
	}

	for name, def := range fieldArgs {
		arg, ok := byName[name]
		if !ok {
			if def.DefaultValue != nil {
				out[name] = def.DefaultValue
				continue
			}
			if _, nonNull := def.Type.(*NonNull); nonNull {
				return nil, gerrors.Wrap(fmt.Errorf("argument %q of required type is not provided", name), nil, fieldNode.Position)
			}
			continue
		}

		val, err := coerceArgumentValue(def.Type, arg.Value, vars)
		if err != nil {
			return nil, gerrors.Wrap(fmt.Errorf("argument %q: %w", name, err), nil, arg.Position)
		}
		if def.Validate != "" && val != nil {
			if err := argumentValidator.Var(val, def.Validate); err != nil {
				return nil, gerrors.Wrap(fmt.Errorf("argument %q: %w", name, err), nil, arg.Position)
			}
		}
		out[name] = val
	}

	return out, nil
}

// coerceArgumentValue resolves a single AST value against a target type,
// unwrapping NonNull/List wrappers and dispatching to the leaf type's
// ParseValue (for a variable reference) or ParseLiteral (for an inline
// literal).
func coerceArgumentValue(typ Type, value *ast.Value, vars map[string]interface{}) (interface{}, error) {
	if value != nil && value.Kind == ast.Variable {
		v, ok := vars[value.Raw]
		if !ok {
			return nil, nil
		}
		return coerceVariableValue(typ, v)
	}

	switch t := typ.(type) {
	case *NonNull:
		if value == nil {
			return nil, fmt.Errorf("must not be null")
		}
		return coerceArgumentValue(t.Type, value, vars)
	case *List:
		if value == nil {
			return nil, nil
		}
		if value.Kind != ast.ListValue {
			single, err := coerceArgumentValue(t.Type, value, vars)
			if err != nil {
				return nil, err
			}
			return []interface{}{single}, nil
		}
		items := make([]interface{}, 0, len(value.Children))
		for _, child := range value.Children {
			item, err := coerceArgumentValue(t.Type, child.Value, vars)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case *InputObject:
		if value == nil {
			return nil, nil
		}
		obj := make(map[string]interface{}, len(t.Fields))
		for fieldName, fieldDef := range t.Fields {
			child := value.Children.ForName(fieldName)
			if child == nil {
				if fieldDef.DefaultValue != nil {
					obj[fieldName] = fieldDef.DefaultValue
				}
				continue
			}
			v, err := coerceArgumentValue(fieldDef.Type, child, vars)
			if err != nil {
				return nil, err
			}
			obj[fieldName] = v
		}
		return obj, nil
	case *Scalar:
		if value == nil {
			return nil, nil
		}
		return t.ParseLiteral(*value)
	case *Enum:
		if value == nil {
			return nil, nil
		}
		if v, ok := t.NameLookup[value.Raw]; ok {
			return v, nil
		}
		return nil, fmt.Errorf("invalid value %q for enum %s", value.Raw, t.Name)
	default:
		return nil, fmt.Errorf("unsupported argument type %s", typ.String())
	}
}

// coerceVariableValue mirrors coerceArgumentValue for a value that already
// arrived decoded from the request's JSON variables map, applying the same
// wrapper-unwrapping but calling ParseValue on scalars instead of
// ParseLiteral.
func coerceVariableValue(typ Type, v interface{}) (interface{}, error) {
	switch t := typ.(type) {
	case *NonNull:
		if v == nil {
			return nil, fmt.Errorf("must not be null")
		}
		return coerceVariableValue(t.Type, v)
	case *List:
		if v == nil {
			return nil, nil
		}
		slice, ok := v.([]interface{})
		if !ok {
			single, err := coerceVariableValue(t.Type, v)
			if err != nil {
				return nil, err
			}
			return []interface{}{single}, nil
		}
		items := make([]interface{}, 0, len(slice))
		for _, item := range slice {
			coerced, err := coerceVariableValue(t.Type, item)
			if err != nil {
				return nil, err
			}
			items = append(items, coerced)
		}
		return items, nil
	case *InputObject:
		if v == nil {
			return nil, nil
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("expected object for %s", t.Name)
		}
		obj := make(map[string]interface{}, len(t.Fields))
		for name, fieldDef := range t.Fields {
			raw, ok := m[name]
			if !ok {
				if fieldDef.DefaultValue != nil {
					obj[name] = fieldDef.DefaultValue
				}
				continue
			}
			coerced, err := coerceVariableValue(fieldDef.Type, raw)
			if err != nil {
				return nil, err
			}
			obj[name] = coerced
		}
		return obj, nil
	case *Scalar:
		return t.ParseValue(v)
	case *Enum:
		if name, ok := t.ValuesLookup[v]; ok {
			return t.NameLookup[name], nil
		}
		return nil, fmt.Errorf("invalid value %v for enum %s", v, t.Name)
	default:
		return nil, fmt.Errorf("unsupported argument type %s", typ.String())
	}
}

func argBool(args interface{}, name string) (bool, bool) {
	m, ok := args.(map[string]interface{})
	if !ok {
		return false, false
	}
	v, ok := m[name]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func argString(args interface{}, name string) (string, bool) {
	m, ok := args.(map[string]interface{})
	if !ok {
		return "", false
	}
	v, ok := m[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
