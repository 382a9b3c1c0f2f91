package sandbox

import (
	"fmt"

	starlarkLib "go.starlark.net/starlark"
)

// fromStarlarkValue converts a Starlark value to a Go any value.
func fromStarlarkValue(v starlarkLib.Value) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch v := v.(type) {
	case starlarkLib.NoneType:
		return nil, nil
	case starlarkLib.Bool:
		return bool(v), nil
	case starlarkLib.Int:
		i, _ := v.Int64()
		return i, nil
	case starlarkLib.Float:
		return float64(v), nil
	case starlarkLib.String:
		return string(v), nil
	case *starlarkLib.List:
		list := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			elem, err := fromStarlarkValue(v.Index(i))
			if err != nil {
				return nil, fmt.Errorf("failed to convert list element: %w", err)
			}
			list = append(list, elem)
		}
		return list, nil
	case *starlarkLib.Dict:
		return fromStarlarkDict(v)
	default:
		return nil, fmt.Errorf("unsupported starlark type %T", v)
	}
}

// fromStarlarkDict converts a Starlark dict into a JSON-shaped Go map.
// Non-string keys are stringified for JSON compatibility.
func fromStarlarkDict(d *starlarkLib.Dict) (map[string]any, error) {
	out := make(map[string]any, d.Len())
	for _, k := range d.Keys() {
		val, found, err := d.Get(k)
		if err != nil || !found {
			continue
		}

		kStr, ok := k.(starlarkLib.String)
		if !ok {
			kStr = starlarkLib.String(k.String())
		}

		vv, err := fromStarlarkValue(val)
		if err != nil {
			return nil, fmt.Errorf("failed to convert dict value for key %q: %w", string(kStr), err)
		}
		out[string(kStr)] = vv
	}
	return out, nil
}

// toStarlarkValue converts a JSON-shaped Go value to a Starlark value.
func toStarlarkValue(v any) (starlarkLib.Value, error) {
	if v == nil {
		return starlarkLib.None, nil
	}

	switch val := v.(type) {
	case bool:
		return starlarkLib.Bool(val), nil
	case int:
		return starlarkLib.MakeInt(val), nil
	case int64:
		return starlarkLib.MakeInt64(val), nil
	case float64:
		return starlarkLib.Float(val), nil
	case string:
		return starlarkLib.String(val), nil
	case []any:
		elements := make([]starlarkLib.Value, len(val))
		for i, elem := range val {
			var err error
			elements[i], err = toStarlarkValue(elem)
			if err != nil {
				return nil, fmt.Errorf("failed to convert list element: %w", err)
			}
		}
		return starlarkLib.NewList(elements), nil
	case map[string]any:
		return toStarlarkDict(val)
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// toStarlarkDict converts a JSON-shaped Go map into a mutable Starlark dict.
func toStarlarkDict(m map[string]any) (*starlarkLib.Dict, error) {
	dict := starlarkLib.NewDict(len(m))
	for k, v := range m {
		starlarkVal, err := toStarlarkValue(v)
		if err != nil {
			return nil, fmt.Errorf("failed to convert value for key %q: %w", k, err)
		}
		if err := dict.SetKey(starlarkLib.String(k), starlarkVal); err != nil {
			return nil, fmt.Errorf("failed to set dict key %q: %w", k, err)
		}
	}
	return dict, nil
}
