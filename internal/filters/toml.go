package filters

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// ToTOML renders a mapping as a TOML document with the same nesting.
// Keys must be strings and every value must be representable in TOML.
func ToTOML(v interface{}) (string, error) {
	normalized, err := normalizeTOML(v, "")
	if err != nil {
		return "", err
	}

	table, ok := normalized.(map[string]interface{})
	if !ok {
		return "", errors.Errorf("to_toml expects a mapping, got %T", v)
	}

	out, err := toml.Marshal(table)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode TOML")
	}

	return string(out), nil
}

// normalizeTOML converts decoded YAML/JSON values into the plain maps, slices and
// scalars the TOML encoder understands.
func normalizeTOML(v interface{}, path string) (interface{}, error) {
	switch val := v.(type) {
	case nil:
		return nil, errors.Errorf("%s: null values cannot be represented in TOML", displayPath(path))
	case string, bool, int64, float64, time.Time:
		return val, nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, errors.Wrapf(err, "%s: invalid number", displayPath(path))
		}
		return f, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		table := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key, ok := mapKey(iter.Key())
			if !ok {
				return nil, errors.Errorf("%s: map key %v of type %T is not a string", displayPath(path), iter.Key().Interface(), iter.Key().Interface())
			}
			value, err := normalizeTOML(iter.Value().Interface(), joinPath(path, key))
			if err != nil {
				return nil, err
			}
			table[key] = value
		}
		return table, nil

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []interface{}{}, nil
		}
		list := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			value, err := normalizeTOML(rv.Index(i).Interface(), fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			list[i] = value
		}
		return list, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, errors.Errorf("%s: integer %d overflows TOML integers", displayPath(path), u)
		}
		return int64(u), nil

	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil

	case reflect.String:
		return rv.String(), nil

	case reflect.Bool:
		return rv.Bool(), nil

	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil, errors.Errorf("%s: null values cannot be represented in TOML", displayPath(path))
		}
		return normalizeTOML(rv.Elem().Interface(), path)
	}

	return nil, errors.Errorf("%s: values of type %T cannot be represented in TOML", displayPath(path), v)
}

func mapKey(key reflect.Value) (string, bool) {
	if key.Kind() == reflect.Interface {
		if key.IsNil() {
			return "", false
		}
		key = key.Elem()
	}
	if key.Kind() != reflect.String {
		return "", false
	}
	return key.String(), true
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func displayPath(path string) string {
	if path == "" {
		return "value"
	}
	return path
}
