// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
)

var errUnsupportedConversion = errors.New("unsupported conversion")

// truthy lists the strings that coerce to true. Every other string,
// including "no" or "off", coerces to false.
var truthy = map[string]struct{}{
	"on":     {},
	"active": {},
	"yes":    {},
	"y":      {},
	"true":   {},
	"t":      {},
	"1":      {},
}

// Coerce converts value to the type of ref, the default value of a schema
// leaf. Lists are converted element-wise against ref's first element; a
// string given for a list is split on commas first.
//
// Malformed numeric strings return a [*CoercionError].
func Coerce(ref, value any) (any, error) {
	normalized, err := normalize(ref)
	if err != nil {
		return nil, &CoercionError{Value: ref, Err: err}
	}

	switch r := normalized.(type) {
	case bool:
		return toBool(value)
	case int64:
		return toInt(value)
	case float64:
		return toFloat(value)
	case string:
		return toString(value)
	case []any:
		return toList(r[0], value)
	}
	return nil, &CoercionError{Value: value, Err: errUnsupportedConversion}
}

func toBool(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		_, ok := truthy[strings.ToLower(strings.TrimSpace(v))]
		return ok, nil
	}
	if f, ok := numeric(value); ok {
		return f != 0, nil
	}
	return nil, &CoercionError{Value: value, Type: TypeBool, Err: errUnsupportedConversion}
}

func toInt(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		if v {
			return int64(1), nil
		}
		return int64(0), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, &CoercionError{Value: value, Type: TypeInt, Err: err}
		}
		return n, nil
	case float32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	}
	n, err := normalize(value)
	if err != nil {
		var ce *CoercionError
		if errors.As(err, &ce) {
			return nil, ce
		}
	} else if i, ok := n.(int64); ok {
		return i, nil
	}
	return nil, &CoercionError{Value: value, Type: TypeInt, Err: errUnsupportedConversion}
}

func toFloat(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		if v {
			return float64(1), nil
		}
		return float64(0), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, &CoercionError{Value: value, Type: TypeFloat, Err: err}
		}
		return f, nil
	}
	if f, ok := numeric(value); ok {
		return f, nil
	}
	return nil, &CoercionError{Value: value, Type: TypeFloat, Err: errUnsupportedConversion}
}

func toString(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	}
	if n, err := normalize(value); err == nil {
		if i, ok := n.(int64); ok {
			return strconv.FormatInt(i, 10), nil
		}
	}
	return nil, &CoercionError{Value: value, Type: TypeString, Err: errUnsupportedConversion}
}

func toList(elemRef, value any) (any, error) {
	if s, ok := value.(string); ok {
		value = splitList(s)
	}

	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, &CoercionError{Value: value, Type: TypeList, Err: errUnsupportedConversion}
	}

	out := make([]any, rv.Len())
	for i := range rv.Len() {
		item, err := Coerce(elemRef, rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out[i] = item
	}
	return out, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case uint64:
		return float64(v), true
	}
	n, err := normalize(value)
	if err != nil {
		return 0, false
	}
	i, ok := n.(int64)
	return float64(i), ok
}
