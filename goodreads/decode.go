package goodreads

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// decodeFragment projects one parsed response fragment onto an entity schema.
// Values are weakly typed so that XML text decodes into numeric and boolean
// fields; the fragment itself is only read.
func decodeFragment(fragment any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			emptyHook,
			listHook,
			textHook,
		),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(fragment); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// emptyHook turns an empty element (<work/>) into an empty mapping so that it
// decodes into a zero-valued struct instead of failing.
func emptyHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	if to.Kind() != reflect.Struct && to.Kind() != reflect.Map {
		return data, nil
	}
	if s, _ := data.(string); strings.TrimSpace(s) == "" {
		return map[string]any{}, nil
	}
	return data, nil
}

// textHook collapses an element with attributes (<id type="integer">7</id>) into its
// text when the target is a scalar. Attribute-only elements such as
// <isbn nil="true"/> become the empty string.
func textHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Map {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array, reflect.Interface, reflect.Ptr:
		return data, nil
	}
	m, ok := asMap(data)
	if !ok {
		return data, nil
	}
	return textOf(m), nil
}

// listHook unwraps XML list containers. <authors><author/>...</authors> parses as
// {"author": ...}; the single child is lifted out and a lone element becomes a
// one-item list. Empty containers decode to an empty list.
func listHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Slice {
		return data, nil
	}

	switch from.Kind() {
	case reflect.String:
		if s, _ := data.(string); strings.TrimSpace(s) == "" {
			return []any{}, nil
		}
		return data, nil
	case reflect.Map:
	default:
		return data, nil
	}

	m, ok := asMap(data)
	if !ok {
		return data, nil
	}

	var children []string
	for key := range m {
		if strings.HasPrefix(key, attrPrefix) || key == textKey {
			continue
		}
		children = append(children, key)
	}

	switch len(children) {
	case 0:
		return []any{}, nil
	case 1:
		child := m[children[0]]
		switch c := child.(type) {
		case []any:
			return c, nil
		case string:
			if strings.TrimSpace(c) == "" {
				return []any{}, nil
			}
		}
		return []any{child}, nil
	default:
		// a single entity that was not wrapped in a container
		return []any{data}, nil
	}
}
