package goodreads

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Params are the query parameters of a logical API call. Entries whose value is nil
// or the empty string are treated as absent and never reach the query string.
type Params map[string]any

// Values renders the parameters as a query, dropping absent entries.
func (p Params) Values() (url.Values, error) {
	values := url.Values{}
	for key, value := range p {
		if value == nil {
			continue
		}

		var str string
		switch v := value.(type) {
		case []string:
			str = strings.Join(v, ",")
		default:
			s, err := cast.ToStringE(v)
			if err != nil {
				return nil, fmt.Errorf("param %q: %w", key, err)
			}
			str = s
		}

		if str == "" {
			continue
		}
		values.Set(key, str)
	}
	return values, nil
}

// with returns a copy of p with key set to value. The receiver is left untouched.
func (p Params) with(key string, value any) Params {
	out := make(Params, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[key] = value
	return out
}

// Keys returns the names of the present parameters in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	values, err := p.Values()
	if err != nil {
		return keys
	}
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
