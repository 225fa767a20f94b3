package goodreads

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clbanning/mxj/v2"
)

// Format selects how a response body is parsed.
type Format string

const (
	// FormatXML is the default Goodreads representation
	FormatXML Format = "xml"
	// FormatJSON is offered by a handful of endpoints such as book/review_counts.json
	FormatJSON Format = "json"
)

const (
	// xmlRoot wraps every XML document the API returns
	xmlRoot = "GoodreadsResponse"
	// attrPrefix marks XML attributes in a parsed Response
	attrPrefix = "-"
	// textKey holds element text when the element also carries attributes
	textKey = "#text"
)

// Response is the parsed body of an API call: a nested mapping of strings, maps and
// slices. For XML bodies the GoodreadsResponse root is removed, attributes are keys
// prefixed with "-", and text next to attributes is stored under "#text".
type Response map[string]any

// Lookup walks nested maps following keys.
func (r Response) Lookup(keys ...string) (any, bool) {
	var cur any = map[string]any(r)
	for _, key := range keys {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// String returns the text at keys, or "" when absent.
func (r Response) String(keys ...string) string {
	v, ok := r.Lookup(keys...)
	if !ok {
		return ""
	}
	return textOf(v)
}

// Attr returns attribute name of the element at keys.
func (r Response) Attr(name string, keys ...string) string {
	v, ok := r.Lookup(keys...)
	if !ok {
		return ""
	}
	m, ok := asMap(v)
	if !ok {
		return ""
	}
	return textOf(m[attrPrefix+name])
}

func parseBody(body []byte, format Format) (Response, error) {
	if format == FormatJSON {
		return parseJSON(body)
	}
	return parseXML(body)
}

func parseXML(body []byte) (Response, error) {
	m, err := mxj.NewMapXml(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if root, ok := asMap(m[xmlRoot]); ok {
		return Response(root), nil
	}
	if _, ok := m[xmlRoot]; ok {
		// <GoodreadsResponse/> with nothing inside
		return Response{}, nil
	}
	return Response(m), nil
}

func parseJSON(body []byte) (Response, error) {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return Response(m), nil
}

// errorMessage pulls the API's own error text out of a failure body.
func errorMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	switch trimmed[0] {
	case '{':
		var m map[string]any
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return ""
		}
		for _, key := range []string{"error", "message"} {
			if msg := textOf(m[key]); msg != "" {
				return msg
			}
		}
		return ""
	case '<':
		m, err := mxj.NewMapXml(trimmed)
		if err != nil {
			return ""
		}
		if msg := textOf(m["error"]); msg != "" {
			return msg
		}
		if root, ok := asMap(m[xmlRoot]); ok {
			return textOf(root["error"])
		}
		return ""
	default:
		// plain-text bodies such as "Invalid API key."
		line, _, _ := strings.Cut(string(trimmed), "\n")
		return strings.TrimSpace(line)
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Response:
		return m, true
	case mxj.Map:
		return m, true
	}
	return nil, false
}

// textOf returns the text of a scalar or of an element that carries attributes.
func textOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case map[string]any:
		if s, ok := t[textKey].(string); ok {
			return s
		}
		return ""
	case float64, bool, int, int64:
		return fmt.Sprint(t)
	}
	return ""
}
