package document

import (
	"fmt"
	"strconv"

	"github.com/elliotchance/orderedmap"
)

// Props is an insertion-ordered map from string keys to primitive values
// (bool, float64 or string). It backs styles, attributes, marks and void data.
// The zero value is an empty map ready to use.
type Props struct {
	m *orderedmap.OrderedMap
}

// NewProps builds Props from alternating key/value pairs.
func NewProps(kv ...any) Props {
	var p Props
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("props: key %v is not a string", kv[i]))
		}
		p.Set(key, kv[i+1])
	}
	return p
}

func (p *Props) Set(key string, value any) {
	if p.m == nil {
		p.m = orderedmap.NewOrderedMap()
	}
	p.m.Set(key, normalizeValue(value))
}

func normalizeValue(v any) any {
	switch v := v.(type) {
	case bool, string, float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float32:
		return float64(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func (p *Props) Get(key string) (any, bool) {
	if p == nil || p.m == nil {
		return nil, false
	}
	return p.m.Get(key)
}

func (p *Props) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// String returns the value under key formatted as a string, or "".
func (p *Props) String(key string) string {
	v, ok := p.Get(key)
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// Bool reports whether key holds the boolean true.
func (p *Props) Bool(key string) bool {
	v, _ := p.Get(key)
	b, _ := v.(bool)
	return b
}

func (p *Props) Delete(key string) bool {
	if p == nil || p.m == nil {
		return false
	}
	return p.m.Delete(key)
}

func (p *Props) Len() int {
	if p == nil || p.m == nil {
		return 0
	}
	return p.m.Len()
}

func (p *Props) Keys() []string {
	if p.Len() == 0 {
		return nil
	}
	keys := make([]string, 0, p.m.Len())
	for el := p.m.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Key.(string))
	}
	return keys
}

// Range calls fn for every entry in insertion order until fn returns false.
func (p *Props) Range(fn func(key string, value any) bool) {
	if p.Len() == 0 {
		return
	}
	for el := p.m.Front(); el != nil; el = el.Next() {
		if !fn(el.Key.(string), el.Value) {
			return
		}
	}
}

// Merge copies all entries of other into p. Existing keys keep their position.
func (p *Props) Merge(other Props) {
	other.Range(func(k string, v any) bool {
		p.Set(k, v)
		return true
	})
}

func (p *Props) Clone() Props {
	var c Props
	c.Merge(*p)
	return c
}

// Equal compares entries regardless of order.
func (p *Props) Equal(other Props) bool {
	if p.Len() != other.Len() {
		return false
	}
	equal := true
	p.Range(func(k string, v any) bool {
		ov, ok := other.Get(k)
		equal = ok && ov == v
		return equal
	})
	return equal
}

// Map returns a plain map copy, mostly for tests and debugging.
func (p *Props) Map() map[string]any {
	out := make(map[string]any, p.Len())
	p.Range(func(k string, v any) bool {
		out[k] = v
		return true
	})
	return out
}

func FormatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
