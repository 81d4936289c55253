// Package listings implements the search side of the marketplace client:
// filter normalization, the paginated feed fetcher, and its per-query page
// cache.
package listings

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Filters is the user-selected search criteria as the filter UI produces
// them. The zero value means "no constraints". A zero Beds/Baths/price bound
// reads as unset; a listing with literally zero bedrooms cannot be asked for.
type Filters struct {
	Location  string
	Types     []string
	Status    string
	Beds      int
	Baths     int
	SortBy    string
	PriceFrom int
	PriceTo   int
}

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindArray
)

// Value is one normalized query parameter: a string scalar, a numeric
// scalar, or an array of strings. Arrays are sent JSON-encoded, scalars raw.
type Value struct {
	kind valueKind
	str  string
	num  int
	arr  []string
}

func StringValue(s string) Value {
	return Value{kind: kindString, str: s}
}

func IntValue(n int) Value {
	return Value{kind: kindInt, num: n}
}

func ArrayValue(elems []string) Value {
	return Value{kind: kindArray, arr: elems}
}

// Encode renders the wire form of the value. Array values become JSON array
// strings containing every original element.
func (v Value) Encode() string {
	switch v.kind {
	case kindArray:
		b, err := json.Marshal(v.arr)
		if err != nil {
			return "[]"
		}
		return string(b)
	case kindInt:
		return strconv.Itoa(v.num)
	default:
		return v.str
	}
}

// Query is the server-ready parameter set derived from Filters. It is pure
// data; Key() is its identity.
type Query map[string]Value

// Params returns the encoded query parameters for an outgoing request.
func (q Query) Params() map[string]string {
	params := make(map[string]string, len(q))
	for k, v := range q {
		params[k] = v.Encode()
	}
	return params
}

// Key returns a canonical serialization of the query. Two queries built from
// equal filters always produce the same key, so the key doubles as the page
// cache key.
func (q Query) Key() string {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(q[k].Encode())
	}
	return b.String()
}
