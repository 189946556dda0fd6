package request

import (
	"maps"
	"slices"
)

// Auth keys understood by ParamsBag.SetAuth
const (
	AuthDomain = "domain"
	AuthLogin  = "login"
	AuthAPIKey = "apikey"
)

// orderedMap keeps keys unique and remembers first insertion order so the
// encoded query string stays stable between calls.
type orderedMap[V any] struct {
	keys   []string
	values map[string]V
}

func newOrderedMap[V any]() orderedMap[V] {
	return orderedMap[V]{values: make(map[string]V)}
}

func (m *orderedMap[V]) set(key string, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *orderedMap[V]) get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *orderedMap[V]) len() int {
	return len(m.keys)
}

func (m *orderedMap[V]) each(fn func(key string, value V)) {
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

func (m *orderedMap[V]) toMap() map[string]V {
	out := make(map[string]V, len(m.keys))
	for _, k := range m.keys {
		out[k] = m.values[k]
	}
	return out
}

func (m *orderedMap[V]) clone() orderedMap[V] {
	c := orderedMap[V]{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]V, len(m.values)),
	}
	copy(c.keys, m.keys)
	for k, v := range m.values {
		c.values[k] = v
	}
	return c
}

func (m *orderedMap[V]) reset() {
	m.keys = nil
	m.values = make(map[string]V)
}

// ParamsBag stores the credentials and the GET/POST arguments of a request.
//
// A ParamsBag is not safe for concurrent use. Every resource model gets its
// own copy through Clone.
type ParamsBag struct {
	auth orderedMap[string]
	get  orderedMap[string]
	post orderedMap[any]
}

// NewParamsBag creates an empty ParamsBag
func NewParamsBag() *ParamsBag {
	return &ParamsBag{
		auth: newOrderedMap[string](),
		get:  newOrderedMap[string](),
		post: newOrderedMap[any](),
	}
}

// SetAuth stores one of the credential fields (AuthDomain, AuthLogin, AuthAPIKey)
func (p *ParamsBag) SetAuth(key, value string) *ParamsBag {
	p.auth.set(key, value)
	return p
}

// Auth returns a credential field, or an empty string when it was never set
func (p *ParamsBag) Auth(key string) string {
	v, _ := p.auth.get(key)
	return v
}

// AddGet sets a single query parameter
func (p *ParamsBag) AddGet(key, value string) *ParamsBag {
	p.get.set(key, value)
	return p
}

// AddGetMap merges several query parameters
func (p *ParamsBag) AddGetMap(values map[string]string) *ParamsBag {
	for _, k := range sortedKeys(values) {
		p.get.set(k, values[k])
	}
	return p
}

// Get returns a copy of the current query parameters
func (p *ParamsBag) Get() map[string]string {
	return p.get.toMap()
}

// AddPost sets a single body field
func (p *ParamsBag) AddPost(key string, value any) *ParamsBag {
	p.post.set(key, value)
	return p
}

// AddPostMap merges several body fields
func (p *ParamsBag) AddPostMap(values map[string]any) *ParamsBag {
	for _, k := range sortedKeys(values) {
		p.post.set(k, values[k])
	}
	return p
}

// Post returns a copy of the current body fields
func (p *ParamsBag) Post() map[string]any {
	return p.post.toMap()
}

// HasPost reports whether any body fields are set
func (p *ParamsBag) HasPost() bool {
	return p.post.len() > 0
}

// ResetRequest drops the GET and POST arguments and keeps the credentials
func (p *ParamsBag) ResetRequest() {
	p.get.reset()
	p.post.reset()
}

// Clone returns an independent copy of the bag
func (p *ParamsBag) Clone() *ParamsBag {
	return &ParamsBag{
		auth: p.auth.clone(),
		get:  p.get.clone(),
		post: p.post.clone(),
	}
}

// sortedKeys gives map merges a deterministic insertion order
func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
