package resource

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Entry is a protected resource pattern with its required scopes.
type Entry struct {
	Pattern string
	Scopes  []string
}

// Map is an ordered protected resource map: pattern -> scopes.
// The zero value is ready to use.
type Map struct {
	entries []*Entry
	index   map[string]int
}

// NewMap creates a map with the supplied entries, in order.
func NewMap(entries ...Entry) *Map {
	ret := &Map{}
	for _, entry := range entries {
		ret.Put(entry.Pattern, entry.Scopes...)
	}
	return ret
}

// Put sets scopes for pattern; an existing pattern keeps its position.
func (m *Map) Put(pattern string, scopes ...string) {
	if m.index == nil {
		m.index = map[string]int{}
	}
	scopes = append([]string(nil), scopes...)
	if i, ok := m.index[pattern]; ok {
		m.entries[i].Scopes = scopes
		return
	}
	m.index[pattern] = len(m.entries)
	m.entries = append(m.entries, &Entry{Pattern: pattern, Scopes: scopes})
}

// Get returns scopes registered for the exact pattern.
func (m *Map) Get(pattern string) ([]string, bool) {
	if m == nil || m.index == nil {
		return nil, false
	}
	i, ok := m.index[pattern]
	if !ok {
		return nil, false
	}
	return m.entries[i].Scopes, true
}

// Delete removes pattern from the map.
func (m *Map) Delete(pattern string) {
	if m == nil || m.index == nil {
		return
	}
	i, ok := m.index[pattern]
	if !ok {
		return
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	delete(m.index, pattern)
	for j := i; j < len(m.entries); j++ {
		m.index[m.entries[j].Pattern] = j
	}
}

// Len returns number of patterns.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns a copy of the entries in map order.
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	ret := make([]Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		ret = append(ret, Entry{Pattern: entry.Pattern, Scopes: append([]string(nil), entry.Scopes...)})
	}
	return ret
}

// Scopes returns scopes of the first pattern matching endpoint, or nil when none matches.
func (m *Map) Scopes(endpoint string) []string {
	if m == nil {
		return nil
	}
	for _, entry := range m.entries {
		if Match(entry.Pattern, endpoint) {
			return entry.Scopes
		}
	}
	return nil
}

// Match reports whether pattern glob-matches endpoint or is a substring of it.
// A malformed glob pattern is only tested as a substring.
func Match(pattern, endpoint string) bool {
	if ok, err := doublestar.Match(pattern, endpoint); err == nil && ok {
		return true
	}
	return strings.Contains(endpoint, pattern)
}

// UnmarshalYAML decodes a mapping of pattern to scopes keeping document order.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("protected resource map: expected mapping at line %d, got %v", node.Line, node.Tag)
	}
	*m = Map{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var scopes []string
		switch value.Kind {
		case yaml.ScalarNode:
			if value.ShortTag() != "!!null" {
				scopes = strings.Fields(value.Value)
			}
		default:
			if err := value.Decode(&scopes); err != nil {
				return fmt.Errorf("protected resource %q: %w", key.Value, err)
			}
		}
		m.Put(key.Value, scopes...)
	}
	return nil
}

// MarshalYAML encodes the map as an ordered mapping.
func (m *Map) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, entry := range m.entries {
		value := &yaml.Node{}
		if err := value.Encode(entry.Scopes); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Pattern}, value)
	}
	return node, nil
}
