package contactdir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// ContactSet holds the contacts found for one locality, keyed by a display
// key derived from the contact name. Contacts are deduplicated by identity:
// the first contact inserted for an identity wins and later duplicates are
// ignored. Iteration follows insertion order.
//
// ContactSet is not safe for concurrent use.
type ContactSet struct {
	keys     []string
	byKey    map[string]*Contact
	identity map[IdentityKey]string
}

// NewContactSet returns an empty ContactSet.
func NewContactSet() *ContactSet {
	return &ContactSet{
		byKey:    make(map[string]*Contact),
		identity: make(map[IdentityKey]string),
	}
}

// Add inserts c and returns true, or returns false if a contact with the same
// identity is already present.
func (s *ContactSet) Add(c *Contact) bool {
	s.init()
	id := c.Identity()
	if _, ok := s.identity[id]; ok {
		return false
	}
	key := s.displayKey(c.Name)
	s.put(key, c)
	s.identity[id] = key
	return true
}

// Merge adds every contact of other in order and returns the number added.
func (s *ContactSet) Merge(other *ContactSet) int {
	if other == nil {
		return 0
	}
	var n int
	for _, c := range other.Contacts() {
		if s.Add(c) {
			n++
		}
	}
	return n
}

// Len returns the number of contacts in the set.
func (s *ContactSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Get returns the contact stored under key.
func (s *ContactSet) Get(key string) (*Contact, bool) {
	if s == nil || s.byKey == nil {
		return nil, false
	}
	c, ok := s.byKey[key]
	return c, ok
}

// Keys returns the display keys in insertion order.
func (s *ContactSet) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

// Contacts returns the contacts in insertion order.
func (s *ContactSet) Contacts() []*Contact {
	if s == nil {
		return nil
	}
	out := make([]*Contact, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.byKey[k])
	}
	return out
}

// MarshalJSON encodes the set as an object of display key to contact,
// preserving insertion order.
func (s *ContactSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.byKey[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of display key to contact. Display keys
// are kept exactly as written.
func (s *ContactSet) UnmarshalJSON(data []byte) error {
	*s = ContactSet{}
	s.init()

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("contact set: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var c Contact
		if err := dec.Decode(&c); err != nil {
			return fmt.Errorf("contact set: decoding %q: %w", key, err)
		}
		if _, dup := s.byKey[key]; dup {
			continue
		}
		s.put(key, &c)
		if _, ok := s.identity[c.Identity()]; !ok {
			s.identity[c.Identity()] = key
		}
	}
	_, err = dec.Token()
	return err
}

func (s *ContactSet) init() {
	if s.byKey == nil {
		s.byKey = make(map[string]*Contact)
	}
	if s.identity == nil {
		s.identity = make(map[IdentityKey]string)
	}
}

func (s *ContactSet) put(key string, c *Contact) {
	s.keys = append(s.keys, key)
	s.byKey[key] = c
}

// displayKey returns name, suffixed with a counter if name is taken.
func (s *ContactSet) displayKey(name string) string {
	if _, taken := s.byKey[name]; !taken {
		return name
	}
	for i := 2; ; i++ {
		key := fmt.Sprintf("%s (%d)", name, i)
		if _, taken := s.byKey[key]; !taken {
			return key
		}
	}
}

// Results maps locality names to their contacts.
type Results map[string]*ContactSet

// Total returns the number of contacts across all localities.
func (r Results) Total() int {
	var n int
	for _, s := range r {
		n += s.Len()
	}
	return n
}

// Localities returns the locality names in sorted order.
func (r Results) Localities() []string {
	return slices.Sorted(maps.Keys(r))
}

// Empty returns the sorted localities with no contacts.
func (r Results) Empty() []string {
	var out []string
	for _, name := range r.Localities() {
		if r[name].Len() == 0 {
			out = append(out, name)
		}
	}
	return out
}
