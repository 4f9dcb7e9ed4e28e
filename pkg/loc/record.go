// Package loc holds the per-line dataset: one Record per line of code,
// attributed to the commit that last touched it.
package loc

import "time"

// TypeOther is the category assigned to lines without a type.
const TypeOther = "other"

// Record is a single line of code attributed to a commit.
type Record struct {
	Commit   string    `json:"commit"`
	File     string    `json:"file"`
	Line     int       `json:"line"`
	Depth    int       `json:"depth"`
	Length   int       `json:"length"`
	Type     string    `json:"type"`
	Author   string    `json:"author"`
	Date     string    `json:"date"`
	Time     string    `json:"time"`
	Timezone string    `json:"timezone"`
	Datetime time.Time `json:"datetime"`
}

// Category returns the record type, or TypeOther when the type is empty.
func (r Record) Category() string {
	if r.Type == "" {
		return TypeOther
	}

	return r.Type
}

// Store is an immutable, ordered collection of records.
type Store struct {
	records []Record
}

// NewStore creates a store holding a copy of records.
func NewStore(records []Record) *Store {
	owned := make([]Record, len(records))
	copy(owned, records)

	return &Store{records: owned}
}

// Records returns a copy of the stored records in load order.
func (s *Store) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)

	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Each calls fn for every record in load order without copying the store.
func (s *Store) Each(fn func(Record)) {
	for i := range s.records {
		fn(s.records[i])
	}
}

// Files returns the distinct file paths in first-seen order.
func (s *Store) Files() []string {
	seen := make(map[string]struct{})

	var files []string

	for i := range s.records {
		name := s.records[i].File
		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		files = append(files, name)
	}

	return files
}
