package cards

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

// Store is the read-only index from sanitized name to dataset record. It is
// built once and may be shared between goroutines without locking.
type Store struct {
	records    map[string]*RawRecord
	order      []*RawRecord
	position   map[string]int
	keys       []string
	collisions []Collision
	dropped    int
}

// Collision describes two dataset names that sanitize to the same key. Kept
// is the name that ended up indexed.
type Collision struct {
	Key      string
	Kept     string
	Replaced string
}

type loadOptions struct {
	keepUnsupported  bool
	strictCollisions bool
}

// LoadOption configures how a Store is built.
type LoadOption func(*loadOptions)

// WithUnsupportedLayouts keeps records whose layout is not one of the
// supported layouts. They resolve to Unimplemented entities.
func WithUnsupportedLayouts() LoadOption {
	return func(o *loadOptions) { o.keepUnsupported = true }
}

// WithStrictCollisions fails the build with ErrKeyCollision instead of
// letting the later record win.
func WithStrictCollisions() LoadOption {
	return func(o *loadOptions) { o.strictCollisions = true }
}

// Load builds a Store from raw dataset bytes.
func Load(data []byte, opts ...LoadOption) (*Store, error) {
	return LoadReader(bytes.NewReader(data), opts...)
}

// LoadFile builds a Store from a dataset file on disk.
func LoadFile(path string, opts ...LoadOption) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return LoadReader(f, opts...)
}

// LoadReader builds a Store from a JSON dataset stream. The dataset is either
// an object keyed by card name or an array of records. Records are indexed in
// stream order, which decides the winner of a key collision.
func LoadReader(r io.Reader, opts ...LoadOption) (*Store, error) {
	b := newBuilder(opts)
	if err := decodeRecords(r, b.add); err != nil {
		return nil, err
	}
	return b.store(), nil
}

// ReadRecords decodes every record of a dataset stream in order, without
// filtering layouts or merging names that collide.
func ReadRecords(r io.Reader) ([]RawRecord, error) {
	var records []RawRecord
	err := decodeRecords(r, func(rec RawRecord) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ReadRecordsFile is ReadRecords for a dataset file on disk.
func ReadRecordsFile(path string) ([]RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return ReadRecords(f)
}

func decodeRecords(r io.Reader, fn func(RawRecord) error) error {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return malformed(err)
	}

	switch tok {
	case json.Delim('{'):
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return malformed(err)
			}
			key, _ := keyTok.(string)

			var rec RawRecord
			if err := dec.Decode(&rec); err != nil {
				return malformed(fmt.Errorf("record %q: %w", key, err))
			}
			if rec.Name == "" {
				rec.Name = key
			}
			if err := fn(rec); err != nil {
				return err
			}
		}
	case json.Delim('['):
		for dec.More() {
			var rec RawRecord
			if err := dec.Decode(&rec); err != nil {
				return malformed(err)
			}
			if err := fn(rec); err != nil {
				return err
			}
		}
	default:
		return malformed(fmt.Errorf("unexpected token %v", tok))
	}

	// Closing delimiter, then nothing else.
	if _, err := dec.Token(); err != nil {
		return malformed(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return malformed(errors.New("trailing data after dataset"))
	}
	return nil
}

// NewStore builds a Store from in-memory records using the same rules as
// Load. It returns an error only for strict collisions.
func NewStore(records []RawRecord, opts ...LoadOption) (*Store, error) {
	b := newBuilder(opts)
	for _, rec := range records {
		if err := b.add(rec); err != nil {
			return nil, err
		}
	}
	return b.store(), nil
}

func malformed(err error) error {
	return fmt.Errorf("%w: %v", ErrDatasetMalformed, err)
}

type builder struct {
	opts loadOptions
	s    *Store
}

func newBuilder(opts []LoadOption) *builder {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &builder{
		opts: o,
		s: &Store{
			records:  make(map[string]*RawRecord),
			position: make(map[string]int),
		},
	}
}

func (b *builder) add(rec RawRecord) error {
	rec.kind = ParseLayout(rec.Layout)
	if rec.kind == LayoutUnsupported && !b.opts.keepUnsupported {
		b.s.dropped++
		return nil
	}

	key := Sanitize(rec.Name)
	if key == "" {
		b.s.dropped++
		return nil
	}

	r := &rec
	pos, exists := b.s.position[key]
	if !exists {
		b.s.position[key] = len(b.s.order)
		b.s.order = append(b.s.order, r)
		b.s.records[key] = r
		return nil
	}

	prev := b.s.records[key]
	if prev.Name != rec.Name {
		if b.opts.strictCollisions {
			return fmt.Errorf("%w: %q and %q both map to %q", ErrKeyCollision, prev.Name, rec.Name, key)
		}
		b.s.collisions = append(b.s.collisions, Collision{Key: key, Kept: rec.Name, Replaced: prev.Name})
	}
	b.s.order[pos] = r
	b.s.records[key] = r
	return nil
}

func (b *builder) store() *Store {
	s := b.s
	s.keys = make([]string, 0, len(s.records))
	for k := range s.records {
		s.keys = append(s.keys, k)
	}
	sort.Strings(s.keys)
	return s
}

// Get returns the record indexed under the sanitized form of name.
func (s *Store) Get(name string) (RawRecord, bool) {
	r, ok := s.records[Sanitize(name)]
	if !ok {
		return RawRecord{}, false
	}
	return *r, true
}

// Len returns the number of indexed records.
func (s *Store) Len() int {
	return len(s.records)
}

// Keys returns every lookup key in sorted order. The slice must not be modified.
func (s *Store) Keys() []string {
	return s.keys
}

// Records returns the indexed records in dataset order.
func (s *Store) Records() []RawRecord {
	out := make([]RawRecord, len(s.order))
	for i, r := range s.order {
		out[i] = *r
	}
	return out
}

// Collisions reports names that were overwritten during re-keying.
func (s *Store) Collisions() []Collision {
	return s.collisions
}

// Dropped returns the number of records filtered out at build time.
func (s *Store) Dropped() int {
	return s.dropped
}
