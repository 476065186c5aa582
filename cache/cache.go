// Package cache keeps accuracy reports on disk, keyed by the content of the
// texts they were computed from.
package cache

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/ulikunitz/xz"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/blake3"

	"github.com/ughe/ocreval/accrpt"
	"github.com/ughe/ocreval/doc"
)

// Bump when the payload or the scoring changes so old entries are ignored.
const schema uint16 = 1

type Key [32]byte

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// KeyFor hashes both texts and the decoding options. Each field is length
// prefixed so that moving bytes between the texts changes the key.
func KeyFor(correct, generated []byte, opts doc.Options) Key {
	h := blake3.New()
	var n [8]byte
	field := func(b []byte) {
		binary.LittleEndian.PutUint64(n[:], uint64(len(b)))
		h.Write(n[:])
		h.Write(b)
	}
	binary.LittleEndian.PutUint16(n[:2], schema)
	h.Write(n[:2])
	field(correct)
	field(generated)
	field([]byte(opts.Form))
	if opts.EnsureNewline {
		field([]byte{1})
	} else {
		field([]byte{0})
	}
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

type payload struct {
	Schema uint16
	Report *accrpt.Report
}

// Cache is safe for concurrent use. A nil *Cache misses every Get and drops
// every Put.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(k Key) string {
	s := k.String()
	return filepath.Join(c.dir, "reports", s[:2], s+".mp.xz")
}

// Put writes r under k, replacing any previous entry atomically.
func (c *Cache) Put(k Key, r *accrpt.Report) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(k)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	zw, err := xz.NewWriter(f)
	if err != nil {
		f.Close()
		return err
	}
	if err := msgpack.NewEncoder(zw).Encode(&payload{Schema: schema, Report: r}); err != nil {
		f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get returns the report stored under k. Entries written by another schema
// are misses.
func (c *Cache) Get(k Key) (*accrpt.Report, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(k))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	zr, err := xz.NewReader(f)
	if err != nil {
		return nil, false, err
	}
	var p payload
	if err := msgpack.NewDecoder(zr).Decode(&p); err != nil {
		return nil, false, err
	}
	if p.Schema != schema || p.Report == nil {
		return nil, false, nil
	}
	return p.Report, true, nil
}

// Clear removes every cached report.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "reports"))
}
