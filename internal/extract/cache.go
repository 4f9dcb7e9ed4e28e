package extract

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/codefolio/pkg/gitlib"
	"github.com/Sumatoshi-tech/codefolio/pkg/persist"
)

const cachePrefix = "lines"

// Cache stores extraction results on disk, compressed, keyed by HEAD and
// the options that affect the output.
type Cache struct {
	dir       string
	persister *persist.Persister[Result]
}

// NewCache returns a cache rooted at dir.
func NewCache(dir string) *Cache {
	return &Cache{
		dir:       dir,
		persister: persist.NewPersister[Result](cachePrefix, persist.NewLZ4Codec(persist.NewGobCodec())),
	}
}

// Get returns the cached result for key. A missing or unreadable entry is a miss.
func (c *Cache) Get(key string) (*Result, bool) {
	res, err := c.persister.Load(c.dir, key)
	if err != nil {
		return nil, false
	}

	return res, true
}

// Put stores res under key.
func (c *Cache) Put(key string, res *Result) error {
	err := c.persister.Save(c.dir, key, res)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}

	return nil
}

func cacheKey(head gitlib.Hash, opts Options) string {
	h := fnv.New32a()

	h.Write([]byte(strconv.Itoa(opts.IndentWidth)))
	h.Write([]byte(strconv.FormatBool(opts.Languages)))
	h.Write([]byte(strings.Join(opts.SkipPrefixes, "\x00")))

	return head.String() + "-" + strconv.FormatUint(uint64(h.Sum32()), 16)
}
