package visits

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// StorageKey is where the running count lives.
const StorageKey = "visitCount"

// Storage is a string key/value store. ok is false when the key is absent.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Counter increments the persisted count once per load.
type Counter struct {
	storage Storage
	logger  *log.Entry
	once    sync.Once
	value   int
	err     error
}

func NewCounter(storage Storage) *Counter {
	return &Counter{
		storage: storage,
		logger: log.WithFields(log.Fields{
			"module": "visits",
		}),
	}
}

// Load reads the stored count, increments it and writes it back. Only the
// first call touches storage; later calls return the same value. A write
// failure is returned, but the incremented value is still reported.
func (c *Counter) Load() (int, error) {
	c.once.Do(func() {
		current := c.read()
		c.value = current + 1
		if err := c.storage.Set(StorageKey, strconv.Itoa(c.value)); err != nil {
			c.logger.Errorf("failed to persist visit count: %v", err)
			c.err = fmt.Errorf("failed to persist visit count: %w", err)
			return
		}
		c.logger.Debugf("visit count is now %d", c.value)
	})
	return c.value, c.err
}

func (c *Counter) Value() int {
	return c.value
}

func (c *Counter) read() int {
	raw, ok, err := c.storage.Get(StorageKey)
	if err != nil {
		c.logger.Warnf("failed to read visit count, starting from 0: %v", err)
		return 0
	}
	if !ok {
		return 0
	}
	return Parse(raw)
}

// Parse turns a stored value into a count. Anything that is not a
// non-negative integer counts as 0.
func Parse(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// MemoryStorage keeps values in process memory.
type MemoryStorage struct {
	mutex  sync.Mutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.values[key] = value
	return nil
}
