package hub75

import "sync"

// There is one physical panel behind each device identity; two live handles
// would clock conflicting bit streams onto the same pins. Open therefore
// claims the device and a second Open fails with ErrClaimed until Close.

var (
	claimMu sync.Mutex
	claims  = map[string]*claim{}
)

type claim struct {
	key  string
	mu   sync.Mutex
	done bool
}

func acquire(key string) (*claim, error) {
	claimMu.Lock()
	defer claimMu.Unlock()
	if _, held := claims[key]; held {
		return nil, ErrClaimed
	}
	c := &claim{key: key}
	claims[key] = c
	return c, nil
}

// release frees the device for a later Open. Safe to call more than once;
// only the first call does anything.
func (c *claim) release() {
	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return
	}
	c.done = true
	c.mu.Unlock()

	claimMu.Lock()
	delete(claims, c.key)
	claimMu.Unlock()
}

func (c *claim) released() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}
