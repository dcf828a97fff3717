package container

import (
	"bytes"
	"crypto/rand"

	"github.com/dmitrijs2005/gophvault/internal/checksum"
	"github.com/dmitrijs2005/gophvault/internal/cryptox"
)

// keyCache maps (identifier, password digest) to a derived key. Passwords
// are never stored; they are hashed with a per-cache random key.
type keyCache struct {
	hasher checksum.Hasher
	keys   map[cacheKey][]byte
}

type cacheKey struct {
	identifier string
	digest     string
}

func newKeyCache() (*keyCache, error) {
	secret := make([]byte, checksum.KeySize)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	h, err := checksum.NewKeyedBlake3(secret)
	if err != nil {
		return nil, err
	}
	return &keyCache{hasher: h, keys: make(map[cacheKey][]byte)}, nil
}

func (c *keyCache) key(identifier, password string) cacheKey {
	return cacheKey{identifier: identifier, digest: c.hasher.Sum([]byte(password))}
}

// get returns a copy of the cached key.
func (c *keyCache) get(identifier, password string) ([]byte, bool) {
	k, ok := c.keys[c.key(identifier, password)]
	if !ok {
		return nil, false
	}
	return bytes.Clone(k), true
}

func (c *keyCache) put(identifier, password string, derived []byte) {
	c.keys[c.key(identifier, password)] = bytes.Clone(derived)
}

// forget wipes every key derived under identifier.
func (c *keyCache) forget(identifier string) {
	for k, v := range c.keys {
		if k.identifier == identifier {
			cryptox.WipeBytes(v)
			delete(c.keys, k)
		}
	}
}

func (c *keyCache) clear() {
	for k, v := range c.keys {
		cryptox.WipeBytes(v)
		delete(c.keys, k)
	}
}

func (c *keyCache) len() int { return len(c.keys) }
