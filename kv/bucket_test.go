// Copyright (c) 2025 The Demeter developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errNotFound = errors.New("not found")

// memStore is a map-backed store for testing.
type memStore struct {
	m map[string]string
}

func newMemStore() *memStore {
	return &memStore{m: make(map[string]string)}
}

func (s *memStore) Get(key []byte) ([]byte, error) {
	if v, ok := s.m[string(key)]; ok {
		return []byte(v), nil
	}
	return nil, errNotFound
}

func (s *memStore) Has(key []byte) (bool, error) {
	_, ok := s.m[string(key)]
	return ok, nil
}

func (s *memStore) IsNotFound(err error) bool { return err == errNotFound }

func (s *memStore) Put(key, val []byte) error {
	s.m[string(key)] = string(val)
	return nil
}

func (s *memStore) Delete(key []byte) error {
	delete(s.m, string(key))
	return nil
}

func (s *memStore) NewBatch() Batch {
	ops := []func(){}
	return &struct {
		PutFunc
		DeleteFunc
		LenFunc
		WriteFunc
	}{
		func(key, val []byte) error {
			k, v := string(key), string(val)
			ops = append(ops, func() { s.m[k] = v })
			return nil
		},
		func(key []byte) error {
			k := string(key)
			ops = append(ops, func() { delete(s.m, k) })
			return nil
		},
		func() int { return len(ops) },
		func() error {
			for _, op := range ops {
				op()
			}
			return nil
		},
	}
}

func (s *memStore) NewIterator(r Range) Iterator {
	var keys []string
	for k := range s.m {
		if k >= string(r.From) && (len(r.To) == 0 || k < string(r.To)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	i := -1
	return &struct {
		NextFunc
		ReleaseFunc
		ErrorFunc
		KeyFunc
		ValueFunc
	}{
		func() bool { i++; return i < len(keys) },
		func() {},
		func() error { return nil },
		func() []byte { return []byte(keys[i]) },
		func() []byte { return []byte(s.m[keys[i]]) },
	}
}

func TestBucket(t *testing.T) {
	src := newMemStore()
	store := Bucket("b1").NewStore(src)

	assert.NoError(t, store.Put([]byte("key"), []byte("value")))

	// the underlying key is prefixed
	_, err := src.Get([]byte("key"))
	assert.True(t, src.IsNotFound(err))
	v, err := src.Get([]byte("b1key"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("value"), v)

	// bucket getter strips the prefix
	v, err = store.Get([]byte("key"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("value"), v)

	has, err := store.Has([]byte("key"))
	assert.NoError(t, err)
	assert.True(t, has)

	assert.NoError(t, store.Delete([]byte("key")))
	has, err = store.Has([]byte("key"))
	assert.NoError(t, err)
	assert.False(t, has)
}

func TestBucketBatch(t *testing.T) {
	src := newMemStore()
	store := Bucket("b1").NewStore(src)

	batch := store.NewBatch()
	assert.NoError(t, batch.Put([]byte("k1"), []byte("v1")))
	assert.NoError(t, batch.Put([]byte("k2"), []byte("v2")))
	assert.Equal(t, 2, batch.Len())

	// nothing visible until write
	has, _ := store.Has([]byte("k1"))
	assert.False(t, has)

	assert.NoError(t, batch.Write())
	v, err := store.Get([]byte("k2"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v2"), v)
}

func TestBucketIterate(t *testing.T) {
	src := newMemStore()
	b1 := Bucket("b1").NewStore(src)
	b2 := Bucket("b2").NewStore(src)

	assert.NoError(t, b1.Put([]byte("a"), []byte("1")))
	assert.NoError(t, b1.Put([]byte("b"), []byte("2")))
	assert.NoError(t, b2.Put([]byte("c"), []byte("3")))

	var keys []string
	iter := b1.NewIterator(Range{})
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	iter.Release()
	assert.NoError(t, iter.Error())

	// iteration is bounded to the bucket, keys are stripped
	assert.Equal(t, []string{"a", "b"}, keys)
}
