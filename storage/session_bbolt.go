/*
 * Copyright (C) 2023 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/nuts-foundation/openid4vc/core"
	"github.com/nuts-foundation/openid4vc/storage/log"
	bolt "go.etcd.io/bbolt"
)

var _ SessionDatabase = (*BBoltSessionDatabase)(nil)
var _ SessionStore = (*bboltSessionStore)(nil)

// defaultBucket holds the entries of stores without prefixes.
const defaultBucket = "_"

// BBoltSessionDatabase is a SessionDatabase that stores entries in a BBolt file, so they survive restarts.
// Every store is a bucket, expired entries are pruned periodically.
type BBoltSessionDatabase struct {
	db       *bolt.DB
	cancel   context.CancelFunc
	ctx      context.Context
	routines sync.WaitGroup
}

// NewBBoltSessionDatabase creates a SessionDatabase on top of the given BBolt database, which it closes on Close().
func NewBBoltSessionDatabase(db *bolt.DB) *BBoltSessionDatabase {
	result := &BBoltSessionDatabase{db: db}
	result.ctx, result.cancel = context.WithCancel(context.Background())
	result.startPruning(sessionStorePruneInterval)
	return result
}

func (b *BBoltSessionDatabase) GetStore(ttl time.Duration, keys ...string) SessionStore {
	bucket := strings.Join(keys, "/")
	if bucket == "" {
		bucket = defaultBucket
	}
	return bboltSessionStore{
		db:     b.db,
		ttl:    ttl,
		bucket: []byte(bucket),
	}
}

func (b *BBoltSessionDatabase) Close() {
	b.cancel()
	b.routines.Wait()
	if err := b.db.Close(); err != nil {
		log.Logger().WithError(err).Error("Failed to close BBolt session database")
	}
}

func (b *BBoltSessionDatabase) startPruning(interval time.Duration) {
	ticker := time.NewTicker(interval)
	b.routines.Add(1)
	go func(ctx context.Context) {
		defer b.routines.Done()
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-ticker.C:
				valsPruned, err := b.prune()
				if err != nil {
					log.Logger().WithError(err).Warn("Unable to prune BBolt session database")
				} else if valsPruned > 0 {
					log.Logger().Debugf("Pruned %d expired session variables", valsPruned)
				}
			}
		}
	}(b.ctx)
}

func (b *BBoltSessionDatabase) prune() (int, error) {
	var count int
	moment := time.Now()
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, bucket *bolt.Bucket) error {
			var expiredKeys [][]byte
			err := bucket.ForEach(func(key, value []byte) error {
				var entry expiringEntry
				if err := json.Unmarshal(value, &entry); err != nil || entry.expired(moment) {
					// keys are only valid during the transaction, deleting while iterating is not supported
					expiredKeys = append(expiredKeys, append([]byte{}, key...))
				}
				return nil
			})
			if err != nil {
				return err
			}
			for _, key := range expiredKeys {
				if err = bucket.Delete(key); err != nil {
					return err
				}
				count++
			}
			return nil
		})
	})
	return count, err
}

type bboltSessionStore struct {
	db     *bolt.DB
	ttl    time.Duration
	bucket []byte
}

func (s bboltSessionStore) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(key))
	})
}

func (s bboltSessionStore) Exists(key string) bool {
	err := s.db.View(func(tx *bolt.Tx) error {
		_, err := s.read(tx, key)
		return err
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		log.Logger().
			WithError(err).
			WithField(core.LogFieldStore, string(s.bucket)).
			Error("Failed to check whether value exists in BBolt session store")
	}
	return err == nil
}

func (s bboltSessionStore) Get(key string, target interface{}) error {
	return s.db.View(func(tx *bolt.Tx) error {
		entry, err := s.read(tx, key)
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(entry.Value), target)
	})
}

func (s bboltSessionStore) GetAndDelete(key string, target interface{}) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		entry, err := s.read(tx, key)
		if err != nil {
			return err
		}
		if err = tx.Bucket(s.bucket).Delete([]byte(key)); err != nil {
			return err
		}
		return json.Unmarshal([]byte(entry.Value), target)
	})
}

func (s bboltSessionStore) Put(key string, value interface{}) error {
	bytes, err := json.Marshal(value)
	if err != nil {
		return err
	}
	data, err := json.Marshal(expiringEntry{
		Value:  string(bytes),
		Expiry: time.Now().Add(s.ttl),
	})
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(s.bucket)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), data)
	})
}

// read returns the unexpired entry for the given key. Expired entries are left for the pruner.
func (s bboltSessionStore) read(tx *bolt.Tx, key string) (*expiringEntry, error) {
	bucket := tx.Bucket(s.bucket)
	if bucket == nil {
		return nil, ErrNotFound
	}
	data := bucket.Get([]byte(key))
	if data == nil {
		return nil, ErrNotFound
	}
	var entry expiringEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	if entry.expired(time.Now()) {
		return nil, ErrNotFound
	}
	return &entry, nil
}
