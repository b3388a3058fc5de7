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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestInMemorySessionDatabase_GetStore(t *testing.T) {
	db := createDatabase(t)

	store := db.GetStore(time.Minute, "key1", "key2").(InMemorySessionStore)

	require.NotNil(t, store)
	assert.Equal(t, time.Minute, store.ttl)
	assert.Equal(t, []string{"key1", "key2"}, store.prefixes)
}

func TestInMemorySessionStore_Put(t *testing.T) {
	db := createDatabase(t)
	store := db.GetStore(time.Minute, "prefix").(InMemorySessionStore)

	t.Run("string value is stored", func(t *testing.T) {
		err := store.Put("key", "value")

		require.NoError(t, err)
		assert.Equal(t, `"value"`, store.db.entries["prefix/key"].Value)
	})
	t.Run("struct value is stored", func(t *testing.T) {
		value := testStruct{
			Field1: "value",
		}

		err := store.Put("key", value)

		require.NoError(t, err)
		assert.Equal(t, "{\"field1\":\"value\"}", store.db.entries["prefix/key"].Value)
	})
	t.Run("value is not JSON", func(t *testing.T) {
		err := store.Put("key", make(chan int))

		assert.Error(t, err)
	})
}

func TestInMemorySessionStore_Get(t *testing.T) {
	db := createDatabase(t)
	store := db.GetStore(time.Minute, "prefix").(InMemorySessionStore)

	t.Run("struct value is retrieved correctly", func(t *testing.T) {
		value := testStruct{
			Field1: "value",
		}
		_ = store.Put(t.Name(), value)
		var actual testStruct

		err := store.Get(t.Name(), &actual)

		require.NoError(t, err)
		assert.Equal(t, value, actual)
	})
	t.Run("value is not found", func(t *testing.T) {
		var actual string

		err := store.Get(t.Name(), &actual)

		assert.Equal(t, ErrNotFound, err)
	})
	t.Run("value is expired", func(t *testing.T) {
		store.db.entries["prefix/key"] = expiringEntry{
			Value:  "",
			Expiry: time.Now().Add(-time.Minute),
		}
		var actual string

		err := store.Get("key", &actual)

		assert.Equal(t, ErrNotFound, err)
		assert.NotContains(t, store.db.entries, "prefix/key")
	})
	t.Run("value is not JSON", func(t *testing.T) {
		store.db.entries["prefix/key"] = expiringEntry{
			Value:  "not JSON",
			Expiry: time.Now().Add(time.Minute),
		}
		var actual string

		err := store.Get("key", &actual)

		assert.Error(t, err)
	})
}

func TestInMemorySessionStore_Exists(t *testing.T) {
	db := createDatabase(t)
	store := db.GetStore(time.Minute, "prefix").(InMemorySessionStore)

	t.Run("exists", func(t *testing.T) {
		_ = store.Put(t.Name(), "value")

		assert.True(t, store.Exists(t.Name()))
	})
	t.Run("other partition", func(t *testing.T) {
		_ = store.Put(t.Name(), "value")

		assert.False(t, db.GetStore(time.Minute, "other").Exists(t.Name()))
	})
	t.Run("expired", func(t *testing.T) {
		store.db.entries["prefix/expired"] = expiringEntry{Value: `"value"`, Expiry: time.Now().Add(-time.Second)}

		assert.False(t, store.Exists("expired"))
	})
}

func TestInMemorySessionStore_Delete(t *testing.T) {
	db := createDatabase(t)
	store := db.GetStore(time.Minute, "prefix").(InMemorySessionStore)

	t.Run("value is deleted", func(t *testing.T) {
		_ = store.Put(t.Name(), "value")

		err := store.Delete(t.Name())

		require.NoError(t, err)
		assert.False(t, store.Exists(t.Name()))
	})
	t.Run("value is not found", func(t *testing.T) {
		err := store.Delete(t.Name())

		assert.NoError(t, err)
	})
}

func TestInMemorySessionStore_GetAndDelete(t *testing.T) {
	db := createDatabase(t)
	store := db.GetStore(time.Minute, "prefix").(InMemorySessionStore)

	t.Run("ok", func(t *testing.T) {
		_ = store.Put(t.Name(), "value")
		var actual string

		err := store.GetAndDelete(t.Name(), &actual)

		require.NoError(t, err)
		assert.Equal(t, "value", actual)
		// is deleted
		assert.ErrorIs(t, store.Get(t.Name(), new(string)), ErrNotFound)
	})
	t.Run("error", func(t *testing.T) {
		assert.ErrorIs(t, store.GetAndDelete(t.Name(), new(string)), ErrNotFound)
	})
}

func TestInMemorySessionDatabase_Close(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	t.Run("assert Close() waits for pruning to finish to avoid leaking goroutines", func(t *testing.T) {
		sessionStorePruneInterval = 10 * time.Millisecond
		defer func() {
			sessionStorePruneInterval = 10 * time.Minute
		}()
		store := NewInMemorySessionDatabase()
		time.Sleep(50 * time.Millisecond) // make sure pruning is running
		store.Close()
	})
}

func Test_memoryStore_prune(t *testing.T) {
	t.Run("automatic", func(t *testing.T) {
		sessionStorePruneInterval = 10 * time.Millisecond
		defer func() {
			sessionStorePruneInterval = 10 * time.Minute
		}()
		store := createDatabase(t)

		err := store.GetStore(time.Millisecond).Put("key", "value")
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			store.mux.Lock()
			defer store.mux.Unlock()
			_, exists := store.entries["key"]
			return !exists
		}, time.Second, 10*time.Millisecond, "time-out waiting for entry to be pruned")
	})
	t.Run("prunes expired flows", func(t *testing.T) {
		store := createDatabase(t)

		_ = store.GetStore(0).Put("key1", "value")
		_ = store.GetStore(time.Minute).Put("key2", "value")

		count := store.prune()

		assert.Equal(t, 1, count)

		// Second round to assert there's nothing to prune now
		count = store.prune()

		assert.Equal(t, 0, count)
	})
}

type testStruct struct {
	Field1 string `json:"field1"`
}

func createDatabase(t *testing.T) *InMemorySessionDatabase {
	return NewTestInMemorySessionDatabase(t)
}
