/*
Copyright 2026 Gravitational, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/gravitational/trace"
	"github.com/peterbourgon/diskv/v3"
)

// Storage persists the session record under StoreKey.
type Storage interface {
	// Load returns the persisted record, or an empty record if there is none.
	Load(context.Context) (Record, error)
	// Save replaces the persisted record in a single step.
	Save(context.Context, Record) error
}

// MemoryStorage keeps the encoded record in memory.
type MemoryStorage struct {
	mu      sync.Mutex
	payload []byte
}

// NewMemoryStorage returns an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Load implements Storage.
func (m *MemoryStorage) Load(context.Context) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decodeRecord(m.payload)
}

// Save implements Storage.
func (m *MemoryStorage) Save(_ context.Context, r Record) error {
	payload, err := encodeRecord(r)
	if err != nil {
		return trace.Wrap(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = payload
	return nil
}

// Raw returns the encoded record.
func (m *MemoryStorage) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.payload...)
}

// DiskStorage keeps the record in a directory. Writes go through a temp
// file and a rename, and reads bypass the cache so that writes made by
// another process are seen on the next read.
type DiskStorage struct {
	dv *diskv.Diskv
}

// NewDiskStorage opens the storage in dir, creating it if needed.
func NewDiskStorage(dir string) (*DiskStorage, error) {
	if dir == "" {
		return nil, trace.BadParameter("missing storage directory")
	}
	tempDir := filepath.Join(dir, ".tmp")
	if err := os.MkdirAll(tempDir, 0700); err != nil {
		return nil, trace.ConvertSystemError(err)
	}

	// Put all the data files into the base dir.
	flatTransform := func(s string) []string { return []string{} }

	dv := diskv.New(diskv.Options{
		BasePath:     dir,
		TempDir:      tempDir,
		Transform:    flatTransform,
		CacheSizeMax: 0,
		PathPerm:     0700,
		FilePerm:     0600,
	})
	return &DiskStorage{dv: dv}, nil
}

// Load implements Storage.
func (d *DiskStorage) Load(context.Context) (Record, error) {
	if !d.dv.Has(StoreKey) {
		return Record{}, nil
	}
	payload, err := d.dv.Read(StoreKey)
	if err != nil {
		return Record{}, trace.ConvertSystemError(err)
	}
	record, err := decodeRecord(payload)
	return record, trace.Wrap(err)
}

// Save implements Storage.
func (d *DiskStorage) Save(_ context.Context, r Record) error {
	payload, err := encodeRecord(r)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.ConvertSystemError(d.dv.Write(StoreKey, payload))
}
