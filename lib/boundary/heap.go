// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boundary

import (
	"bytes"
	"fmt"
	"sync"
)

// HeapRuntime allocates handles in Go memory. Quota, when positive,
// caps the total bytes it will hand out; allocations past the cap fail
// the way an exhausted foreign runtime would. A HeapRuntime is safe for
// concurrent use and must not be copied after first use.
type HeapRuntime struct {
	Encoding TextEncoding
	Quota    int

	mu   sync.Mutex
	used int
}

// Used reports the bytes allocated so far.
func (r *HeapRuntime) Used() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.used
}

func (r *HeapRuntime) reserve(size int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if size < 0 || (r.Quota > 0 && r.used+size > r.Quota) {
		return false
	}
	r.used += size
	return true
}

func (r *HeapRuntime) NewByteArray(length int) (ByteArray, bool) {
	if !r.reserve(length) {
		return nil, false
	}
	return &HeapBytes{data: make([]byte, length)}, true
}

func (r *HeapRuntime) NewText(encoded []byte) (Text, bool) {
	if !r.reserve(len(encoded)) {
		return nil, false
	}
	owned := bytes.Clone(encoded)
	if owned == nil {
		owned = []byte{}
	}
	switch r.Encoding {
	case EncodingModifiedUTF8:
		return ModifiedUTF8Text(owned), true
	case EncodingCString:
		return CStringText(owned), true
	case EncodingUTF16:
		units, ok := utf16Units(owned)
		if !ok {
			return nil, false
		}
		return units, true
	default:
		return UTF8Text(owned), true
	}
}

func (r *HeapRuntime) TextEncoding() TextEncoding {
	return r.Encoding
}

// HeapBytes is a ByteArray over a Go slice.
type HeapBytes struct {
	data []byte
}

// NewHeapBytes returns a ByteArray holding a copy of data.
func NewHeapBytes(data []byte) *HeapBytes {
	return &HeapBytes{data: bytes.Clone(data)}
}

// Bytes returns the backing slice.
func (b *HeapBytes) Bytes() []byte { return b.data }

func (b *HeapBytes) Len() int { return len(b.data) }

func (b *HeapBytes) GetRegion(offset int, dst []byte) error {
	if err := b.checkRegion(offset, len(dst)); err != nil {
		return err
	}
	copy(dst, b.data[offset:])
	return nil
}

func (b *HeapBytes) SetRegion(offset int, src []byte) error {
	if err := b.checkRegion(offset, len(src)); err != nil {
		return err
	}
	copy(b.data[offset:], src)
	return nil
}

func (b *HeapBytes) checkRegion(offset, length int) error {
	if offset < 0 || length < 0 || offset > len(b.data)-length {
		return fmt.Errorf("region [%d, %d) outside array of %d bytes", offset, offset+length, len(b.data))
	}
	return nil
}
