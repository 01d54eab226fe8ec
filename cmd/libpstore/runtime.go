// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"bytes"
	"fmt"
	"unsafe"

	"github.com/bureau-foundation/pstore/lib/boundary"
)

// cRuntime allocates results with malloc. Callers release them with
// pstore_free.
type cRuntime struct{}

func (cRuntime) NewByteArray(length int) (boundary.ByteArray, bool) {
	pointer := malloc(length)
	if pointer == nil {
		return nil, false
	}
	return &cBytes{pointer: pointer, length: length}, true
}

func (cRuntime) NewText(encoded []byte) (boundary.Text, bool) {
	pointer := malloc(len(encoded))
	if pointer == nil {
		return nil, false
	}
	copy(unsafe.Slice((*byte)(pointer), len(encoded)), encoded)
	return &cText{pointer: pointer, length: len(encoded)}, true
}

func (cRuntime) TextEncoding() boundary.TextEncoding {
	return boundary.EncodingCString
}

// malloc returns at least one byte so that a zero-length result is
// still a non-NULL pointer the caller can free.
func malloc(size int) unsafe.Pointer {
	if size < 0 {
		return nil
	}
	return C.malloc(C.size_t(max(size, 1)))
}

// cBytes is a byte array in C memory, either malloc'ed here or borrowed
// from the caller for the duration of one call.
type cBytes struct {
	pointer unsafe.Pointer
	length  int
}

func (b *cBytes) Len() int { return b.length }

func (b *cBytes) bytes() []byte {
	if b.length == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(b.pointer), b.length)
}

func (b *cBytes) GetRegion(offset int, dst []byte) error {
	if err := b.checkRegion(offset, len(dst)); err != nil {
		return err
	}
	copy(dst, b.bytes()[offset:])
	return nil
}

func (b *cBytes) SetRegion(offset int, src []byte) error {
	if err := b.checkRegion(offset, len(src)); err != nil {
		return err
	}
	copy(b.bytes()[offset:], src)
	return nil
}

func (b *cBytes) checkRegion(offset, length int) error {
	if b.pointer == nil && b.length > 0 {
		return fmt.Errorf("NULL array of %d bytes", b.length)
	}
	if offset < 0 || length < 0 || offset > b.length-length {
		return fmt.Errorf("region [%d, %d) outside array of %d bytes", offset, offset+length, b.length)
	}
	return nil
}

// cText is a NUL-terminated string in malloc'ed memory.
type cText struct {
	pointer unsafe.Pointer
	length  int
}

func (t *cText) UTF8() ([]byte, error) {
	encoded := unsafe.Slice((*byte)(t.pointer), t.length)
	if end := bytes.IndexByte(encoded, 0); end >= 0 {
		return encoded[:end], nil
	}
	return encoded, nil
}
