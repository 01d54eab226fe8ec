// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package portable

import (
	"bytes"
	"errors"
	"testing"
)

func TestVarintWidths(t *testing.T) {
	tests := []struct {
		value uint64
		want  []byte
	}{
		{value: 0, want: []byte{0x00}},
		{value: 1, want: []byte{0x04}},
		{value: 3, want: []byte{0x0c}},
		{value: 63, want: []byte{0xfc}},
		{value: 64, want: []byte{0x01, 0x01}},
		{value: 16383, want: []byte{0xfd, 0xff}},
		{value: 16384, want: []byte{0x02, 0x00, 0x01, 0x00}},
		{value: 1<<30 - 1, want: []byte{0xfe, 0xff, 0xff, 0xff}},
		{value: 1 << 30, want: []byte{0x03, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}},
		{value: MaxVarint, want: []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}

	for _, tt := range tests {
		encoded, err := AppendVarint(nil, tt.value)
		if err != nil {
			t.Fatalf("AppendVarint(%d): %v", tt.value, err)
		}
		if !bytes.Equal(encoded, tt.want) {
			t.Errorf("AppendVarint(%d) = % x, want % x", tt.value, encoded, tt.want)
		}

		decoded, width, err := ReadVarint(encoded)
		if err != nil {
			t.Fatalf("ReadVarint(% x): %v", encoded, err)
		}
		if decoded != tt.value || width != len(tt.want) {
			t.Errorf("ReadVarint(% x) = (%d, %d), want (%d, %d)", encoded, decoded, width, tt.value, len(tt.want))
		}
	}
}

func TestVarintOverflow(t *testing.T) {
	_, err := AppendVarint(nil, MaxVarint+1)
	if !errors.Is(err, ErrUnrepresentable) {
		t.Errorf("AppendVarint(MaxVarint+1) error = %v, want ErrUnrepresentable", err)
	}
}

func TestReadVarintTruncated(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		{0x01},
		{0x02, 0x00, 0x00},
		{0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	} {
		if _, _, err := ReadVarint(data); !errors.Is(err, ErrTruncatedBuffer) {
			t.Errorf("ReadVarint(% x) error = %v, want ErrTruncatedBuffer", data, err)
		}
	}
}
