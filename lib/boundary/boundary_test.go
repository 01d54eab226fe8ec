// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boundary

import (
	"bytes"
	"errors"
	"testing"
)

func TestTextInNil(t *testing.T) {
	text, err := TextIn(nil)
	if err != nil || text != "" {
		t.Errorf("TextIn(nil) = (%q, %v), want (\"\", nil)", text, err)
	}
}

func TestTextInEncodings(t *testing.T) {
	tests := []struct {
		name   string
		handle Text
		want   string
	}{
		{name: "utf-8", handle: UTF8Text("héllo"), want: "héllo"},
		{name: "c string", handle: CStringText("abc\x00ignored"), want: "abc"},
		{name: "c string without terminator", handle: CStringText("abc"), want: "abc"},
		{name: "modified NUL", handle: ModifiedUTF8Text{'a', 0xc0, 0x80, 'b'}, want: "a\x00b"},
		{
			name:   "modified supplementary",
			handle: ModifiedUTF8Text{0xed, 0xa0, 0xbd, 0xed, 0xb8, 0x80},
			want:   "\U0001F600",
		},
		{name: "modified BMP", handle: ModifiedUTF8Text("€"), want: "€"},
		{name: "utf-16 ascii", handle: UTF16Text{'o', 'k'}, want: "ok"},
		{name: "utf-16 pair", handle: UTF16Text{0xd83d, 0xde00}, want: "\U0001F600"},
		{name: "utf-16 keeps BOM", handle: UTF16Text{0xfeff, 'a'}, want: "\ufeffa"},
		{name: "utf-16 NUL", handle: UTF16Text{0, 'a'}, want: "\x00a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TextIn(tt.handle)
			if err != nil {
				t.Fatalf("TextIn: %v", err)
			}
			if got != tt.want {
				t.Errorf("TextIn = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextInRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		handle Text
	}{
		{name: "utf-8 garbage", handle: UTF8Text{0xff, 0xfe}},
		{name: "modified raw NUL", handle: ModifiedUTF8Text{'a', 0x00}},
		{name: "modified four-byte", handle: ModifiedUTF8Text("\U0001F600")},
		{name: "modified lone high", handle: ModifiedUTF8Text{0xed, 0xa0, 0xbd, 'x'}},
		{name: "modified lone low", handle: ModifiedUTF8Text{0xed, 0xb8, 0x80}},
		{name: "modified truncated", handle: ModifiedUTF8Text{0xe2, 0x82}},
		{name: "utf-16 lone high", handle: UTF16Text{0xd83d}},
		{name: "utf-16 lone low", handle: UTF16Text{'a', 0xde00}},
		{name: "utf-16 reversed pair", handle: UTF16Text{0xde00, 0xd83d}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := TextIn(tt.handle); !errors.Is(err, ErrInvalidText) {
				t.Errorf("TextIn error = %v, want ErrInvalidText", err)
			}
		})
	}
}

func TestBytesIn(t *testing.T) {
	empty, err := BytesIn(nil)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("BytesIn(nil) = (%v, %v), want non-nil empty buffer", empty, err)
	}

	source := NewHeapBytes([]byte{1, 2, 3})
	data, err := BytesIn(source)
	if err != nil {
		t.Fatalf("BytesIn: %v", err)
	}
	if !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Errorf("BytesIn = %v, want [1 2 3]", data)
	}
	data[0] = 9
	if source.Bytes()[0] != 1 {
		t.Error("BytesIn result aliases the caller's array")
	}

	if _, err := BytesIn(brokenArray{length: -1}); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("BytesIn(negative length) error = %v, want ErrInvalidHandle", err)
	}
	if _, err := BytesIn(brokenArray{length: 4}); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("BytesIn(failing region) error = %v, want ErrInvalidHandle", err)
	}
}

func TestBytesOut(t *testing.T) {
	runtime := &HeapRuntime{}

	array, err := BytesOut(runtime, []byte{4, 5, 6})
	if err != nil {
		t.Fatalf("BytesOut: %v", err)
	}
	if got := array.(*HeapBytes).Bytes(); !bytes.Equal(got, []byte{4, 5, 6}) {
		t.Errorf("BytesOut wrote %v, want [4 5 6]", got)
	}

	empty, err := BytesOut(runtime, nil)
	if err != nil {
		t.Fatalf("BytesOut(empty): %v", err)
	}
	if empty == nil || empty.Len() != 0 {
		t.Errorf("BytesOut(empty) = %v, want a non-nil zero-length array", empty)
	}
}

func TestAllocationFailureIsDistinctFromEmpty(t *testing.T) {
	runtime := &HeapRuntime{Quota: 4}

	array, err := BytesOut(runtime, []byte("too long"))
	if !errors.Is(err, ErrAllocationFailed) {
		t.Fatalf("BytesOut over quota error = %v, want ErrAllocationFailed", err)
	}
	if array != nil {
		t.Errorf("BytesOut over quota returned non-nil handle %v", array)
	}

	empty, err := BytesOut(runtime, []byte{})
	if err != nil || empty == nil {
		t.Errorf("BytesOut(empty) under quota = (%v, %v), want a handle", empty, err)
	}

	text, err := TextOut(runtime, "way past the quota")
	if !errors.Is(err, ErrAllocationFailed) || text != nil {
		t.Errorf("TextOut over quota = (%v, %v), want (nil, ErrAllocationFailed)", text, err)
	}
	if used := runtime.Used(); used != 0 {
		t.Errorf("Used = %d after failed allocations, want 0", used)
	}
}

func TestTextOutEncodings(t *testing.T) {
	tests := []struct {
		name     string
		encoding TextEncoding
		input    string
		want     []byte
	}{
		{name: "utf-8", encoding: EncodingUTF8, input: "a\x00b", want: []byte("a\x00b")},
		{name: "modified NUL", encoding: EncodingModifiedUTF8, input: "a\x00b", want: []byte{'a', 0xc0, 0x80, 'b'}},
		{
			name:     "modified supplementary",
			encoding: EncodingModifiedUTF8,
			input:    "\U0001F600",
			want:     []byte{0xed, 0xa0, 0xbd, 0xed, 0xb8, 0x80},
		},
		{name: "c string", encoding: EncodingCString, input: "abc", want: []byte{'a', 'b', 'c', 0}},
		{name: "c string empty", encoding: EncodingCString, input: "", want: []byte{0}},
		{name: "utf-16", encoding: EncodingUTF16, input: "a\U0001F600", want: []byte{'a', 0, 0x3d, 0xd8, 0x00, 0xde}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Encode(tt.encoding, tt.input)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if !bytes.Equal(encoded, tt.want) {
				t.Errorf("Encode = % x, want % x", encoded, tt.want)
			}

			text, err := TextOut(&HeapRuntime{Encoding: tt.encoding}, tt.input)
			if err != nil {
				t.Fatalf("TextOut: %v", err)
			}
			back, err := TextIn(text)
			if err != nil {
				t.Fatalf("TextIn(TextOut): %v", err)
			}
			if back != tt.input {
				t.Errorf("TextIn(TextOut(%q)) = %q", tt.input, back)
			}
		})
	}
}

func TestTextOutRejects(t *testing.T) {
	if _, err := TextOut(&HeapRuntime{}, "bad \xff"); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("TextOut(invalid UTF-8) error = %v, want ErrInvalidUTF8", err)
	}
	if _, err := TextOut(&HeapRuntime{Encoding: EncodingCString}, "a\x00b"); !errors.Is(err, ErrEmbeddedNUL) {
		t.Errorf("TextOut(embedded NUL) error = %v, want ErrEmbeddedNUL", err)
	}
	if _, err := TextOut(&HeapRuntime{Encoding: EncodingModifiedUTF8}, "a\x00b"); err != nil {
		t.Errorf("TextOut(NUL, modified UTF-8): %v", err)
	}
}

func TestHeapBytesRegions(t *testing.T) {
	array := NewHeapBytes(make([]byte, 4))
	if err := array.SetRegion(2, []byte{7, 8}); err != nil {
		t.Fatalf("SetRegion: %v", err)
	}
	if err := array.SetRegion(3, []byte{7, 8}); err == nil {
		t.Error("SetRegion past the end succeeded")
	}
	if err := array.GetRegion(-1, make([]byte, 1)); err == nil {
		t.Error("GetRegion at a negative offset succeeded")
	}
	dst := make([]byte, 2)
	if err := array.GetRegion(2, dst); err != nil || !bytes.Equal(dst, []byte{7, 8}) {
		t.Errorf("GetRegion = (%v, %v), want [7 8]", dst, err)
	}
}

// brokenArray reports a length but refuses every region copy.
type brokenArray struct {
	length int
}

func (b brokenArray) Len() int { return b.length }

func (b brokenArray) GetRegion(int, []byte) error { return errors.New("refused") }

func (b brokenArray) SetRegion(int, []byte) error { return errors.New("refused") }
