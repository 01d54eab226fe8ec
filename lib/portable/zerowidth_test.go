// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package portable

import (
	"errors"
	"strings"
	"testing"
)

// nullArrays builds a buffer whose single field "a" is an array of
// outer arrays, each an array of inner nulls.
func nullArrays(t *testing.T, outer, inner int) []byte {
	t.Helper()
	body := []byte{0x04, 0x01, 'a', byte(FlagArray | TypeArray)}
	var err error
	if body, err = AppendVarint(body, uint64(outer)); err != nil {
		t.Fatalf("AppendVarint(%d): %v", outer, err)
	}
	for range outer {
		body = append(body, byte(FlagArray|TypeNull))
		if body, err = AppendVarint(body, uint64(inner)); err != nil {
			t.Fatalf("AppendVarint(%d): %v", inner, err)
		}
	}
	return buffer(body...)
}

func nullList(count int) string {
	return "[" + strings.TrimSuffix(strings.Repeat("null,", count), ",") + "]"
}

func TestDecodeZeroWidthBudgetSpansArrays(t *testing.T) {
	options := Options{MaxZeroWidthElements: 10}

	tests := []struct {
		name         string
		outer, inner int
		wantErr      bool
	}{
		{name: "under the limit", outer: 2, inner: 4},
		{name: "exactly the limit", outer: 5, inner: 2},
		{name: "each array under, total over", outer: 3, inner: 4, wantErr: true},
		{name: "single array over", outer: 1, inner: 11, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := options.Decode(nullArrays(t, tt.outer, tt.inner))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Decode: %v", err)
				}
				array, _ := value.Lookup("a")
				if array.Len() != tt.outer {
					t.Errorf("decoded %d outer arrays, want %d", array.Len(), tt.outer)
				}
				return
			}
			if !errors.Is(err, ErrUnrepresentable) {
				t.Fatalf("Decode error = %v, want ErrUnrepresentable", err)
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Errorf("error %v carries no DecodeError", err)
			}
		})
	}
}

func TestDecodeRejectsAmplifiedNulls(t *testing.T) {
	// 200 entries of five bytes each, every one declaring the full
	// default allowance.
	input := nullArrays(t, 200, DefaultMaxZeroWidthElements)
	if len(input) > 1100 {
		t.Fatalf("input is %d bytes, expected about 1 KB", len(input))
	}
	if _, err := Decode(input); !errors.Is(err, ErrUnrepresentable) {
		t.Fatalf("Decode error = %v, want ErrUnrepresentable", err)
	}
	if _, err := BinaryToJSON(input); !errors.Is(err, ErrUnrepresentable) {
		t.Fatalf("BinaryToJSON error = %v, want ErrUnrepresentable", err)
	}
}

func TestEncodeZeroWidthBudget(t *testing.T) {
	tests := []struct {
		name     string
		options  Options
		document string
		wantErr  bool
	}{
		{
			name:     "default limit exactly",
			document: `{"n":` + nullList(DefaultMaxZeroWidthElements) + `}`,
		},
		{
			name:     "default limit exceeded",
			document: `{"n":` + nullList(70001) + `}`,
			wantErr:  true,
		},
		{
			name:     "nested and sibling arrays within",
			options:  Options{MaxZeroWidthElements: 5},
			document: `{"a":[[null,null],[null,null]],"b":[null]}`,
		},
		{
			name:     "nested and sibling arrays over",
			options:  Options{MaxZeroWidthElements: 4},
			document: `{"a":[[null,null],[null,null]],"b":[null]}`,
			wantErr:  true,
		},
		{
			name:     "arrays inside sections count",
			options:  Options{MaxZeroWidthElements: 3},
			document: `{"s":{"x":[null,null]},"list":[{"y":[null,null]}]}`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bin, err := tt.options.JSONToBinary([]byte(tt.document))
			if tt.wantErr {
				if !errors.Is(err, ErrUnrepresentable) {
					t.Fatalf("JSONToBinary error = %v, want ErrUnrepresentable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("JSONToBinary: %v", err)
			}
			// Whatever the encoder emits, the decoder with the same
			// options accepts.
			if _, err := tt.options.BinaryToJSON(bin); err != nil {
				t.Errorf("BinaryToJSON of encoder output: %v", err)
			}
		})
	}
}

func TestZeroWidthBudgetShared(t *testing.T) {
	options := Options{MaxZeroWidthElements: 6}
	budget := options.NewZeroWidthBudget()
	bin, err := options.JSONToBinary([]byte(`{"n":[null,null,null,null]}`))
	if err != nil {
		t.Fatalf("JSONToBinary: %v", err)
	}

	if _, err := options.DecodeWithBudget(bin, budget); err != nil {
		t.Fatalf("first DecodeWithBudget: %v", err)
	}
	if got := budget.Remaining(); got != 2 {
		t.Errorf("Remaining() = %d after four nulls, want 2", got)
	}
	if _, err := options.DecodeWithBudget(bin, budget); !errors.Is(err, ErrUnrepresentable) {
		t.Errorf("second DecodeWithBudget error = %v, want ErrUnrepresentable", err)
	}

	// Plain Decode starts from a fresh allowance every call.
	for range 3 {
		if _, err := options.Decode(bin); err != nil {
			t.Fatalf("Decode: %v", err)
		}
	}
}
