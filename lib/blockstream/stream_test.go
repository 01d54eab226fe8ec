// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blockstream

import (
	"errors"
	"testing"

	"github.com/bureau-foundation/pstore/lib/portable"
)

func mustSection(t *testing.T, document string) portable.Value {
	t.Helper()
	section, err := portable.ParseJSON([]byte(document))
	if err != nil {
		t.Fatalf("ParseJSON(%s): %v", document, err)
	}
	return section
}

func mustEncode(t *testing.T, records ...Record) []byte {
	t.Helper()
	stream, err := Encode(records)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return stream
}

func TestEmptyStream(t *testing.T) {
	for _, input := range [][]byte{nil, {}} {
		records, err := Decode(input)
		if err != nil {
			t.Fatalf("Decode(empty): %v", err)
		}
		if len(records) != 0 {
			t.Errorf("Decode(empty) returned %d records", len(records))
		}

		output, err := BinaryBlocksToJSON(input)
		if err != nil {
			t.Fatalf("BinaryBlocksToJSON(empty): %v", err)
		}
		if string(output) != "[]" {
			t.Errorf("BinaryBlocksToJSON(empty) = %q, want []", output)
		}
	}
}

func TestBinaryBlocksToJSON(t *testing.T) {
	stream := mustEncode(t,
		Record{Section: mustSection(t, `{"height":1}`), Txs: [][]byte{{0xde, 0xad}, {}}},
		Record{Section: mustSection(t, `{"height":2,"hash":"ab"}`)},
		Record{Section: mustSection(t, `{}`), Txs: [][]byte{{0x00}}},
	)

	tests := []struct {
		name    string
		options Options
		want    string
	}{
		{
			name: "hex default",
			want: `[{"height":1,"txs":["dead",""]},{"height":2,"hash":"ab","txs":[]},{"txs":["00"]}]`,
		},
		{
			name:    "base64",
			options: Options{TxEncoding: TxBase64},
			want:    `[{"height":1,"txs":["3q0=",""]},{"height":2,"hash":"ab","txs":[]},{"txs":["AA=="]}]`,
		},
		{
			name:    "custom field",
			options: Options{TxField: "transactions"},
			want:    `[{"height":1,"transactions":["dead",""]},{"height":2,"hash":"ab","transactions":[]},{"transactions":["00"]}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := tt.options.BinaryBlocksToJSON(stream)
			if err != nil {
				t.Fatalf("BinaryBlocksToJSON: %v", err)
			}
			if string(output) != tt.want {
				t.Errorf("BinaryBlocksToJSON:\n  got  %s\n  want %s", output, tt.want)
			}
		})
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	records := []Record{
		{Section: mustSection(t, `{"a":[1,2,3],"b":{"c":"d"}}`), Txs: [][]byte{[]byte("first"), []byte("second")}},
		{Section: mustSection(t, `{"a":[]}`)},
	}
	decoded, err := Decode(mustEncode(t, records...))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded) != len(records) {
		t.Fatalf("Decode returned %d records, want %d", len(decoded), len(records))
	}
	for index := range records {
		if !decoded[index].Section.Equal(records[index].Section) {
			t.Errorf("record %d: section differs after round trip", index)
		}
		if len(decoded[index].Txs) != len(records[index].Txs) {
			t.Fatalf("record %d: %d txs, want %d", index, len(decoded[index].Txs), len(records[index].Txs))
		}
		for txIndex, tx := range records[index].Txs {
			if string(decoded[index].Txs[txIndex]) != string(tx) {
				t.Errorf("record %d tx %d = %q, want %q", index, txIndex, decoded[index].Txs[txIndex], tx)
			}
		}
	}
}

func TestTruncatedStream(t *testing.T) {
	first := mustEncode(t, Record{Section: mustSection(t, `{"height":1}`), Txs: [][]byte{{0x01, 0x02}}})
	stream := mustEncode(t,
		Record{Section: mustSection(t, `{"height":1}`), Txs: [][]byte{{0x01, 0x02}}},
		Record{Section: mustSection(t, `{"height":2}`), Txs: [][]byte{{0x03}, {0x04, 0x05}}},
	)

	for length := 1; length < len(stream); length++ {
		output, err := BinaryBlocksToJSON(stream[:length])
		if length == len(first) {
			// A cut between records is a shorter, valid stream.
			if err != nil {
				t.Errorf("prefix of %d bytes (record boundary): %v", length, err)
			}
			continue
		}
		if !errors.Is(err, ErrTruncatedStream) {
			t.Fatalf("prefix of %d bytes: error = %v, want ErrTruncatedStream", length, err)
		}
		if output != nil {
			t.Fatalf("prefix of %d bytes: returned partial output %q", length, output)
		}
		var recordErr *RecordError
		if !errors.As(err, &recordErr) {
			t.Fatalf("prefix of %d bytes: error %v is not a *RecordError", length, err)
		}
		wantIndex := 0
		if length > len(first) {
			wantIndex = 1
		}
		if recordErr.Index != wantIndex {
			t.Errorf("prefix of %d bytes: record index = %d, want %d", length, recordErr.Index, wantIndex)
		}
	}
}

func TestTransactionCountPastEnd(t *testing.T) {
	section, err := portable.Encode(mustSection(t, `{}`))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	stream, _ := portable.AppendVarint(nil, uint64(len(section)))
	stream = append(stream, section...)
	stream = append(stream, 0xfc) // 63 transactions, none present

	if _, err := Decode(stream); !errors.Is(err, ErrTruncatedStream) {
		t.Errorf("Decode error = %v, want ErrTruncatedStream", err)
	}
}

func TestRecordFailureIsAtomic(t *testing.T) {
	good := mustEncode(t, Record{Section: mustSection(t, `{"ok":true}`)})

	badSection := []byte("not a portable buffer")
	bad, _ := portable.AppendVarint(nil, uint64(len(badSection)))
	bad = append(bad, badSection...)
	bad = append(bad, 0x00)

	stream := append(append([]byte(nil), good...), bad...)
	output, err := BinaryBlocksToJSON(stream)
	if output != nil {
		t.Errorf("BinaryBlocksToJSON returned partial output %q", output)
	}
	if !errors.Is(err, portable.ErrInvalidSignature) {
		t.Fatalf("error = %v, want ErrInvalidSignature", err)
	}
	var recordErr *RecordError
	if !errors.As(err, &recordErr) {
		t.Fatalf("error %v is not a *RecordError", err)
	}
	if recordErr.Index != 1 || recordErr.Offset != len(good) {
		t.Errorf("RecordError = {Index: %d, Offset: %d}, want {Index: 1, Offset: %d}",
			recordErr.Index, recordErr.Offset, len(good))
	}
}

func TestZeroWidthLimitCoversWholeStream(t *testing.T) {
	section := mustSection(t, `{"n":[null,null,null]}`)
	records := []Record{{Section: section}, {Section: section}, {Section: section}}
	stream := mustEncode(t, records...)

	tight := Options{Codec: portable.Options{MaxZeroWidthElements: 8}}
	_, err := tight.Decode(stream)
	if !errors.Is(err, portable.ErrUnrepresentable) {
		t.Fatalf("Decode error = %v, want ErrUnrepresentable", err)
	}
	var recordErr *RecordError
	if !errors.As(err, &recordErr) || recordErr.Index != 2 {
		t.Errorf("error = %v, want a RecordError for record 2", err)
	}
	if _, err := tight.BinaryBlocksToJSON(stream); !errors.Is(err, portable.ErrUnrepresentable) {
		t.Errorf("BinaryBlocksToJSON error = %v, want ErrUnrepresentable", err)
	}
	if _, err := tight.Encode(records); !errors.Is(err, portable.ErrUnrepresentable) {
		t.Errorf("Encode error = %v, want ErrUnrepresentable", err)
	}

	exact := Options{Codec: portable.Options{MaxZeroWidthElements: 9}}
	reencoded, err := exact.Encode(records)
	if err != nil {
		t.Fatalf("Encode at the limit: %v", err)
	}
	if _, err := exact.Decode(reencoded); err != nil {
		t.Errorf("Decode at the limit: %v", err)
	}
}

func TestSectionTrailingDataInsideFrame(t *testing.T) {
	section, err := portable.Encode(mustSection(t, `{"a":1}`))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	section = append(section, 0xff)
	stream, _ := portable.AppendVarint(nil, uint64(len(section)))
	stream = append(stream, section...)
	stream = append(stream, 0x00)

	if _, err := Decode(stream); !errors.Is(err, portable.ErrTrailingData) {
		t.Errorf("Decode error = %v, want ErrTrailingData", err)
	}
}

func TestTxFieldCollision(t *testing.T) {
	stream := mustEncode(t, Record{Section: mustSection(t, `{"txs":"already here"}`)})
	output, err := BinaryBlocksToJSON(stream)
	if !errors.Is(err, portable.ErrDuplicateField) {
		t.Errorf("BinaryBlocksToJSON error = %v, want ErrDuplicateField", err)
	}
	if output != nil {
		t.Errorf("BinaryBlocksToJSON returned %q on collision", output)
	}

	renamed, err := Options{TxField: "transactions"}.BinaryBlocksToJSON(stream)
	if err != nil {
		t.Fatalf("BinaryBlocksToJSON with renamed field: %v", err)
	}
	if want := `[{"txs":"already here","transactions":[]}]`; string(renamed) != want {
		t.Errorf("BinaryBlocksToJSON = %s, want %s", renamed, want)
	}
}

func TestParseTxEncoding(t *testing.T) {
	for name, want := range map[string]TxEncoding{"": TxHex, "hex": TxHex, "base64": TxBase64} {
		got, err := ParseTxEncoding(name)
		if err != nil || got != want {
			t.Errorf("ParseTxEncoding(%q) = (%q, %v), want (%q, nil)", name, got, err, want)
		}
	}
	if _, err := ParseTxEncoding("base32"); err == nil {
		t.Error("ParseTxEncoding(base32) succeeded")
	}
	if _, err := (Options{TxEncoding: "rot13"}).BinaryBlocksToJSON(nil); err == nil {
		t.Error("BinaryBlocksToJSON with an unknown encoding succeeded")
	}
}

func BenchmarkBinaryBlocksToJSON(b *testing.B) {
	section, err := portable.ParseJSON([]byte(`{"height":870987,"hash":"0123456789abcdef","reward":600000000000}`))
	if err != nil {
		b.Fatalf("ParseJSON: %v", err)
	}
	records := make([]Record, 100)
	for index := range records {
		records[index] = Record{Section: section, Txs: [][]byte{make([]byte, 256), make([]byte, 512)}}
	}
	stream, err := Encode(records)
	if err != nil {
		b.Fatalf("Encode: %v", err)
	}

	b.SetBytes(int64(len(stream)))
	for b.Loop() {
		if _, err := BinaryBlocksToJSON(stream); err != nil {
			b.Fatal(err)
		}
	}
}
