// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blockstream

import (
	"fmt"

	"github.com/bureau-foundation/pstore/lib/portable"
)

// DefaultTxField is the JSON field that holds a record's transactions
// when Options.TxField is empty.
const DefaultTxField = "txs"

// TxEncoding selects the text form of transaction bytes in JSON.
type TxEncoding string

const (
	TxHex    TxEncoding = "hex"
	TxBase64 TxEncoding = "base64"
)

// ParseTxEncoding accepts "hex", "base64", or "" (hex).
func ParseTxEncoding(name string) (TxEncoding, error) {
	switch TxEncoding(name) {
	case "", TxHex:
		return TxHex, nil
	case TxBase64:
		return TxBase64, nil
	default:
		return "", fmt.Errorf("unknown transaction encoding %q (want hex or base64)", name)
	}
}

// Options configures stream decoding and its JSON rendering. The zero
// Options renders hex transactions under DefaultTxField with the codec's
// default limits.
type Options struct {
	TxEncoding TxEncoding
	TxField    string
	Codec      portable.Options
}

func (o Options) txField() string {
	if o.TxField == "" {
		return DefaultTxField
	}
	return o.TxField
}

// Record is one decoded unit of a block stream.
type Record struct {
	Section portable.Value
	Txs     [][]byte
}

// Decode splits bin into records and decodes each section. An empty
// bin yields no records and no error. The codec's zero-width limit
// covers the whole stream, not each section.
func (o Options) Decode(bin []byte) ([]Record, error) {
	var records []Record
	budget := o.Codec.NewZeroWidthBudget()
	framer := &framer{data: bin}
	for framer.offset < len(bin) {
		index := len(records)
		start := framer.offset
		recordErr := func(err error) error {
			return &RecordError{Index: index, Offset: start, Err: err}
		}

		sectionLength, err := framer.length("section")
		if err != nil {
			return nil, recordErr(err)
		}
		sectionBytes := framer.take(sectionLength)
		section, err := o.Codec.DecodeWithBudget(sectionBytes, budget)
		if err != nil {
			return nil, recordErr(err)
		}

		// Every transaction costs at least its one-byte length prefix.
		txCount, err := framer.length("transaction count")
		if err != nil {
			return nil, recordErr(err)
		}
		txs := make([][]byte, 0, txCount)
		for txIndex := range txCount {
			txLength, err := framer.length(fmt.Sprintf("transaction %d", txIndex))
			if err != nil {
				return nil, recordErr(err)
			}
			txs = append(txs, append([]byte(nil), framer.take(txLength)...))
		}

		records = append(records, Record{Section: section, Txs: txs})
	}
	return records, nil
}

// Encode writes records as a block stream, under the same stream-wide
// zero-width limit as Decode.
func (o Options) Encode(records []Record) ([]byte, error) {
	var stream []byte
	budget := o.Codec.NewZeroWidthBudget()
	for index, record := range records {
		section, err := o.Codec.EncodeWithBudget(record.Section, budget)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", index, err)
		}
		if stream, err = portable.AppendVarint(stream, uint64(len(section))); err != nil {
			return nil, fmt.Errorf("record %d: %w", index, err)
		}
		stream = append(stream, section...)
		if stream, err = portable.AppendVarint(stream, uint64(len(record.Txs))); err != nil {
			return nil, fmt.Errorf("record %d: %w", index, err)
		}
		for _, tx := range record.Txs {
			if stream, err = portable.AppendVarint(stream, uint64(len(tx))); err != nil {
				return nil, fmt.Errorf("record %d: %w", index, err)
			}
			stream = append(stream, tx...)
		}
	}
	return stream, nil
}

// Decode is Options{}.Decode.
func Decode(bin []byte) ([]Record, error) {
	return Options{}.Decode(bin)
}

// Encode is Options{}.Encode.
func Encode(records []Record) ([]byte, error) {
	return Options{}.Encode(records)
}

// framer reads the length-prefixed framing around records.
type framer struct {
	data   []byte
	offset int
}

// length reads a varint that counts bytes (or items of at least one
// byte) still to come, and rejects values larger than the rest of the
// stream.
func (f *framer) length(what string) (int, error) {
	value, width, err := portable.ReadVarint(f.data[f.offset:])
	if err != nil {
		return 0, fmt.Errorf("%w: %s length at byte %d: %v", ErrTruncatedStream, what, f.offset, err)
	}
	f.offset += width
	remaining := len(f.data) - f.offset
	if value > uint64(remaining) {
		return 0, fmt.Errorf("%w: %s declares %d bytes, %d remain", ErrTruncatedStream, what, value, remaining)
	}
	return int(value), nil
}

// take returns the next n bytes. Callers bound n with length first.
func (f *framer) take(n int) []byte {
	data := f.data[f.offset : f.offset+n]
	f.offset += n
	return data
}
