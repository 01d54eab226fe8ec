// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blockstream

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/bureau-foundation/pstore/lib/portable"
)

// BinaryBlocksToJSON decodes a block stream and returns a compact JSON
// array with one object per record, in stream order. Each object holds
// the record's section fields followed by the transaction field, which
// is always present. An empty bin yields "[]".
func (o Options) BinaryBlocksToJSON(bin []byte) ([]byte, error) {
	records, err := o.Decode(bin)
	if err != nil {
		return nil, err
	}
	return o.AppendJSON(nil, records)
}

// AppendJSON appends the JSON array rendering of records to dst.
func (o Options) AppendJSON(dst []byte, records []Record) ([]byte, error) {
	field := o.txField()
	encode, err := o.txEncoder()
	if err != nil {
		return nil, err
	}

	dst = append(dst, '[')
	for index, record := range records {
		if index > 0 {
			dst = append(dst, ',')
		}
		if _, exists := record.Section.Lookup(field); exists {
			return nil, fmt.Errorf("record %d: %w: section already has a %q field", index, portable.ErrDuplicateField, field)
		}
		txs := make([]portable.Value, len(record.Txs))
		for txIndex, tx := range record.Txs {
			txs[txIndex] = portable.String(encode(tx))
		}
		txArray, err := portable.NewArray(portable.TypeString, txs...)
		if err != nil {
			return nil, err
		}
		object := record.Section.With(portable.Field{Name: field, Value: txArray})
		if dst, err = portable.AppendJSON(dst, object); err != nil {
			return nil, fmt.Errorf("record %d: %w", index, err)
		}
	}
	return append(dst, ']'), nil
}

func (o Options) txEncoder() (func([]byte) string, error) {
	encoding, err := ParseTxEncoding(string(o.TxEncoding))
	if err != nil {
		return nil, err
	}
	if encoding == TxBase64 {
		return base64.StdEncoding.EncodeToString, nil
	}
	return hex.EncodeToString, nil
}

// BinaryBlocksToJSON is Options{}.BinaryBlocksToJSON.
func BinaryBlocksToJSON(bin []byte) ([]byte, error) {
	return Options{}.BinaryBlocksToJSON(bin)
}
