// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/pstore/lib/blockstream"
	"github.com/bureau-foundation/pstore/lib/portable"
)

func TestDiagBinary(t *testing.T) {
	value := mustSection(t, `{"height":870987,"ratio":2.0,"name":"x","none":null}`)
	value = value.With(portable.Field{Name: "blob", Value: portable.Bytes([]byte{0xff, 0x00})})
	bin, err := portable.Encode(value)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var output bytes.Buffer
	if err := diagBinary(bin, &output, portable.Options{}); err != nil {
		t.Fatalf("diagBinary: %v", err)
	}
	notation := output.String()
	for _, fragment := range []string{`"height": 870987`, `"ratio": 2.0`, `"name": "x"`, `"none": null`, `"blob": h'ff00'`} {
		if !strings.Contains(notation, fragment) {
			t.Errorf("notation %q does not contain %q", notation, fragment)
		}
	}
	if !strings.HasSuffix(notation, "\n") {
		t.Errorf("notation %q has no trailing newline", notation)
	}
}

func TestDiagBinaryRejectsBadInput(t *testing.T) {
	var output bytes.Buffer
	if err := diagBinary([]byte("{}"), &output, portable.Options{}); err == nil {
		t.Error("diagBinary accepted JSON text")
	}
	if err := diagBinary(nil, &output, portable.Options{}); err == nil {
		t.Error("diagBinary accepted empty input")
	}
}

func TestDiagBlocks(t *testing.T) {
	stream, err := blockstream.Encode([]blockstream.Record{
		{Section: mustSection(t, `{"height":1}`), Txs: [][]byte{{0xde, 0xad}, []byte("ok")}},
		{Section: mustSection(t, `{"height":2}`)},
	})
	if err != nil {
		t.Fatalf("blockstream.Encode: %v", err)
	}

	var output bytes.Buffer
	if err := diagBlocks(stream, &output, blockstream.Options{}); err != nil {
		t.Fatalf("diagBlocks: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(output.String(), "\n"), "\n")
	want := []string{
		`[{"height": 1}, [h'dead', h'6f6b']]`,
		`[{"height": 2}, []]`,
	}
	if len(lines) != len(want) {
		t.Fatalf("diagBlocks printed %d lines, want %d:\n%s", len(lines), len(want), output.String())
	}
	for index := range want {
		if lines[index] != want[index] {
			t.Errorf("line %d = %q, want %q", index, lines[index], want[index])
		}
	}
}

func TestDiagBlocksEmptyStream(t *testing.T) {
	var output bytes.Buffer
	if err := diagBlocks(nil, &output, blockstream.Options{}); err != nil {
		t.Fatalf("diagBlocks: %v", err)
	}
	if output.Len() != 0 {
		t.Errorf("diagBlocks(empty) printed %q", output.String())
	}
}
