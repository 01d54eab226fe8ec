// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/bureau-foundation/pstore/cmd/pstore/cli"
)

// inputParams are the flags of commands that read a binary buffer.
type inputParams struct {
	HexInput    bool   `json:"hex_input"   flag:"hex,x"        desc:"treat input as hex text (whitespace ignored)"`
	Compression string `json:"compression" flag:"compression" desc:"input compression, default from config" choices:"none,auto,zstd,lz4"`
}

// compression resolves the flag against the configured default, which
// config.Validate has already checked.
func (p *inputParams) compression(env *environment) string {
	if p.Compression != "" {
		return p.Compression
	}
	return env.compression
}

// Frame magics recognized by "auto" compression.
var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// maxDecompressedSize bounds decompressed input.
const maxDecompressedSize = 1 << 30

// zstdDecoder is shared; DecodeAll is safe for concurrent use.
var zstdDecoder *zstd.Decoder

func init() {
	var err error
	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecompressedSize))
	if err != nil {
		panic("pstore: zstd decoder initialization failed: " + err.Error())
	}
}

// stdin is replaced in tests.
var stdin io.Reader = os.Stdin

// readInput reads the optional single file argument, or stdin when
// there is none. The command name prefixes argument errors.
func readInput(command string, args []string) ([]byte, error) {
	switch len(args) {
	case 0:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, cli.Internal("read stdin: %w", err)
		}
		return data, nil
	case 1:
		data, err := os.ReadFile(args[0])
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cli.NotFound("read %s: %w", args[0], err)
		}
		if err != nil {
			return nil, cli.Internal("read %s: %w", args[0], err)
		}
		return data, nil
	default:
		return nil, cli.Validation("%s takes at most one file argument, got %d arguments", command, len(args))
	}
}

// readBinary reads input and undoes compression, then hex encoding.
func readBinary(command string, args []string, hexMode bool, compression string) ([]byte, error) {
	data, err := readInput(command, args)
	if err != nil {
		return nil, err
	}
	data, err = decompress(data, compression)
	if err != nil {
		return nil, err
	}
	if hexMode {
		return decodeHexInput(data)
	}
	return data, nil
}

// decompress undoes the named compression. "auto" recognizes zstd and
// LZ4 frames by their magic and passes anything else through.
func decompress(data []byte, mode string) ([]byte, error) {
	if mode == "auto" {
		switch {
		case bytes.HasPrefix(data, zstdMagic):
			mode = "zstd"
		case bytes.HasPrefix(data, lz4Magic):
			mode = "lz4"
		default:
			mode = "none"
		}
	}

	switch mode {
	case "none":
		return data, nil
	case "zstd":
		result, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, cli.Validation("zstd decompress: %w", err)
		}
		return result, nil
	case "lz4":
		reader := lz4.NewReader(bytes.NewReader(data))
		result, err := io.ReadAll(io.LimitReader(reader, maxDecompressedSize+1))
		if err != nil {
			return nil, cli.Validation("lz4 decompress: %w", err)
		}
		if len(result) > maxDecompressedSize {
			return nil, cli.Validation("lz4 decompress: output exceeds %d bytes", maxDecompressedSize)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unsupported compression %q", mode)
	}
}

// decodeHexInput strips whitespace from hex-encoded input and decodes
// it. Whitespace between digit pairs is allowed ("01 11 01 01" or
// "01110101").
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, cli.Validation("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, cli.Validation("decode hex: %w", err)
	}
	return decoded[:count], nil
}
