// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/pstore/cmd/pstore/cli"
	"github.com/bureau-foundation/pstore/lib/portable"
)

type validateParams struct {
	commonParams
	inputParams
	cli.JSONOutput
}

// validateReport is the --json output of "pstore validate".
type validateReport struct {
	Valid          bool   `json:"valid"`
	Bytes          int    `json:"bytes"`
	Digest         string `json:"digest"`
	MismatchOffset *int   `json:"mismatch_offset,omitempty"`
	ReencodedBytes *int   `json:"reencoded_bytes,omitempty"`
}

func validateCommand() *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Check that a buffer survives a JSON round trip unchanged",
		Description: `Read a portable-storage buffer, project it to JSON, parse that JSON
back and re-encode it, then compare the bytes with the input.

A buffer passes when every value keeps its wire type through JSON:
64-bit integers, doubles, UTF-8 strings, homogeneous arrays. Narrow
integer types, booleans stored in wide integers, and non-UTF-8 strings
are legal on the wire but do not survive, and are reported with the
byte offset of the first difference.

Prints "valid" and the BLAKE3-256 digest of the input. With --json,
prints a report and exits 1 on a mismatch without an error line.`,
		Usage:  "pstore validate [flags] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Check a request before sending it",
				Command:     "pstore encode request.json | pstore validate",
			},
			{
				Description: "Machine-readable report for a stored response",
				Command:     "pstore validate --json response.bin",
			},
		},
		Run: func(args []string, logger *slog.Logger) error {
			env, err := params.load(logger)
			if err != nil {
				return err
			}
			data, err := readBinary("validate", args, params.HexInput, params.compression(env))
			if err != nil {
				return err
			}

			report, err := validateBinary(data, env.codec)
			if err != nil {
				return err
			}
			logger.Debug("validated", "bytes", report.Bytes, "valid", report.Valid)

			if done, err := params.EmitJSON(os.Stdout, report); done {
				if err != nil {
					return cli.Internal("write output: %w", err)
				}
				if !report.Valid {
					return &cli.ExitError{Code: 1}
				}
				return nil
			}
			return writeValidateText(os.Stdout, report)
		},
	}
}

// validateBinary decodes data, re-encodes it through its JSON
// projection and compares the result with the input. The returned error
// is non-nil only when the input cannot be decoded at all.
func validateBinary(data []byte, options portable.Options) (*validateReport, error) {
	if len(data) == 0 {
		return nil, cli.Validation("empty input: expected a portable-storage buffer")
	}

	value, err := options.Decode(data)
	if err != nil {
		return nil, decodeFailure("validate", err)
	}
	document, err := portable.AppendJSON(nil, value)
	if err != nil {
		return nil, cli.Internal("project to JSON: %w", err)
	}

	digest := blake3.Sum256(data)
	report := &validateReport{
		Valid:  true,
		Bytes:  len(data),
		Digest: hex.EncodeToString(digest[:]),
	}

	reparsed, err := options.ParseJSON(document)
	if err != nil {
		// The projection produced JSON the parser rejects. With nothing
		// re-encoded the difference is reported at byte 0.
		return mismatch(report, data, nil), nil
	}
	reencoded, err := options.Encode(reparsed)
	if err != nil {
		return mismatch(report, data, nil), nil
	}
	if !bytes.Equal(data, reencoded) {
		return mismatch(report, data, reencoded), nil
	}
	return report, nil
}

// mismatch marks report invalid with the first differing offset.
func mismatch(report *validateReport, original, reencoded []byte) *validateReport {
	offset := firstDifference(original, reencoded)
	length := len(reencoded)
	report.Valid = false
	report.MismatchOffset = &offset
	report.ReencodedBytes = &length
	return report
}

func firstDifference(original, reencoded []byte) int {
	offset := 0
	minLength := min(len(original), len(reencoded))
	for offset < minLength && original[offset] == reencoded[offset] {
		offset++
	}
	return offset
}

func writeValidateText(w io.Writer, report *validateReport) error {
	if !report.Valid {
		return cli.Validation("does not round-trip: first difference at byte %d (original %d bytes, re-encoded %d bytes)",
			*report.MismatchOffset, report.Bytes, *report.ReencodedBytes)
	}
	if _, err := fmt.Fprintf(w, "valid %s\n", report.Digest); err != nil {
		return cli.Internal("write output: %w", err)
	}
	return nil
}
