// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"io"
)

// JSONOutput adds a --json flag to a params struct by embedding:
//
//	type validateParams struct {
//	    cli.JSONOutput
//	    HexInput bool `flag:"hex,x" desc:"hex input"`
//	}
//
// Run then tries the JSON form first:
//
//	if done, err := params.EmitJSON(os.Stdout, report); done {
//	    return err
//	}
//	// text output
type JSONOutput struct {
	OutputJSON bool `json:"-" flag:"json" desc:"print a JSON report instead of text"`
}

// EmitJSON writes result with [WriteJSON] when --json is set and
// reports whether it did. The error is the write error.
func (j *JSONOutput) EmitJSON(w io.Writer, result any) (bool, error) {
	if !j.OutputJSON {
		return false, nil
	}
	return true, WriteJSON(w, result)
}

// WriteJSON writes value as two-space indented JSON and a newline.
// HTML characters are not escaped; the output is for terminals and
// scripts, not browsers.
func WriteJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(value)
}
