// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"

	"github.com/bureau-foundation/pstore/lib/blockstream"
	"github.com/bureau-foundation/pstore/lib/boundary"
	"github.com/bureau-foundation/pstore/lib/portable"
)

// status is the integer result of every exported call. The values are
// part of the C ABI and never change meaning.
type status int

const (
	statusOK status = iota
	statusMalformedJSON
	statusHeterogeneousArray
	statusInvalidSignature
	statusTruncatedBuffer
	statusUnknownTypeTag
	statusDuplicateField
	statusDepthExceeded
	statusTrailingData
	statusUnrepresentable
	statusTruncatedStream
	statusInvalidText
	statusAllocationFailed
	statusInvalidArgument
	statusLoggingFailed
	statusInternal
)

var statusMessages = map[status]string{
	statusOK:                 "ok",
	statusMalformedJSON:      "malformed JSON",
	statusHeterogeneousArray: "heterogeneous array",
	statusInvalidSignature:   "invalid portable-storage signature",
	statusTruncatedBuffer:    "truncated buffer",
	statusUnknownTypeTag:     "unknown type tag",
	statusDuplicateField:     "duplicate field",
	statusDepthExceeded:      "nesting depth exceeded",
	statusTrailingData:       "trailing data after root section",
	statusUnrepresentable:    "value not representable",
	statusTruncatedStream:    "truncated block stream",
	statusInvalidText:        "invalid text argument",
	statusAllocationFailed:   "allocation failed",
	statusInvalidArgument:    "invalid argument",
	statusLoggingFailed:      "logging configuration failed",
	statusInternal:           "internal error",
}

func (s status) String() string {
	if message, ok := statusMessages[s]; ok {
		return message
	}
	return "unknown status"
}

// statusSentinels maps errors to statuses in match order. More specific
// sentinels come first: a record error wraps a codec error.
var statusSentinels = []struct {
	err    error
	status status
}{
	{boundary.ErrAllocationFailed, statusAllocationFailed},
	{boundary.ErrInvalidText, statusInvalidText},
	{boundary.ErrInvalidUTF8, statusInternal},
	{boundary.ErrEmbeddedNUL, statusUnrepresentable},
	{boundary.ErrInvalidHandle, statusInvalidArgument},
	{portable.ErrMalformedJSON, statusMalformedJSON},
	{portable.ErrHeterogeneousArray, statusHeterogeneousArray},
	{portable.ErrInvalidSignature, statusInvalidSignature},
	{portable.ErrTruncatedBuffer, statusTruncatedBuffer},
	{portable.ErrUnknownTypeTag, statusUnknownTypeTag},
	{portable.ErrDuplicateField, statusDuplicateField},
	{portable.ErrDepthExceeded, statusDepthExceeded},
	{portable.ErrTrailingData, statusTrailingData},
	{portable.ErrUnrepresentable, statusUnrepresentable},
	{blockstream.ErrTruncatedStream, statusTruncatedStream},
}

// statusOf classifies err. A nil err is statusOK.
func statusOf(err error) status {
	if err == nil {
		return statusOK
	}
	for _, sentinel := range statusSentinels {
		if errors.Is(err, sentinel.err) {
			return sentinel.status
		}
	}
	return statusInternal
}
