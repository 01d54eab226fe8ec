// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

/*
#include <stddef.h>
#include <stdint.h>
#include <stdlib.h>
#include <string.h>
*/
import "C"

import (
	"unsafe"

	"github.com/bureau-foundation/pstore/bridge"
	"github.com/bureau-foundation/pstore/lib/boundary"
)

var library = &bridge.Bridge{Runtime: cRuntime{}}

// statusStrings holds the pstore_strerror results. They live for the
// life of the process and are never freed.
var statusStrings = make(map[status]*C.char, len(statusMessages)+1)

var unknownStatusString *C.char

func init() {
	for code, message := range statusMessages {
		statusStrings[code] = C.CString(message)
	}
	unknownStatusString = C.CString(status(-1).String())
}

func main() {}

// cStringText views a NUL-terminated argument without copying. A NULL
// pointer is a nil handle.
func cStringText(text *C.char) boundary.Text {
	if text == nil {
		return nil
	}
	return boundary.CStringText(unsafe.Slice((*byte)(unsafe.Pointer(text)), C.strlen(text)))
}

// borrowedBytes views the caller's buffer for the duration of a call.
func borrowedBytes(data *C.uchar, length C.size_t) (boundary.ByteArray, bool) {
	if data == nil && length > 0 {
		return nil, false
	}
	return &cBytes{pointer: unsafe.Pointer(data), length: int(length)}, true
}

//export pstore_json_to_binary
func pstore_json_to_binary(json *C.char, out **C.uchar, outLength *C.size_t) C.int {
	return jsonToBinary(cStringText(json), out, outLength)
}

//export pstore_json_to_binary_utf16
func pstore_json_to_binary_utf16(json *C.uint16_t, units C.size_t, out **C.uchar, outLength *C.size_t) C.int {
	var handle boundary.Text
	switch {
	case json == nil && units > 0:
		return C.int(statusInvalidArgument)
	case json != nil:
		handle = boundary.UTF16Text(unsafe.Slice((*uint16)(unsafe.Pointer(json)), units))
	}
	return jsonToBinary(handle, out, outLength)
}

func jsonToBinary(json boundary.Text, out **C.uchar, outLength *C.size_t) C.int {
	if out == nil || outLength == nil {
		return C.int(statusInvalidArgument)
	}
	*out, *outLength = nil, 0

	array, err := library.JSONToBinary(json)
	if err != nil {
		return C.int(statusOf(err))
	}
	result := array.(*cBytes)
	*out = (*C.uchar)(result.pointer)
	*outLength = C.size_t(result.length)
	return C.int(statusOK)
}

//export pstore_binary_to_json
func pstore_binary_to_json(data *C.uchar, length C.size_t, out **C.char) C.int {
	return textResult(data, length, out, library.BinaryToJSON)
}

//export pstore_binary_blocks_to_json
func pstore_binary_blocks_to_json(data *C.uchar, length C.size_t, out **C.char) C.int {
	return textResult(data, length, out, library.BinaryBlocksToJSON)
}

func textResult(data *C.uchar, length C.size_t, out **C.char, operation func(boundary.ByteArray) (boundary.Text, error)) C.int {
	if out == nil {
		return C.int(statusInvalidArgument)
	}
	*out = nil

	input, ok := borrowedBytes(data, length)
	if !ok {
		return C.int(statusInvalidArgument)
	}
	text, err := operation(input)
	if err != nil {
		return C.int(statusOf(err))
	}
	*out = (*C.char)(text.(*cText).pointer)
	return C.int(statusOK)
}

//export pstore_init_logging
func pstore_init_logging(path *C.char, echoToConsole C.int) C.int {
	if err := library.InitLogging(cStringText(path), echoToConsole != 0); err != nil {
		if code := statusOf(err); code != statusInternal {
			return C.int(code)
		}
		return C.int(statusLoggingFailed)
	}
	return C.int(statusOK)
}

//export pstore_set_log_level
func pstore_set_log_level(level C.int) {
	library.SetLogLevel(int(level))
}

//export pstore_free
func pstore_free(pointer unsafe.Pointer) {
	C.free(pointer)
}

//export pstore_strerror
func pstore_strerror(code C.int) *C.char {
	if message, ok := statusStrings[status(code)]; ok {
		return message
	}
	return unknownStatusString
}
