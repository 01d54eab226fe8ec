// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
)

// ReadLogRecords reads a JSON-lines log file and returns its records in
// order. A missing file yields no records.
func ReadLogRecords(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading log file %s: %v", path, err)
	}

	var records []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var record map[string]any
		if err := json.Unmarshal(line, &record); err != nil {
			t.Fatalf("log file %s: line %d is not JSON: %v", path, len(records)+1, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scanning log file %s: %v", path, err)
	}
	return records
}

// LogMessages returns the "msg" field of each record.
func LogMessages(records []map[string]any) []string {
	messages := make([]string, 0, len(records))
	for _, record := range records {
		message, _ := record["msg"].(string)
		messages = append(messages, message)
	}
	return messages
}
