// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

type txEncoding string

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Encoding txEncoding `flag:"tx-encoding" desc:"transaction encoding"`
		Field    string     `flag:"tx-field" desc:"transactions field"`
		Hex      bool       `flag:"hex,x" desc:"hex input"`
		Level    int        `flag:"log-level" desc:"verbosity"`
		Untagged string
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{
		"--tx-encoding", "base64",
		"--tx-field=transactions",
		"-x",
		"--log-level", "-1",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Encoding != "base64" {
		t.Errorf("Encoding = %q, want base64", p.Encoding)
	}
	if p.Field != "transactions" {
		t.Errorf("Field = %q, want transactions", p.Field)
	}
	if !p.Hex {
		t.Error("Hex = false, want true")
	}
	if p.Level != -1 {
		t.Errorf("Level = %d, want -1", p.Level)
	}
	if p.Untagged != "" {
		t.Errorf("Untagged = %q, want empty", p.Untagged)
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Compression string `flag:"compression" default:"auto"`
		Depth       int    `flag:"depth" default:"100"`
		Compact     bool   `flag:"compact" default:"true"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Compression != "auto" || p.Depth != 100 || !p.Compact {
		t.Errorf("defaults = %q %d %v", p.Compression, p.Depth, p.Compact)
	}

	if err := flagSet.Parse([]string{"--compact=false"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Compact {
		t.Error("--compact=false left Compact true")
	}
}

func TestBindFlags_Choices(t *testing.T) {
	type params struct {
		Compression string `flag:"compression" desc:"input compression" choices:"none,auto,zstd,lz4"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse([]string{"--compression", "zstd"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Compression != "zstd" {
		t.Errorf("Compression = %q, want zstd", p.Compression)
	}

	err := flagSet.Parse([]string{"--compression", "gzip"})
	if err == nil || !strings.Contains(err.Error(), "must be one of none, auto, zstd, lz4") {
		t.Errorf("Parse(--compression gzip) error = %v", err)
	}
	if usage := flagSet.FlagUsages(); !strings.Contains(usage, "(none, auto, zstd, lz4)") {
		t.Errorf("usage does not list the choices:\n%s", usage)
	}
}

func TestBindFlags_EmbeddedStructRecursion(t *testing.T) {
	type shared struct {
		ConfigPath string `flag:"config" desc:"config file"`
		LogLevel   string `flag:"log-level" desc:"verbosity"`
	}
	type params struct {
		shared
		Compact bool `flag:"compact,c" desc:"compact output"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse([]string{"--config", "/etc/pstore.yaml", "--log-level", "2", "-c"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.ConfigPath != "/etc/pstore.yaml" {
		t.Errorf("ConfigPath = %q", p.ConfigPath)
	}
	if p.LogLevel != "2" {
		t.Errorf("LogLevel = %q, want 2", p.LogLevel)
	}
	if !p.Compact {
		t.Error("Compact = false, want true")
	}
}

func TestBindFlags_Errors(t *testing.T) {
	type named struct {
		Name string `flag:"name"`
	}
	if err := BindFlags(named{}, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil ||
		!strings.Contains(err.Error(), "params must be a pointer to a struct") {
		t.Errorf("non-pointer error = %v", err)
	}

	s := "not a struct"
	if err := BindFlags(&s, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("expected error for non-struct, got nil")
	}

	type badDefault struct {
		Depth int `flag:"depth" default:"deep"`
	}
	if err := BindFlags(&badDefault{}, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("expected error for bad default, got nil")
	}

	type choicesOnInt struct {
		Depth int `flag:"depth" choices:"1,2"`
	}
	if err := BindFlags(&choicesOnInt{}, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("expected error for choices on an int field, got nil")
	}

	type unsupported struct {
		Table map[string]string `flag:"table"`
	}
	if err := BindFlags(&unsupported{}, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil ||
		!strings.Contains(err.Error(), "unsupported type") {
		t.Errorf("unsupported type error = %v", err)
	}
}

func TestFlagsFromParams(t *testing.T) {
	type params struct {
		Field string `flag:"tx-field" default:"txs"`
	}

	var p params
	if err := FlagsFromParams("test", &p).Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Field != "txs" {
		t.Errorf("Field = %q, want default txs", p.Field)
	}

	if err := FlagsFromParams("test", &p).Parse([]string{"--tx-field", "transactions", "blocks.bin"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Field != "transactions" {
		t.Errorf("Field = %q, want transactions", p.Field)
	}
}

func TestFlagsFromParams_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil input, got none")
		}
	}()
	FlagsFromParams("test", nil)
}
