// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// FlagsFromParams creates a [pflag.FlagSet] with flags bound to the tagged
// fields of params. params must be a pointer to a struct. Panics on
// invalid input (programming error, not runtime data).
//
// [Command.Execute] calls it with the result of [Command.Params].
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers a pflag entry for each tagged field in params.
// params must be a pointer to a struct.
//
// # Struct tags
//
//   - flag:"name" or flag:"name,n": the long flag name and optional
//     single-character shorthand. Fields without a flag tag are skipped.
//   - desc:"help text": the flag's help description.
//   - default:"value": the default, parsed like a command-line value.
//   - choices:"a,b,c": string fields only; any other value is rejected
//     when the flag is parsed, and the choices are listed in help.
//
// Fields are bound by kind, so named types such as
// blockstream.TxEncoding bind like their underlying string, bool or int.
// Embedded structs are bound recursively, so a shared flag group can be
// embedded in every command's params.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStruct(value.Elem(), flagSet)
}

func bindStruct(structValue reflect.Value, flagSet *pflag.FlagSet) error {
	structType := structValue.Type()
	for index := range structType.NumField() {
		field := structType.Field(index)
		value := structValue.Field(index)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := bindStruct(value, flagSet); err != nil {
				return fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			continue
		}

		tag, tagged := field.Tag.Lookup("flag")
		if !tagged || tag == "" {
			continue
		}
		name, shorthand, _ := strings.Cut(tag, ",")
		if err := bindField(value, field.Tag, flagSet, name, shorthand); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

func bindField(field reflect.Value, tag reflect.StructTag, flagSet *pflag.FlagSet, name, shorthand string) error {
	if !field.CanSet() {
		return fmt.Errorf("--%s: field is not settable", name)
	}

	flagValue := &fieldValue{field: field}
	switch field.Kind() {
	case reflect.String, reflect.Bool, reflect.Int:
	default:
		return fmt.Errorf("unsupported type %s for flag --%s", field.Type(), name)
	}

	usage := tag.Get("desc")
	if choices := tag.Get("choices"); choices != "" {
		if field.Kind() != reflect.String {
			return fmt.Errorf("--%s: choices need a string field, have %s", name, field.Type())
		}
		flagValue.choices = strings.Split(choices, ",")
		usage += " (" + strings.Join(flagValue.choices, ", ") + ")"
	}

	// A reused params struct starts every parse from its defaults.
	field.SetZero()
	if defaultString := tag.Get("default"); defaultString != "" {
		if err := flagValue.Set(defaultString); err != nil {
			return fmt.Errorf("default for --%s: %w", name, err)
		}
	}

	flag := flagSet.VarPF(flagValue, name, shorthand, usage)
	if field.Kind() == reflect.Bool {
		flag.NoOptDefVal = "true"
	}
	return nil
}

// fieldValue adapts one struct field to [pflag.Value].
type fieldValue struct {
	field   reflect.Value
	choices []string
}

func (v *fieldValue) String() string {
	switch v.field.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.field.Bool())
	case reflect.Int:
		return strconv.FormatInt(v.field.Int(), 10)
	default:
		return v.field.String()
	}
}

func (v *fieldValue) Set(text string) error {
	switch v.field.Kind() {
	case reflect.Bool:
		parsed, err := strconv.ParseBool(text)
		if err != nil {
			return err
		}
		v.field.SetBool(parsed)
	case reflect.Int:
		parsed, err := strconv.ParseInt(text, 0, strconv.IntSize)
		if err != nil {
			return err
		}
		v.field.SetInt(parsed)
	default:
		if len(v.choices) > 0 && !slices.Contains(v.choices, text) {
			return fmt.Errorf("must be one of %s, got %q", strings.Join(v.choices, ", "), text)
		}
		v.field.SetString(text)
	}
	return nil
}

// Type names the value in help output. pflag also uses it to decide
// whether a default is worth printing.
func (v *fieldValue) Type() string {
	return v.field.Kind().String()
}
