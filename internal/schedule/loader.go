// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package schedule

import (
	_ "embed"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

//go:embed defaults.yaml
var defaultTableYAML []byte

// keyDelim is deliberately not "." so that filter.extra keys such as
// "with_runtime.gte" survive koanf's key flattening.
const keyDelim = "::"

// Parse decodes and validates a YAML table.
func Parse(data []byte) (*Table, error) {
	k := koanf.New(keyDelim)
	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("schedule: parse: %w", err)
	}
	return fromKoanf(k)
}

// Load reads and validates the table at path. An empty path returns the
// built-in table.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	k := koanf.New(keyDelim)
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("schedule: load %s: %w", path, err)
	}
	t, err := fromKoanf(k)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Default returns a fresh copy of the built-in table.
func Default() *Table {
	t, err := Parse(defaultTableYAML)
	if err != nil {
		panic("schedule: built-in table is invalid: " + err.Error())
	}
	return t
}

func fromKoanf(k *koanf.Koanf) (*Table, error) {
	t := &Table{
		EventPoolSize:  DefaultEventPoolSize,
		WeeklyPoolSize: DefaultWeeklyPoolSize,
	}
	if err := k.UnmarshalWithConf("", t, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("schedule: decode: %w", err)
	}
	if err := t.compile(); err != nil {
		return nil, err
	}
	return t, nil
}
