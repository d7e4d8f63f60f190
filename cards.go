// go-em4100
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-em4100.
//
// go-em4100 is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-em4100 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-em4100; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package em4100

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Card is one entry of the card table
type Card struct {
	Label string `yaml:"label"`
	Tag   Tag    `yaml:"tag"`
}

// CardTable holds the cards the emulator can present, indexed by selector value
type CardTable []Card

// Select returns the card addressed by a selector value
func (t CardTable) Select(value int) (Card, error) {
	if value < 0 || value >= len(t) {
		return Card{}, &SelectionError{Value: value, Count: len(t)}
	}
	return t[value], nil
}

type cardFile struct {
	Cards CardTable `yaml:"cards"`
}

// ParseCardTable decodes a YAML card table:
//
//	cards:
//	  - tag: "0A1B2C3D4E"
//	    label: front door
//
// Tags are hex, with or without a 0x prefix.
func ParseCardTable(data []byte) (CardTable, error) {
	var f cardFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse card table: %w", err)
	}
	for i, c := range f.Cards {
		if c.Label == "" {
			f.Cards[i].Label = fmt.Sprintf("card %d", i)
		}
	}
	return f.Cards, nil
}

// UnmarshalYAML parses a hex tag scalar
func (t *Tag) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected a hex scalar", ErrInvalidTag, value.Line)
	}
	parsed, err := ParseTag(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*t = parsed
	return nil
}

// MarshalYAML writes the tag as 10 hex digits
func (t Tag) MarshalYAML() (any, error) {
	return t.String(), nil
}
