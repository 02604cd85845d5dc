// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Built-in metadata applied when neither flags, front matter, nor config
// supply a value.
const (
	DefaultTitle     = "Distal Radius Fracture Rehabilitation"
	DefaultStage     = "Rehabilitation"
	DefaultDisease   = "Fracture"
	DefaultSpecialty = "Orthopedics"
)

// StringList is a list field that also accepts a single comma-separated
// string when decoded from YAML or JSON ("Rehabilitation,Acute").
type StringList []string

// UnmarshalYAML accepts either a scalar or a sequence. It uses the
// function-style signature so both yaml.v2 and yaml.v3 decoders call it.
func (l *StringList) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*l = SplitList(raw)
	return nil
}

// UnmarshalJSON accepts either a string or an array of strings.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = SplitList(raw)
	return nil
}

// SplitList normalizes a loosely typed value into a list of trimmed,
// non-empty strings. Strings are split on commas; slices are flattened the
// same way element by element. Nil yields nil.
func SplitList(v any) StringList {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return splitComma(val)
	case []string:
		var out StringList
		for _, s := range val {
			out = append(out, splitComma(s)...)
		}
		return out
	case StringList:
		return SplitList([]string(val))
	case []any:
		var out StringList
		for _, item := range val {
			out = append(out, SplitList(item)...)
		}
		return out
	default:
		return splitComma(fmt.Sprint(val))
	}
}

func splitComma(s string) StringList {
	var out StringList
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Metadata describes the guideline a set of recommendations belongs to.
type Metadata struct {
	Title     string     `json:"title" yaml:"title"`
	Stage     StringList `json:"stage" yaml:"stage"`
	Disease   StringList `json:"disease" yaml:"disease"`
	Specialty StringList `json:"specialty" yaml:"specialty"`
}

// DefaultMetadata returns the built-in metadata defaults.
func DefaultMetadata() Metadata {
	return Metadata{
		Title:     DefaultTitle,
		Stage:     StringList{DefaultStage},
		Disease:   StringList{DefaultDisease},
		Specialty: StringList{DefaultSpecialty},
	}
}

// Merge returns m with every empty field filled from fallback.
func (m Metadata) Merge(fallback Metadata) Metadata {
	out := m
	if strings.TrimSpace(out.Title) == "" {
		out.Title = fallback.Title
	}
	if len(out.Stage) == 0 {
		out.Stage = fallback.Stage
	}
	if len(out.Disease) == 0 {
		out.Disease = fallback.Disease
	}
	if len(out.Specialty) == 0 {
		out.Specialty = fallback.Specialty
	}
	return out
}
