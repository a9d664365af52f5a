package config

import "time"

// Source records which layer of the priority chain set a value.
type Source string

const (
	SourceDefault     Source = "default"
	SourceConfigFile  Source = "config file"
	SourceEnvironment Source = "environment"
	SourceFlag        Source = "flag"
)

// Value is a configuration value tagged with its Source.
type Value[T any] struct {
	Value  T
	Source Source
}

// NewValue returns v as a default.
func NewValue[T any](v T) Value[T] {
	return Value[T]{Value: v, Source: SourceDefault}
}

// Set overrides the value. Callers apply layers in priority order, so the last Set wins.
func (v *Value[T]) Set(value T, source Source) {
	v.Value = value
	v.Source = source
}

type (
	StringValue   = Value[string]
	BoolValue     = Value[bool]
	Uint64Value   = Value[uint64]
	DurationValue = Value[time.Duration]
)
