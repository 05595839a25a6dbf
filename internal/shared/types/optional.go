// Package types holds small JSON helper types shared by the request DTOs.
//
// Update endpoints take sparse patches: a field that is absent from the
// body must leave the stored value untouched, while an explicit null may
// legitimately clear a nullable column. Plain pointers cannot tell those
// two apart, so patch DTOs use the Optional types below.
package types

import "strconv"

// OptionalString is a JSON string field that distinguishes absent,
// null, and present values.
//
//	absent  -> Set=false
//	null    -> Set=true, Valid=false
//	"value" -> Set=true, Valid=true
type OptionalString struct {
	Set   bool
	Valid bool
	Str   string
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		return nil
	}

	s, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}
	o.Str = s
	o.Valid = true
	return nil
}

// Ptr returns the value as *string for nullable column binding:
// nil when the field was null (or never set).
func (o OptionalString) Ptr() *string {
	if !o.Valid {
		return nil
	}
	s := o.Str
	return &s
}

// OptionalInt is a JSON integer field with the same tri-state semantics
// as OptionalString, plus coercion: it accepts a number or a numeric
// string, and normalizes empty or non-numeric input to null instead of
// failing.
type OptionalInt struct {
	Set   bool
	Valid bool
	Int   int
}

func (o *OptionalInt) UnmarshalJSON(b []byte) error {
	o.Set = true
	s := string(b)
	if s == "null" {
		return nil
	}

	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		s = unquoted
	}
	if s == "" {
		return nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		o.Int = n
		o.Valid = true
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		o.Int = int(f)
		o.Valid = true
		return nil
	}

	// Non-numeric input normalizes to null.
	return nil
}

// Ptr returns the value as *int for nullable column binding.
func (o OptionalInt) Ptr() *int {
	if !o.Valid {
		return nil
	}
	n := o.Int
	return &n
}
