package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalString_UnmarshalJSON(t *testing.T) {
	type payload struct {
		Bio OptionalString `json:"bio"`
	}

	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValid bool
		wantStr   string
	}{
		{name: "absent", body: `{}`, wantSet: false},
		{name: "null", body: `{"bio": null}`, wantSet: true, wantValid: false},
		{name: "value", body: `{"bio": "science writer"}`, wantSet: true, wantValid: true, wantStr: "science writer"},
		{name: "empty string", body: `{"bio": ""}`, wantSet: true, wantValid: true, wantStr: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))

			assert.Equal(t, tt.wantSet, p.Bio.Set)
			assert.Equal(t, tt.wantValid, p.Bio.Valid)
			assert.Equal(t, tt.wantStr, p.Bio.Str)
		})
	}
}

func TestOptionalString_Ptr(t *testing.T) {
	assert.Nil(t, OptionalString{Set: true}.Ptr())
	assert.Nil(t, OptionalString{}.Ptr())

	p := OptionalString{Set: true, Valid: true, Str: "fiction"}.Ptr()
	require.NotNil(t, p)
	assert.Equal(t, "fiction", *p)
}

func TestOptionalInt_UnmarshalJSON(t *testing.T) {
	type payload struct {
		Pages OptionalInt `json:"pages"`
	}

	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValid bool
		wantInt   int
	}{
		{name: "absent", body: `{}`, wantSet: false},
		{name: "null", body: `{"pages": null}`, wantSet: true, wantValid: false},
		{name: "number", body: `{"pages": 320}`, wantSet: true, wantValid: true, wantInt: 320},
		{name: "numeric string", body: `{"pages": "250"}`, wantSet: true, wantValid: true, wantInt: 250},
		{name: "float string truncates", body: `{"pages": "199.9"}`, wantSet: true, wantValid: true, wantInt: 199},
		{name: "non-numeric string becomes null", body: `{"pages": "lots"}`, wantSet: true, wantValid: false},
		{name: "empty string becomes null", body: `{"pages": ""}`, wantSet: true, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))

			assert.Equal(t, tt.wantSet, p.Pages.Set)
			assert.Equal(t, tt.wantValid, p.Pages.Valid)
			if tt.wantValid {
				assert.Equal(t, tt.wantInt, p.Pages.Int)
			}
		})
	}
}

func TestOptionalInt_Ptr(t *testing.T) {
	assert.Nil(t, OptionalInt{Set: true}.Ptr())

	p := OptionalInt{Set: true, Valid: true, Int: 1985}.Ptr()
	require.NotNil(t, p)
	assert.Equal(t, 1985, *p)
}
