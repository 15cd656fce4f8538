// internal/models/value_test.go
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldValueJSONRoundTrip(t *testing.T) {
	original := map[string]FieldValue{
		"essay": StringValue("Because."),
		"score": NumberValue(87.5),
		"flag":  BoolValue(true),
		"blank": NullValue(),
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	// On the wire the values are plain JSON scalars, not tagged structs.
	var plain map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &plain))
	assert.Equal(t, "Because.", plain["essay"])
	assert.Equal(t, 87.5, plain["score"])
	assert.Equal(t, true, plain["flag"])
	assert.Nil(t, plain["blank"])

	var decoded map[string]FieldValue
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, original, decoded)
}

func TestFromAnyRejectsComposites(t *testing.T) {
	_, err := FromAny(map[string]interface{}{"nested": true})
	assert.Error(t, err)

	_, err = FromAny([]interface{}{"a"})
	assert.Error(t, err)
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "hi", StringValue("hi").Display())
	assert.Equal(t, "87", NumberValue(87).Display())
	assert.Equal(t, "87.5", NumberValue(87.5).Display())
	assert.Equal(t, "true", BoolValue(true).Display())
	assert.Equal(t, "false", BoolValue(false).Display())
	assert.Equal(t, "", NullValue().Display())
}
