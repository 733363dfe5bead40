package filters

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestToTOMLRoundTrip(t *testing.T) {
	input := map[string]interface{}{
		"title":   "node",
		"enabled": true,
		"ratio":   0.5,
		"ports":   []interface{}{8000, 8001},
		"owner": map[string]interface{}{
			"name": "ops",
			"age":  3,
			"tags": []string{"a", "b"},
		},
	}

	out, err := ToTOML(input)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, toml.Unmarshal([]byte(out), &decoded))

	expected := map[string]interface{}{
		"title":   "node",
		"enabled": true,
		"ratio":   0.5,
		"ports":   []interface{}{int64(8000), int64(8001)},
		"owner": map[string]interface{}{
			"name": "ops",
			"age":  int64(3),
			"tags": []interface{}{"a", "b"},
		},
	}
	assert.Equal(t, expected, decoded)
}

func TestToTOMLFromYAML(t *testing.T) {
	src := `
server:
  host: 0.0.0.0
  port: 8080
clients:
  - name: one
  - name: two
`
	var input interface{}
	require.NoError(t, yaml.Unmarshal([]byte(src), &input))

	out, err := ToTOML(input)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, toml.Unmarshal([]byte(out), &decoded))

	server := decoded["server"].(map[string]interface{})
	assert.Equal(t, "0.0.0.0", server["host"])
	assert.Equal(t, int64(8080), server["port"])
	assert.Len(t, decoded["clients"], 2)
}

func TestToTOMLErrors(t *testing.T) {
	testCases := []struct {
		name     string
		input    interface{}
		contains string
	}{
		{"not a mapping", []interface{}{1, 2}, "expects a mapping"},
		{"scalar", "text", "expects a mapping"},
		{"non-string key", map[interface{}]interface{}{1: "one"}, "is not a string"},
		{"nested non-string key", map[string]interface{}{"a": map[interface{}]interface{}{true: 1}}, "a: map key"},
		{"null value", map[string]interface{}{"a": nil}, "a: null values"},
		{"unsupported type", map[string]interface{}{"f": func() {}}, "cannot be represented"},
		{"nested in list", map[string]interface{}{"l": []interface{}{1, nil}}, "l[1]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ToTOML(tc.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestToTOMLAcceptsInterfaceKeyedStringMaps(t *testing.T) {
	out, err := ToTOML(map[interface{}]interface{}{"name": "x"})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, toml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, map[string]interface{}{"name": "x"}, decoded)
}
