package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePortList(t *testing.T) {
	t.Run("empty list means defaults", func(t *testing.T) {
		ports, err := parsePortList("")
		require.NoError(t, err)
		assert.Nil(t, ports)

		ports, err = parsePortList("   ")
		require.NoError(t, err)
		assert.Nil(t, ports)
	})

	t.Run("parses a comma-separated list", func(t *testing.T) {
		ports, err := parsePortList("443,22,80")
		require.NoError(t, err)
		assert.Equal(t, []uint16{22, 80, 443}, ports)
	})

	t.Run("expands inclusive ranges", func(t *testing.T) {
		ports, err := parsePortList("8000-8003")
		require.NoError(t, err)
		assert.Equal(t, []uint16{8000, 8001, 8002, 8003}, ports)
	})

	t.Run("deduplicates overlaps", func(t *testing.T) {
		ports, err := parsePortList("80,79-81,80")
		require.NoError(t, err)
		assert.Equal(t, []uint16{79, 80, 81}, ports)
	})

	t.Run("tolerates whitespace and empty parts", func(t *testing.T) {
		ports, err := parsePortList(" 22 , , 80 ")
		require.NoError(t, err)
		assert.Equal(t, []uint16{22, 80}, ports)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		cases := []string{
			"0",
			"65536",
			"http",
			"22-",
			"-80",
			"100-50",
		}
		for _, list := range cases {
			t.Run(list, func(t *testing.T) {
				_, err := parsePortList(list)
				assert.Error(t, err)
			})
		}
	})
}
