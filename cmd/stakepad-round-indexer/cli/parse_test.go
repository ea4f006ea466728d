package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeight(t *testing.T) {
	height, err := parseHeight("1477800")
	require.NoError(t, err)
	assert.Equal(t, uint64(1477800), height)

	for _, arg := range []string{"", "-1", "0x10", "abc"} {
		_, err := parseHeight(arg)
		assert.Error(t, err, arg)
	}
}
