package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC32C(t *testing.T) {
	assert.Equal(t, uint32(0), CRC32C(nil))
	assert.Equal(t, uint32(0xe3069283), CRC32C([]byte("123456789")))
}
