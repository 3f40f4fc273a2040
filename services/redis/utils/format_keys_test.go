package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatKeys(t *testing.T) {
	assert.Equal(t, "presence:user:u1", FormatPresenceKey("u1"))
	assert.Equal(t, "presence:conn:abc", FormatConnectionKey("abc"))
}
