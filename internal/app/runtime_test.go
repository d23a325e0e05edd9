package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	_ "github.com/odyssey-erp/productdesk/testing"
)

func TestInTestModeUnderGoTest(t *testing.T) {
	assert.True(t, InTestMode())
}
