package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckRequiredCredentials(t *testing.T) {
	assert.NoError(t, checkRequiredCredentials("123:token", "sk-key"))

	assert.Error(t, checkRequiredCredentials("", "sk-key"))
	assert.Error(t, checkRequiredCredentials("   ", "sk-key"))
	assert.Error(t, checkRequiredCredentials("123:token", ""))
	assert.Error(t, checkRequiredCredentials("123:token", "  "))
	assert.Error(t, checkRequiredCredentials("", ""))
}
