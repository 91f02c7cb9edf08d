package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatRequestValidate(t *testing.T) {
	valid := ChatRequest{Message: "你好"}
	assert.NoError(t, valid.Validate())

	empty := ChatRequest{}
	assert.Error(t, empty.Validate())
}
