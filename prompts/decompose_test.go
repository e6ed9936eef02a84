package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecompose(t *testing.T) {
	p := Decompose("Plan entire company offsite")

	assert.Contains(t, p, `Task: "Plan entire company offsite"`)
	assert.Contains(t, p, `"subtasks"`)
	assert.Contains(t, p, "3 to 5")
}
