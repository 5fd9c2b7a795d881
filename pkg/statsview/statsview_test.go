package statsview

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestURL(t *testing.T) {
	assert.Equal(t, "http://localhost:18066/debug/statsview", url(""))
	assert.Equal(t, "http://127.0.0.1:9000/debug/statsview", url("127.0.0.1:9000"))
}
