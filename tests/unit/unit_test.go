package unit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// エラー文言のゆるい一致チェック
func assertErrContains(t *testing.T, err error, want string) {
	t.Helper()
	assert.Error(t, err)
	if err == nil {
		return
	}
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("error %q should contain %q", err.Error(), want)
	}
}
