package webqa_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/webqa"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := webqa.Errorf(webqa.ENOTFOUND, "no links found for %q", "test")

	assert.Equal(t, webqa.ENOTFOUND, webqa.ErrorCode(err))
	assert.Equal(t, "no links found for \"test\"", webqa.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, webqa.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, webqa.ErrorMessage(nil))
}

func TestErrorCode_UnwrapsWrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("search: %w", webqa.Errorf(webqa.EUNAVAILABLE, "duckduckgo http 503"))

	assert.Equal(t, webqa.EUNAVAILABLE, webqa.ErrorCode(err))
	assert.Equal(t, "duckduckgo http 503", webqa.ErrorMessage(err))
}

func TestErrorCode_PlainErrorIsInternal(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, webqa.EINTERNAL, webqa.ErrorCode(err))
	assert.Equal(t, "Internal error.", webqa.ErrorMessage(err))
}
