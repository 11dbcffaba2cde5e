package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("post")))
	assert.Equal(t, KindMaxDepthReached, KindOf(fmt.Errorf("reply: %w", ErrMaxDepthReached)))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestIsMatchesOnKind(t *testing.T) {
	err := Wrap(KindSelfFollow, "nope", errors.New("cause"))
	assert.True(t, errors.Is(err, ErrSelfFollow))
	assert.False(t, errors.Is(err, ErrAlreadyFollowing))
	assert.EqualError(t, err, "[self_follow] nope: cause")
	assert.Equal(t, "post not found", NotFound("post").Message)
}
