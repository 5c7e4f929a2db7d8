package stream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	//nolint:depguard // package under test.
	"github.com/loren-osborn/ringdeque/stream"
)

func TestAssertf(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		stream.Assertf(2+2 == 4, "This will not panic")
	})

	assert.PanicsWithValue(t, "Math error: 2 + 2 != 5", func() {
		stream.Assertf(2+2 == 5, "Math error: %d + %d != %d", 2, 2, 5)
	})
}
