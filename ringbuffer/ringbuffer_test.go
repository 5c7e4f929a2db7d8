package ringbuffer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	//nolint:depguard // package under test.
	"github.com/loren-osborn/ringdeque/ringbuffer"
)

// state captures everything a failed operation must leave untouched.
type state struct {
	Head, Len, Cap int
	Contents       []int
}

func snapshot(rb *ringbuffer.Buffer[int]) state {
	return state{Head: rb.Head(), Len: rb.Len(), Cap: rb.Cap(), Contents: rb.ToSlice()}
}

func pushBackAll[T any](t *testing.T, rb *ringbuffer.Buffer[T], values ...T) {
	t.Helper()

	for _, v := range values {
		require.NoError(t, rb.PushBack(v))
	}
}

func TestRingBuffer_ZeroValue(t *testing.T) {
	t.Parallel()

	var ringBuf ringbuffer.Buffer[string]

	assert.Equal(t, 0, ringBuf.Len())
	assert.Equal(t, 0, ringBuf.Cap())
	assert.True(t, ringBuf.IsEmpty())
	assert.True(t, ringBuf.IsFull())

	require.NoError(t, ringBuf.PushBack("b"))
	require.NoError(t, ringBuf.PushFront("a"))

	assert.Equal(t, ringbuffer.MinGrowCapacity, ringBuf.Cap())
	assert.Equal(t, []string{"a", "b"}, ringBuf.ToSlice())
}

func TestRingBuffer_NewWithCapacity(t *testing.T) {
	t.Parallel()

	ringBuf := ringbuffer.New(ringbuffer.WithCapacity[int](3))

	assert.Equal(t, 3, ringBuf.Cap())
	assert.Equal(t, 0, ringBuf.Len())
	assert.False(t, ringBuf.IsFull())

	pushBackAll(t, ringBuf, 1, 2, 3)

	assert.Equal(t, 3, ringBuf.Cap(), "pre-allocated capacity must not reallocate")
	assert.True(t, ringBuf.IsFull())
}

func TestRingBuffer_NegInitialSize_PanicHandling(t *testing.T) {
	t.Parallel()

	require.PanicsWithValue(t, "capacity must not be negative", func() {
		ringbuffer.New(ringbuffer.WithCapacity[int](-1))
	})
}

// TestRingBuffer_Simple mirrors the classic deque walk-through: mixed pushes at
// both ends, pops at both ends, then indexed reads.
func TestRingBuffer_Simple(t *testing.T) {
	t.Parallel()

	ringBuf := ringbuffer.New[int]()

	require.NoError(t, ringBuf.PushFront(17))
	require.NoError(t, ringBuf.PushFront(42))
	require.NoError(t, ringBuf.PushBack(137))
	assert.Equal(t, 3, ringBuf.Len())
	require.NoError(t, ringBuf.PushBack(137))
	assert.Equal(t, 4, ringBuf.Len())

	front, err := ringBuf.Front()
	require.NoError(t, err)
	assert.Equal(t, 42, front)

	back, err := ringBuf.Back()
	require.NoError(t, err)
	assert.Equal(t, 137, back)

	for _, want := range []int{42} {
		got, err := ringBuf.PopFront()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, want := range []int{137, 137, 17} {
		got, err := ringBuf.PopBack()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	assert.Equal(t, 0, ringBuf.Len())

	require.NoError(t, ringBuf.PushBack(3))
	require.NoError(t, ringBuf.PushFront(2))
	require.NoError(t, ringBuf.PushBack(4))
	require.NoError(t, ringBuf.PushFront(1))

	for i, want := range []int{1, 2, 3, 4} {
		got, err := ringBuf.At(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

// TestRingBuffer_ExampleScenario walks through growth followed by wraparound
// inside the grown store.
func TestRingBuffer_ExampleScenario(t *testing.T) {
	t.Parallel()

	ringBuf := ringbuffer.New(ringbuffer.WithCapacity[int](4))
	pushBackAll(t, ringBuf, 1, 2, 3, 4)

	assert.True(t, ringBuf.IsFull())
	assert.Equal(t, 0, ringBuf.Head())
	assert.Equal(t, 4, ringBuf.Len())

	require.NoError(t, ringBuf.PushBack(5))
	assert.GreaterOrEqual(t, ringBuf.Cap(), 5)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ringBuf.ToSlice())

	headBefore := ringBuf.Head()

	for _, want := range []int{1, 2} {
		got, err := ringBuf.PopFront()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	assert.Equal(t, 3, ringBuf.Len())
	assert.Equal(t, headBefore+2, ringBuf.Head())

	pushBackAll(t, ringBuf, 6, 7)

	assert.Equal(t, []int{3, 4, 5, 6, 7}, ringBuf.ToSlice())
}

func TestRingBuffer_PushFrontWraps(t *testing.T) {
	t.Parallel()

	ringBuf := ringbuffer.New(ringbuffer.WithCapacity[int](0))
	items := []int{1, 2, 3}

	for _, v := range items {
		require.NoError(t, ringBuf.PushFront(v))
	}

	assert.Equal(t, []int{3, 2, 1}, ringBuf.ToSlice())
	assert.Equal(t, ringBuf.Cap()-3, ringBuf.Head(), "front pushes fill the store from the end")
}

func TestRingBuffer_PushMixed(t *testing.T) {
	t.Parallel()

	ringBuf := ringbuffer.New(ringbuffer.WithCapacity[int](1))

	require.NoError(t, ringBuf.PushBack(4))
	require.NoError(t, ringBuf.PushBack(5))
	require.NoError(t, ringBuf.PushFront(3))
	require.NoError(t, ringBuf.PushBack(6))
	require.NoError(t, ringBuf.PushFront(2))
	require.NoError(t, ringBuf.PushFront(1))

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ringBuf.ToSlice())
}

func TestRingBuffer_Underflow(t *testing.T) {
	t.Parallel()

	ringBuf := ringbuffer.New(ringbuffer.WithCapacity[int](4))
	pushBackAll(t, ringBuf, 1, 2, 3)

	for range 3 {
		_, err := ringBuf.PopFront()
		require.NoError(t, err)
	}

	before := snapshot(ringBuf)

	_, err := ringBuf.PopFront()
	require.ErrorIs(t, err, ringbuffer.ErrEmpty)

	_, err = ringBuf.PopBack()
	require.ErrorIs(t, err, ringbuffer.ErrEmpty)

	_, err = ringBuf.Front()
	require.ErrorIs(t, err, ringbuffer.ErrEmpty)

	_, err = ringBuf.BackPtr()
	require.ErrorIs(t, err, ringbuffer.ErrEmpty)

	_, err = ringBuf.Remove(0)
	require.ErrorIs(t, err, ringbuffer.ErrEmpty)

	assert.Equal(t, before, snapshot(ringBuf))
}

func TestRingBuffer_OutOfRange(t *testing.T) {
	t.Parallel()

	ringBuf := ringbuffer.New(ringbuffer.WithCapacity[int](4))
	pushBackAll(t, ringBuf, 10, 20, 30, 40)

	_, err := ringBuf.PopFront()
	require.NoError(t, err)
	require.NoError(t, ringBuf.PushBack(50)) // wrapped: head=1

	before := snapshot(ringBuf)

	for _, index := range []int{-1, 4, 5, 100} {
		_, err := ringBuf.At(index)
		require.ErrorIs(t, err, ringbuffer.ErrOutOfRange, "At(%d)", index)

		_, err = ringBuf.Ptr(index)
		require.ErrorIs(t, err, ringbuffer.ErrOutOfRange, "Ptr(%d)", index)

		require.ErrorIs(t, ringBuf.Set(index, 0), ringbuffer.ErrOutOfRange, "Set(%d)", index)
		require.ErrorIs(t, ringBuf.Swap(0, index), ringbuffer.ErrOutOfRange, "Swap(0, %d)", index)

		_, err = ringBuf.Remove(index)
		require.ErrorIs(t, err, ringbuffer.ErrOutOfRange, "Remove(%d)", index)
	}

	require.ErrorIs(t, ringBuf.Insert(5, 0), ringbuffer.ErrOutOfRange)
	require.ErrorIs(t, ringBuf.Insert(-1, 0), ringbuffer.ErrOutOfRange)
	require.ErrorIs(t, ringBuf.Truncate(-1), ringbuffer.ErrOutOfRange)

	assert.Equal(t, before, snapshot(ringBuf))

	var rbErr *ringbuffer.Error

	_, err = ringBuf.At(7)
	require.ErrorAs(t, err, &rbErr)
	assert.Equal(t, "At", rbErr.Op)
	assert.Equal(t, 7, rbErr.Index)
	assert.Equal(t, 4, rbErr.Len)
	assert.Equal(t, "ringbuffer: At: index 7 out of range with length 4", err.Error())
}

func TestRingBuffer_SetPtrSwap(t *testing.T) {
	t.Parallel()

	ringBuf := ringbuffer.New(ringbuffer.WithCapacity[int](4))
	pushBackAll(t, ringBuf, 1, 2, 3)
	require.NoError(t, ringBuf.PushFront(0)) // wraps to the last slot

	require.NoError(t, ringBuf.Set(1, 10))

	ptr, err := ringBuf.Ptr(3)
	require.NoError(t, err)
	*ptr = 30

	frontPtr, err := ringBuf.FrontPtr()
	require.NoError(t, err)
	*frontPtr = -1

	require.NoError(t, ringBuf.Swap(1, 2))
	require.NoError(t, ringBuf.Swap(3, 3))

	assert.Equal(t, []int{-1, 2, 10, 30}, ringBuf.ToSlice())
}

func TestRingBuffer_Insert(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		front int // elements pushed at the front (to force wrapping)
		index int
		want  []int
	}{
		{"AtFront", 0, 0, []int{99, 1, 2, 3, 4, 5}},
		{"NearFront", 0, 1, []int{1, 99, 2, 3, 4, 5}},
		{"Middle", 0, 3, []int{1, 2, 3, 99, 4, 5}},
		{"NearBack", 0, 4, []int{1, 2, 3, 4, 99, 5}},
		{"AtBack", 0, 5, []int{1, 2, 3, 4, 5, 99}},
		{"WrappedNearFront", 2, 1, []int{1, 99, 2, 3, 4, 5}},
		{"WrappedNearBack", 2, 4, []int{1, 2, 3, 4, 99, 5}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ringBuf := ringbuffer.New(ringbuffer.WithCapacity[int](8))

			for v := tc.front; v >= 1; v-- {
				require.NoError(t, ringBuf.PushFront(v))
			}

			for v := tc.front + 1; v <= 5; v++ {
				require.NoError(t, ringBuf.PushBack(v))
			}

			require.NoError(t, ringBuf.Insert(tc.index, 99))
			assert.Equal(t, tc.want, ringBuf.ToSlice())
			assert.Equal(t, 8, ringBuf.Cap())
		})
	}
}

func TestRingBuffer_InsertGrows(t *testing.T) {
	t.Parallel()

	ringBuf := ringbuffer.New(ringbuffer.WithCapacity[int](3))
	pushBackAll(t, ringBuf, 1, 2, 3)

	require.NoError(t, ringBuf.Insert(1, 99))

	assert.Equal(t, []int{1, 99, 2, 3}, ringBuf.ToSlice())
	assert.Equal(t, ringbuffer.MinGrowCapacity, ringBuf.Cap())
}

func TestRingBuffer_Remove(t *testing.T) {
	t.Parallel()

	for _, front := range []int{0, 3} {
		for index := range 6 {
			ringBuf := ringbuffer.New(ringbuffer.WithCapacity[int](7))

			for v := front; v >= 1; v-- {
				require.NoError(t, ringBuf.PushFront(v))
			}

			for v := front + 1; v <= 6; v++ {
				require.NoError(t, ringBuf.PushBack(v))
			}

			got, err := ringBuf.Remove(index)
			require.NoError(t, err)
			assert.Equal(t, index+1, got)

			want := []int{}

			for v := 1; v <= 6; v++ {
				if v != index+1 {
					want = append(want, v)
				}
			}

			assert.Equal(t, want, ringBuf.ToSlice(), "front=%d index=%d", front, index)

			// The vacated slot must not keep a duplicate of any element.
			zeros := 0

			for slot := range ringBuf.Cap() {
				if ringBuf.Slot(slot) == 0 {
					zeros++
				}
			}

			assert.Equal(t, ringBuf.Cap()-ringBuf.Len(), zeros, "front=%d index=%d", front, index)
		}
	}
}

func TestRingBuffer_PopClearsSlot(t *testing.T) {
	t.Parallel()

	ringBuf := ringbuffer.New(ringbuffer.WithCapacity[*int](2))
	require.NoError(t, ringBuf.PushBack(new(int)))
	require.NoError(t, ringBuf.PushBack(new(int)))

	_, err := ringBuf.PopFront()
	require.NoError(t, err)
	_, err = ringBuf.PopBack()
	require.NoError(t, err)

	assert.Nil(t, ringBuf.Slot(0))
	assert.Nil(t, ringBuf.Slot(1))
	assert.Equal(t, 0, ringBuf.Head())
}

func TestRingBuffer_TruncateClearClose(t *testing.T) {
	t.Parallel()

	var released []int

	ringBuf := ringbuffer.New(
		ringbuffer.WithCapacity[int](4),
		ringbuffer.WithRelease(func(v int) { released = append(released, v) }),
	)

	pushBackAll(t, ringBuf, 1, 2, 3)
	require.NoError(t, ringBuf.PushFront(0))

	require.NoError(t, ringBuf.Truncate(10))
	assert.Empty(t, released, "truncating past the end is a no-op")

	require.NoError(t, ringBuf.Truncate(2))
	assert.Equal(t, []int{3, 2}, released)
	assert.Equal(t, []int{0, 1}, ringBuf.ToSlice())

	popped, err := ringBuf.PopFront()
	require.NoError(t, err)
	assert.Equal(t, 0, popped)

	require.NoError(t, ringBuf.Clear())
	assert.Equal(t, []int{3, 2, 1}, released, "popped elements belong to the caller")
	assert.Equal(t, 4, ringBuf.Cap(), "Clear retains capacity")
	assert.Equal(t, 0, ringBuf.Head())

	pushBackAll(t, ringBuf, 7, 8)
	require.NoError(t, ringBuf.Close())
	assert.Equal(t, []int{3, 2, 1, 8, 7}, released)
	assert.Equal(t, 0, ringBuf.Cap(), "Close releases the backing store")
	assert.Equal(t, 0, ringBuf.Len())

	require.NoError(t, ringBuf.PushBack(9), "a closed buffer is reusable")
	assert.Equal(t, []int{9}, ringBuf.ToSlice())
}

func TestRingBuffer_String(t *testing.T) {
	t.Parallel()

	ringBuf := ringbuffer.New(ringbuffer.WithCapacity[int](3))
	assert.Equal(t, "[]", ringBuf.String())

	pushBackAll(t, ringBuf, 2, 3)
	require.NoError(t, ringBuf.PushFront(1))

	assert.Equal(t, "[1 2 3]", ringBuf.String())
}

func TestRingBuffer_IndexFunc(t *testing.T) {
	t.Parallel()

	ringBuf := ringbuffer.New(ringbuffer.WithCapacity[string](4))
	pushBackAll(t, ringBuf, "b", "c", "d")
	require.NoError(t, ringBuf.PushFront("a"))

	assert.Equal(t, 0, ringBuf.IndexFunc(func(s string) bool { return s == "a" }))
	assert.Equal(t, 3, ringBuf.IndexFunc(func(s string) bool { return s == "d" }))
	assert.Equal(t, -1, ringBuf.IndexFunc(func(s string) bool { return s == "z" }))
}
