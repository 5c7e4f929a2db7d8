package ringbuffer_test

import (
	"errors"
	"fmt"

	"github.com/loren-osborn/ringdeque/ringbuffer"
)

func Example() {
	rb := ringbuffer.New(ringbuffer.WithCapacity[int](5))

	for i := range 5 {
		_ = rb.PushBack(i)
	}

	_, _ = rb.PopFront()
	_, _ = rb.PopFront()
	_ = rb.PushBack(5)
	_ = rb.PushBack(6)

	first, second := rb.AsSlices()
	fmt.Println(rb, rb.Cap())
	fmt.Println(first, second)
	// Output:
	// [2 3 4 5 6] 5
	// [2 3 4] [5 6]
}

func ExampleBuffer_PopFront() {
	var rb ringbuffer.Buffer[string]

	_, err := rb.PopFront()
	fmt.Println(errors.Is(err, ringbuffer.ErrEmpty))
	fmt.Println(err)
	// Output:
	// true
	// ringbuffer: PopFront: buffer is empty
}

func ExampleBuffer_Cursor() {
	rb := ringbuffer.FromSlice([]int{1, 2, 3, 4, 5})
	cursor := rb.Cursor()

	for {
		front, ok := cursor.Next()
		if !ok {
			break
		}

		back, ok := cursor.NextBack()
		if !ok {
			fmt.Println(front)

			break
		}

		fmt.Println(front, back)
	}
	// Output:
	// 1 5
	// 2 4
	// 3
}

func ExampleBuffer_Drain() {
	rb := ringbuffer.New(ringbuffer.WithRelease(func(s string) { fmt.Println("released", s) }))
	_ = rb.AppendSlice("a", "b", "c", "d")

	drainer, _ := rb.Drain()

	for s := range drainer.All() {
		fmt.Println("took", s)

		if s == "b" {
			break
		}
	}

	fmt.Println(rb.Len(), rb.Cap())
	// Output:
	// took a
	// took b
	// released d
	// released c
	// 0 8
}

func ExampleBuffer_IntoSlice() {
	rb := ringbuffer.New(ringbuffer.WithCapacity[int](4))
	_ = rb.AppendSlice(1, 2, 3, 4)
	_, _ = rb.PopFront()
	_ = rb.PushBack(5)

	items, _ := rb.IntoSlice()
	fmt.Println(items, rb.Cap())
	// Output: [2 3 4 5] 0
}
