package parser

type stack[T any] struct {
	items []T
}

func newStack[T any](items ...T) *stack[T] {
	return &stack[T]{items: items}
}

func (s *stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

func (s *stack[T]) Len() int {
	return len(s.items)
}

func (s *stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

func (s *stack[T]) Pop() (item T) {
	if len(s.items) != 0 {
		item = s.items[len(s.items)-1]
		s.items = s.items[:len(s.items)-1]
	}
	return
}

func (s *stack[T]) Top() *T {
	if len(s.items) == 0 {
		return nil
	}

	return &s.items[len(s.items)-1]
}
