package ecs

import "iter"

// iComponentStorage is the type-erased column of one component type.
type iComponentStorage interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Len() int
	Iter() iter.Seq[int]
}
