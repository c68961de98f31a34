// Package buffer provides the fixed-capacity, element-typed raw containers the
// allocator bootstraps itself with.
//
// # Overview
//
// Array is a manually managed buffer of capacity elements. List adds a
// length, insertion and removal by shifting, and push/pop at the tail.
//
// Both come in two ownership flavours, recorded in the Ownership tag:
//
//   - Owned: storage was obtained from an Allocator by New/NewList. Release
//     runs Drop on every live element that implements Dropper and then returns
//     the storage to the same Allocator exactly once.
//   - Borrowed: storage was supplied by the caller through At/ListAt. Release
//     never frees it. This is how the arena places its block table inside the
//     region it manages without calling into itself.
//
// # Element Types
//
// Storage may live outside the Go heap (an mmap'd region, or memory owned by
// another allocator), so the garbage collector never scans it. Element types
// must therefore be pointer-free: integers, bools, arrays and structs of
// those.
//
// # Usage Example
//
//	l, err := buffer.NewList[uint64](heap.Default, 16)
//	if err != nil {
//	    return err
//	}
//	defer l.Release()
//
//	_ = l.Push(1)
//	_ = l.Insert(0, 7) // [7 1]
//	v, _ := l.Pop()    // v == 1
//
// # Thread Safety
//
// Arrays and lists are not safe for concurrent use.
package buffer
