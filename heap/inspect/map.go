package inspect

import (
	"fmt"
	"io"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"

	"github.com/joshuapare/kheap/heap/arena"
)

// Suballocation types used in the map.
const (
	TypeUsed = "USED"
	TypeFree = "FREE"
)

const streamBufferSize = 4096

// WriteMap streams the detailed map of a to w.
func WriteMap(w io.Writer, a *arena.Arena) error {
	jw := jwriter.NewStreamingWriter(w, streamBufferSize)
	writeMap(&jw, a)
	if err := jw.Error(); err != nil {
		return err
	}
	return jw.Flush()
}

// Map returns the detailed map of a as a JSON document.
func Map(a *arena.Arena) ([]byte, error) {
	jw := jwriter.NewWriter()
	writeMap(&jw, a)
	if err := jw.Error(); err != nil {
		return nil, err
	}
	return jw.Bytes(), nil
}

func writeMap(jw *jwriter.Writer, a *arena.Arena) {
	obj := jw.Object()

	payload := a.Payload()
	p := obj.Name("Payload").Object()
	p.Name("Base").String(hexAddr(payload.Addr()))
	p.Name("Bytes").Int(payload.Len)
	p.End()

	descs := a.Descriptors()
	d := obj.Name("Descriptors").Object()
	d.Name("Base").String(hexAddr(descs.Addr()))
	d.Name("Bytes").Int(descs.Len)
	d.Name("Capacity").Int(a.Capacity())
	d.End()

	writeStats(obj.Name("Stats"), a.Stats())

	arr := obj.Name("Suballocations").Array()
	for _, s := range Suballocations(a) {
		o := arr.Object()
		o.Name("Offset").Int(s.Offset)
		o.Name("Size").Int(s.Size)
		o.Name("Type").String(s.Type)
		o.End()
	}
	arr.End()

	obj.End()
}

func writeStats(jw *jwriter.Writer, s arena.Stats) {
	obj := jw.Object()
	obj.Name("Blocks").Int(s.Blocks)
	obj.Name("UsedBytes").Int(s.LiveBytes)
	obj.Name("UnusedBytes").Int(s.FreeBytes)
	obj.Name("UnusedRanges").Int(s.Gaps)
	obj.Name("LargestUnusedRange").Int(s.LargestGap)
	obj.Name("Fragmentation").Float64(s.Fragmentation)
	obj.Name("AllocCalls").Int(s.AllocCalls)
	obj.Name("AllocFailures").Int(s.AllocFailures)
	obj.Name("FreeCalls").Int(s.FreeCalls)
	obj.Name("InvalidFrees").Int(s.InvalidFrees)
	obj.Name("ResizeCalls").Int(s.ResizeCalls)
	obj.Name("ResizeInPlace").Int(s.ResizeInPlace)
	obj.Name("ResizeMoved").Int(s.ResizeMoved)
	obj.End()
}

// Suballocation is one used or free span of the payload.
type Suballocation struct {
	Offset int
	Size   int
	Type   string
}

// Suballocations returns every used and free span of a's payload in address
// order. Together they cover the payload exactly.
func Suballocations(a *arena.Arena) []Suballocation {
	blocks := a.Blocks()
	out := make([]Suballocation, 0, 2*len(blocks)+1)
	prev := 0
	for _, b := range blocks {
		if b.Start > prev {
			out = append(out, Suballocation{Offset: prev, Size: b.Start - prev, Type: TypeFree})
		}
		out = append(out, Suballocation{Offset: b.Start, Size: b.Size, Type: TypeUsed})
		prev = b.End()
	}
	if end := a.Payload().Len; end > prev {
		out = append(out, Suballocation{Offset: prev, Size: end - prev, Type: TypeFree})
	}
	return out
}

func hexAddr(v uintptr) string {
	return fmt.Sprintf("%#x", v)
}
