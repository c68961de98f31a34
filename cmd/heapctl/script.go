package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type opKind int

const (
	opAlloc opKind = iota
	opFree
	opResize
	opFill
)

func (k opKind) String() string {
	switch k {
	case opAlloc:
		return "alloc"
	case opFree:
		return "free"
	case opResize:
		return "resize"
	case opFill:
		return "fill"
	default:
		return "unknown"
	}
}

// op is one parsed script line.
type op struct {
	line  int
	kind  opKind
	name  string
	size  uintptr
	align uintptr
	zero  bool
	fill  byte
}

// parseScript reads an allocation script. Each non-blank line not starting
// with '#' is one of:
//
//	alloc NAME SIZE [ALIGN] [zero]
//	free NAME
//	resize NAME SIZE [ALIGN]
//	fill NAME BYTE
//
// Numbers accept 0x and 0b prefixes.
func parseScript(r io.Reader) ([]op, error) {
	var ops []op
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		o, err := parseLine(strings.Fields(text))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		o.line = line
		ops = append(ops, o)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ops, nil
}

func parseLine(f []string) (op, error) {
	o := op{align: 1}
	switch strings.ToLower(f[0]) {
	case "alloc":
		if len(f) < 3 || len(f) > 5 {
			return o, fmt.Errorf("usage: alloc NAME SIZE [ALIGN] [zero]")
		}
		o.kind = opAlloc
		rest := f[3:]
		if n := len(rest); n > 0 && strings.EqualFold(rest[n-1], "zero") {
			o.zero = true
			rest = rest[:n-1]
		}
		if len(rest) > 1 {
			return o, fmt.Errorf("usage: alloc NAME SIZE [ALIGN] [zero]")
		}
		return o, parseSizeAlign(&o, f[1], f[2], rest)

	case "resize":
		if len(f) < 3 || len(f) > 4 {
			return o, fmt.Errorf("usage: resize NAME SIZE [ALIGN]")
		}
		o.kind = opResize
		return o, parseSizeAlign(&o, f[1], f[2], f[3:])

	case "free":
		if len(f) != 2 {
			return o, fmt.Errorf("usage: free NAME")
		}
		o.kind = opFree
		o.name = f[1]
		return o, nil

	case "fill":
		if len(f) != 3 {
			return o, fmt.Errorf("usage: fill NAME BYTE")
		}
		v, err := strconv.ParseUint(f[2], 0, 8)
		if err != nil {
			return o, fmt.Errorf("invalid fill byte %q: %w", f[2], err)
		}
		o.kind = opFill
		o.name = f[1]
		o.fill = byte(v)
		return o, nil

	default:
		return o, fmt.Errorf("unknown command %q", f[0])
	}
}

func parseSizeAlign(o *op, name, size string, align []string) error {
	o.name = name
	v, err := strconv.ParseUint(size, 0, 64)
	if err != nil {
		return fmt.Errorf("invalid size %q: %w", size, err)
	}
	o.size = uintptr(v)
	if len(align) == 1 {
		v, err := strconv.ParseUint(align[0], 0, 64)
		if err != nil {
			return fmt.Errorf("invalid alignment %q: %w", align[0], err)
		}
		o.align = uintptr(v)
	}
	return nil
}

func (o op) String() string {
	switch o.kind {
	case opAlloc:
		s := fmt.Sprintf("alloc %s %d align %d", o.name, o.size, o.align)
		if o.zero {
			s += " zero"
		}
		return s
	case opResize:
		return fmt.Sprintf("resize %s %d align %d", o.name, o.size, o.align)
	case opFill:
		return fmt.Sprintf("fill %s 0x%02x", o.name, o.fill)
	default:
		return fmt.Sprintf("%s %s", o.kind, o.name)
	}
}
