package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/kheap/heap/inspect"
)

const barWidth = 64

var (
	// Color palette
	primaryColor = lipgloss.Color("#7D56F4")
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF4B4B")
	mutedColor   = lipgloss.Color("#666666")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	labelStyle = lipgloss.NewStyle().Foreground(mutedColor)
	okStyle    = lipgloss.NewStyle().Foreground(successColor)
	failStyle  = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	usedStyle  = lipgloss.NewStyle().Foreground(primaryColor)
	freeStyle  = lipgloss.NewStyle().Foreground(mutedColor)
)

func render(s lipgloss.Style, text string) string {
	if noColor {
		return text
	}
	return s.Render(text)
}

func printReport(r runReport, subs []inspect.Suballocation) {
	printInfo("%s\n", render(headerStyle, "Operations"))
	for _, res := range r.Operations {
		status := render(okStyle, "ok  ")
		detail := fmt.Sprintf("offset %d", res.Offset)
		if res.Moved {
			detail += " (moved)"
		}
		if !res.OK {
			status = render(failStyle, "FAIL")
			detail = res.Error
		}
		printInfo("  %4d  %-32s %s  %s\n", res.Line, res.Op, status, detail)
	}

	st := r.Stats
	printInfo("\n%s\n", render(headerStyle, "Heap"))
	rows := []struct {
		label string
		value string
	}{
		{"Payload bytes", fmt.Sprint(st.PayloadBytes)},
		{"Descriptor capacity", fmt.Sprint(st.DescriptorCapacity)},
		{"Blocks", fmt.Sprint(st.Blocks)},
		{"Used bytes", fmt.Sprint(st.LiveBytes)},
		{"Free bytes", fmt.Sprint(st.FreeBytes)},
		{"Free ranges", fmt.Sprint(st.Gaps)},
		{"Largest free range", fmt.Sprint(st.LargestGap)},
		{"Fragmentation", fmt.Sprintf("%.1f%%", st.Fragmentation*100)},
		{"Failed operations", fmt.Sprint(r.Failures)},
	}
	for _, row := range rows {
		printInfo("  %s %s\n", render(labelStyle, fmt.Sprintf("%-20s", row.label)), row.value)
	}
	printInfo("  [%s]\n", usageBar(subs, st.PayloadBytes, barWidth))

	for _, name := range slices.Sorted(maps.Keys(r.Dumps)) {
		printInfo("\n%s\n", render(headerStyle, "Block "+name))
		printInfo("%s", r.Dumps[name])
	}

	if len(r.Map) > 0 {
		printInfo("\n%s\n", render(headerStyle, "Block map"))
		fmt.Fprintf(os.Stdout, "%s\n", r.Map)
	}
}

// usageBar draws the payload as width cells; a cell is marked used when any
// byte it covers belongs to a live block.
func usageBar(subs []inspect.Suballocation, total, width int) string {
	if total <= 0 {
		return ""
	}
	used := make([]bool, width)
	for _, s := range subs {
		if s.Type != inspect.TypeUsed {
			continue
		}
		from := s.Offset * width / total
		to := min((s.Offset+s.Size)*width+total-1, total*width) / total
		for i := from; i < to; i++ {
			used[i] = true
		}
	}

	var b strings.Builder
	for _, u := range used {
		if u {
			b.WriteString(render(usedStyle, "█"))
		} else {
			b.WriteString(render(freeStyle, "░"))
		}
	}
	return b.String()
}
