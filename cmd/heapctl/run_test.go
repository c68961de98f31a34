package main

import (
	"encoding/json"
	"testing"

	"github.com/joshuapare/kheap/heap/inspect"
)

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name           string
		script         string
		json           bool
		showMap        bool
		dumps          []string
		size           int
		wantErr        bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:   "placement",
			script: "alloc a 10\nalloc b 20 8\nfree a\nalloc c 5\n",
			wantContain: []string{
				"Operations",
				"alloc a 10 align 1",
				"offset 0",
				"offset 16",
				"offset 36",
				"Blocks               2",
				"Failed operations    0",
			},
			wantNotContain: []string{"FAIL", "Block map"},
		},
		{
			name:        "allocator refusal is reported",
			script:      "alloc big 0x1000000\nalloc ok 8\n",
			wantContain: []string{"FAIL", "request too large", "Failed operations    1", "alloc ok 8 align 1"},
		},
		{
			name:        "blocked resize moves",
			script:      "alloc a 16\nalloc b 16\nresize a 64\n",
			wantContain: []string{"resize a 64 align 1", "offset 32 (moved)"},
		},
		{
			name:           "in place resize",
			script:         "alloc a 16\nresize a 64\n",
			wantContain:    []string{"resize a 64 align 1"},
			wantNotContain: []string{"(moved)"},
		},
		{
			name:        "hexdump",
			script:      "alloc a 16\nfill a 0x41\n",
			dumps:       []string{"a"},
			wantContain: []string{"Block a", "00000000  41 41 41 41", "|AAAAAAAAAAAAAAAA|"},
		},
		{
			name:        "text map",
			script:      "alloc a 16\n",
			showMap:     true,
			wantContain: []string{"Block map", `"Suballocations"`, `"Type":"USED"`},
		},
		{name: "unknown block", script: "free nope\n", wantErr: true},
		{name: "duplicate name", script: "alloc a 1\nalloc a 1\n", wantErr: true},
		{name: "parse error", script: "alloc a\n", wantErr: true},
		{name: "dump unknown block", script: "alloc a 1\n", dumps: []string{"b"}, wantErr: true},
		{name: "region too small", script: "alloc a 1\n", size: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.json
			runMap = tt.showMap
			runDumps = tt.dumps
			if tt.size != 0 {
				heapSize = tt.size
			}

			args := []string{writeScript(t, tt.script)}

			output, err := captureOutput(t, func() error {
				return runScript(args)
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("runScript() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestRunCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	runMap = true
	runDumps = []string{"b"}

	args := []string{writeScript(t, "alloc a 32 16 zero\nalloc b 8\nfill b 0x7e\nresize a 8\nalloc huge 0x10000000\n")}
	output, err := captureOutput(t, func() error { return runScript(args) })
	if err != nil {
		t.Fatalf("runScript() error = %v", err)
	}
	assertJSON(t, output)

	var report struct {
		Operations []opResult `json:"operations"`
		Failures   int        `json:"failures"`
		Stats      struct {
			Blocks    int
			LiveBytes int
		} `json:"stats"`
		Map struct {
			Suballocations []inspect.Suballocation
		} `json:"map"`
		Dumps map[string]string `json:"dumps"`
	}
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}

	if len(report.Operations) != 5 {
		t.Fatalf("got %d operations, want 5", len(report.Operations))
	}
	if report.Failures != 1 || report.Operations[4].OK || report.Operations[4].Error == "" {
		t.Errorf("expected the last allocation to fail: %+v", report.Operations[4])
	}
	if got := report.Operations[1].Offset; got != 32 {
		t.Errorf("b offset = %d, want 32", got)
	}
	if report.Stats.Blocks != 2 || report.Stats.LiveBytes != 16 {
		t.Errorf("stats = %+v, want 2 blocks / 16 bytes", report.Stats)
	}
	if len(report.Map.Suballocations) == 0 {
		t.Error("map missing suballocations")
	}
	assertContains(t, report.Dumps["b"], []string{"00000020  7e 7e 7e 7e 7e 7e 7e 7e", "|~~~~~~~~|"})
}

func TestUsageBar(t *testing.T) {
	noColor = true
	subs := []inspect.Suballocation{
		{Offset: 0, Size: 25, Type: inspect.TypeUsed},
		{Offset: 25, Size: 50, Type: inspect.TypeFree},
		{Offset: 75, Size: 1, Type: inspect.TypeUsed},
		{Offset: 76, Size: 24, Type: inspect.TypeFree},
	}
	if got, want := usageBar(subs, 100, 4), "█░░█"; got != want {
		t.Errorf("usageBar() = %q, want %q", got, want)
	}
	if got := usageBar(nil, 0, 4); got != "" {
		t.Errorf("usageBar() on empty payload = %q", got)
	}
}
