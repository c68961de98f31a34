package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/kheap/heap"
	"github.com/joshuapare/kheap/heap/arena"
	"github.com/joshuapare/kheap/heap/inspect"
)

var (
	runMap   bool
	runDumps []string
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().BoolVar(&runMap, "map", false, "Print the detailed JSON block map")
	cmd.Flags().StringArrayVar(&runDumps, "dump", nil, "Hexdump the named block (repeatable)")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Replay an allocation script",
		Long: `The run command maps a fresh region, builds an allocator over it and
replays the allocation script line by line, reporting where every block lands.

Script lines:
  alloc NAME SIZE [ALIGN] [zero]
  free NAME
  resize NAME SIZE [ALIGN]
  fill NAME BYTE

Example:
  heapctl run frag.heap
  heapctl run frag.heap --size 65536 --map
  heapctl run frag.heap --dump hdr --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(args)
		},
	}
	return cmd
}

// runReport is the JSON form of a run.
type runReport struct {
	Script     string            `json:"script"`
	Operations []opResult        `json:"operations"`
	Failures   int               `json:"failures"`
	Stats      arena.Stats       `json:"stats"`
	Map        json.RawMessage   `json:"map,omitempty"`
	Dumps      map[string]string `json:"dumps,omitempty"`
}

func runScript(args []string) error {
	path := args[0]

	printVerbose("Reading script: %s\n", path)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	ops, err := parseScript(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	h := heap.New(&arena.Config{ReserveBytes: reserveBytes})
	release, err := h.InitMapped(heapSize)
	if err != nil {
		return fmt.Errorf("failed to initialize heap: %w", err)
	}
	defer release()

	s := newSession(h)
	report := runReport{Script: path}
	for _, o := range ops {
		res, err := s.exec(o)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !res.OK {
			report.Failures++
		}
		report.Operations = append(report.Operations, res)
	}
	report.Stats, _ = h.Stats()

	if len(runDumps) > 0 {
		report.Dumps = make(map[string]string, len(runDumps))
		for _, name := range runDumps {
			data, off, err := s.contents(name)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := inspect.Hexdump(&buf, data, off); err != nil {
				return err
			}
			report.Dumps[name] = buf.String()
		}
	}

	if runMap {
		var mapErr error
		h.Inspect(func(a *arena.Arena) {
			report.Map, mapErr = inspect.Map(a)
		})
		if mapErr != nil {
			return fmt.Errorf("failed to build block map: %w", mapErr)
		}
	}

	if jsonOut {
		return printJSON(report)
	}

	var subs []inspect.Suballocation
	h.Inspect(func(a *arena.Arena) { subs = inspect.Suballocations(a) })
	printReport(report, subs)
	return nil
}
