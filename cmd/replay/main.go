// Command replay loads a §4.13 replay file, drives a fresh engine through
// its recorded actions, and prints a summary table of the result.
// Grounded on zintix-labs-problab/sim.go's CLI-adjacent simulation driver:
// a progress bar over a bounded unit of work (there, spins; here, replay
// steps) followed by a fixed-width summary table (stats/stat.go's
// fmtTable, built on go-runewidth for correct column alignment against
// any CJK player names the replay carries).
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/klauspost/compress/zstd"
	"github.com/mattn/go-runewidth"

	"mahjong/evaluator"
	"mahjong/logging"
	"mahjong/replay"
)

func main() {
	path := flag.String("file", "", "path to a replay file (.jsonl or .jsonl.zst)")
	strict := flag.Bool("strict", false, "fail the run on the first Error event")
	maxSteps := flag.Int("max-steps", 0, "override the runner's step-limit guard (0 = len(events))")
	quiet := flag.Bool("quiet", false, "suppress the progress bar")
	flag.Parse()

	if *path == "" {
		logging.Fatal("replay: -file is required")
	}

	data, err := readReplayFile(*path)
	if err != nil {
		logging.Fatal("replay: %v", err)
	}

	input, err := replay.Load(bytes.NewReader(data))
	if err != nil {
		logging.Fatal("replay: load: %v", err)
	}

	// Run drives the whole recorded sequence in one call with no per-step
	// hook, so the bar can't tick incrementally; it still gives a "work is
	// happening" signal for a large replay's otherwise-silent latency and
	// then jumps straight to completion.
	bar := pb.StartNew(len(input.Events))
	if *quiet {
		bar.SetWriter(io.Discard)
	}

	result, err := replay.Run(input, evaluator.Reference{}, replay.RunnerOptions{
		Strict:   *strict,
		MaxSteps: *maxSteps,
	})
	bar.SetCurrent(int64(len(input.Events)))
	bar.Finish()

	if err != nil {
		logging.Fatal("replay: run failed: %v", err)
	}

	fmt.Print(summaryTable(input, result))
}

func readReplayFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer zr.Close()
		return io.ReadAll(zr)
	}
	return io.ReadAll(f)
}

func summaryTable(input *replay.ReplayInput, result *replay.RunResult) string {
	keys := []string{"Seed", "RNG Version", "Players", "Steps Played", "Dealer Seat", "Round Number", "Honba"}
	msg := map[string]string{
		"Seed":         input.SeedHex,
		"RNG Version":  input.RNGVersion,
		"Players":      strings.Join(input.Names[:], ", "),
		"Steps Played": fmt.Sprintf("%d", result.StepsPlayed),
		"Dealer Seat":  fmt.Sprintf("%d", result.FinalState.Round.DealerSeat),
		"Round Number": fmt.Sprintf("%d", result.FinalState.RoundNumber),
		"Honba":        fmt.Sprintf("%d", result.FinalState.HonbaSticks),
	}
	return fmtTable("replay result", keys, msg)
}

// fmtTable renders a fixed-width key/value box, adapted from
// zintix-labs-problab/stats/stat.go's fmtTable for this CLI's summary.
func fmtTable(title string, keys []string, msg map[string]string) string {
	maxKeyLen, maxValLen := 0, 0
	for _, k := range keys {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(msg[k]); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var b strings.Builder
	b.WriteString(top)
	fmt.Fprintf(&b, "|%s%s%s|\n", blank(left), title, blank(right))
	b.WriteString(divider)
	for _, k := range keys {
		fmt.Fprintf(&b, "| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])))
	}
	b.WriteString(divider)
	return b.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
