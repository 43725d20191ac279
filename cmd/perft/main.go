// Command perft drives the perft package from the command line: it
// searches a fixed position to each depth in a range and prints the node
// breakdown. It does not compare the counts against known-good values.
//
// Grounded on the teacher's zurichess/main.go (flag parsing, log setup);
// config loading and CLI flags are generalized per SPEC_FULL.md's ambient
// stack (BurntSushi/toml for file config, spf13/pflag for CLI flags,
// op/go-logging for structured diagnostics).
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/op/go-logging"
	"github.com/spf13/pflag"

	"github.com/corviid/bitchess/engine"
	"github.com/corviid/bitchess/eval"
	"github.com/corviid/bitchess/perft"
)

var log = logging.MustGetLogger("perft")

func init() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetBackend(backend)
}

// config is the file-based configuration (spec.md §5 ambient stack):
// everything here can also be set on the command line, which always wins
// over the config file.
type config struct {
	FEN      string `toml:"fen"`
	MinDepth int    `toml:"min_depth"`
	MaxDepth int    `toml:"max_depth"`
	HashMB   int    `toml:"hash_mb"`
}

func defaultConfig() config {
	return config{FEN: "startpos", MinDepth: 1, MaxDepth: 5, HashMB: engine.DefaultHashTableSizeMB}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

var knownPositions = map[string]string{
	"startpos": perft.StartPos,
	"kiwipete": perft.Kiwipete,
	"duplain":  perft.Duplain,
}

func main() {
	configPath := pflag.String("config", "", "path to a TOML config file")
	fen := pflag.String("fen", "", "position to search (FEN, or one of startpos/kiwipete/duplain)")
	minDepth := pflag.Int("min-depth", 0, "minimum depth to search (inclusive)")
	maxDepth := pflag.Int("max-depth", 0, "maximum depth to search (inclusive)")
	depth := pflag.Int("depth", 0, "if set, search only this single depth")
	hashMB := pflag.Int("hash-mb", 0, "transposition table size in megabytes")
	useEval := pflag.Bool("eval", false, "run a fixed-depth alpha-beta search instead of perft")
	pflag.Parse()

	logging.SetFormatter(logging.MustStringFormatter(`%{level:.4s} %{message}`))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *fen != "" {
		cfg.FEN = *fen
	}
	if *minDepth != 0 {
		cfg.MinDepth = *minDepth
	}
	if *maxDepth != 0 {
		cfg.MaxDepth = *maxDepth
	}
	if *depth != 0 {
		cfg.MinDepth, cfg.MaxDepth = *depth, *depth
	}
	if *hashMB != 0 {
		cfg.HashMB = *hashMB
	}

	fenStr := cfg.FEN
	if known, ok := knownPositions[cfg.FEN]; ok {
		fenStr = known
	}

	log.Infof("searching FEN %q", fenStr)
	pos, err := engine.PositionFromFEN(fenStr)
	if err != nil {
		log.Fatalf("parsing --fen: %v", err)
	}

	if *useEval {
		runSearch(pos, cfg)
		return
	}
	runPerft(pos, cfg)
}

func runPerft(pos *engine.Position, cfg config) {
	fmt.Printf("depth        nodes   captures enpassant  castles promotions   elapsed\n")
	for d := cfg.MinDepth; d <= cfg.MaxDepth; d++ {
		start := time.Now()
		c := perft.Count(pos, d)
		elapsed := time.Since(start)
		fmt.Printf("%5d %12d %10d %9d %8d %10d %9s\n",
			d, c.Nodes, c.Captures, c.EnPassant, c.Castles, c.Promotions, elapsed)
	}
}

func runSearch(pos *engine.Position, cfg config) {
	si := &engine.SearchInfo{
		MaxDepth: cfg.MaxDepth,
		HashMB:   cfg.HashMB,
		Eval:     eval.Evaluate,
		Log:      searchLogger{},
	}
	move, score := engine.Search(pos, si)
	fmt.Printf("bestmove %s score %d\n", move, score)
}

// searchLogger renders engine.Stats through the package logger, grounded
// on the teacher's PV-printing Logger but with UCI "info" formatting
// dropped since this driver is not a UCI engine.
type searchLogger struct{}

func (searchLogger) BeginSearch() {}
func (searchLogger) EndSearch()   {}
func (searchLogger) PrintPV(s engine.Stats) {
	log.Infof("depth %d score %d nodes %d elapsed %s pv %v", s.Depth, s.Score, s.Nodes, s.Elapsed, s.PV)
}
