// Command cyphercore is an interactive Cypher shell over an in-memory
// graph: a banner, a REPL loop, a handful of slash-free commands, and
// one query path that reports timing and a column-aligned result table.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lattixdb/cyphercore/pkg/config"
	"github.com/lattixdb/cyphercore/pkg/graphmodel"
	"github.com/lattixdb/cyphercore/pkg/logging"
	"github.com/lattixdb/cyphercore/pkg/metrics"
	"github.com/lattixdb/cyphercore/pkg/runner"
)

type shell struct {
	run     *runner.Runner
	scanner *bufio.Scanner
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults are used if omitted or missing)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging.Level)
	reg := metrics.New(cfg.Metrics.Namespace)

	r := runner.New(graphmodel.NewMemoryModel()).
		WithLogger(logger).
		WithMetrics(reg).
		WithMaxHops(cfg.MaxHops).
		WithQueryTimeout(cfg.QueryTimeout).
		WithMaxCachedStatements(cfg.MaxCachedStatements)

	printBanner()
	fmt.Println("Type a Cypher query, 'stats' for query statistics, 'help' for commands, 'exit' to quit.")
	fmt.Println()

	sh := &shell{run: r, scanner: bufio.NewScanner(os.Stdin)}
	sh.loop()
}

func printBanner() {
	fmt.Println(`
   ____           _
  / ___|  _ __   | |__     ___   _ __
 | |     | '_ \  | '_ \   / _ \ | '__|
 | |___  | |_) | | | | | |  __/ | |
  \____| | .__/  |_| |_|  \___| |_|
         |_|          cyphercore shell`)
}

func (sh *shell) loop() {
	for {
		fmt.Print("cyphercore> ")
		if !sh.scanner.Scan() {
			break
		}
		input := strings.TrimSpace(sh.scanner.Text())
		if input == "" {
			continue
		}
		switch strings.ToLower(input) {
		case "exit", "quit":
			return
		case "help":
			sh.showHelp()
		case "stats":
			sh.showStats()
		default:
			sh.executeQuery(input)
		}
		fmt.Println()
	}
}

func (sh *shell) showHelp() {
	fmt.Println(`Commands:
  <cypher query>   run a query, e.g. MATCH (n:Person) RETURN n.name
  EXPLAIN <query>  show the compiled operator tree without running it
  PROFILE <query>  run the query and report timing alongside results
  stats            show the most frequently run queries this session
  help             show this message
  exit             quit`)
}

func (sh *shell) showStats() {
	top := sh.run.TopQueries(10)
	if len(top) == 0 {
		fmt.Println("no queries recorded yet")
		return
	}
	for _, s := range top {
		fmt.Printf("%-6d %-10v %v\n", s.ExecutionCount, s.AvgDuration, s.QueryText)
	}
}

func (sh *shell) executeQuery(queryText string) {
	res, err := sh.run.Run(context.Background(), queryText, nil)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	if res.Explain != "" {
		fmt.Print(res.Explain)
		return
	}

	fmt.Printf("%d row(s) in %v\n", res.Count(), res.Elapsed)
	for _, p := range res.Profile {
		fmt.Printf("  %s  rows=%d  %v\n", p.Name, p.RowsOut, p.Duration)
	}
	if len(res.Columns) == 0 {
		return
	}

	for _, col := range res.Columns {
		fmt.Printf("%-20s", col)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", 20*len(res.Columns)))
	for _, row := range res.Rows {
		for i := range res.Columns {
			fmt.Printf("%-20s", row.At(i).String())
		}
		fmt.Println()
	}
}
