package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/tuannm99/tupledesc/internal"
	"github.com/tuannm99/tupledesc/internal/catalog"
	"github.com/tuannm99/tupledesc/internal/sql/parser"
	"github.com/tuannm99/tupledesc/internal/sql/planner"
)

func main() {
	cfgPath := flag.String("config", "", "YAML config with log settings and catalog tables")
	flag.Parse()

	cfg := &internal.Config{AppName: "tupledesc"}
	cfg.Log.Level = "info"
	if *cfgPath != "" {
		c, err := internal.LoadConfig(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = c
	}

	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	slog.SetDefault(logger)

	cat := catalog.New()
	if err := cfg.Bootstrap(cat); err != nil {
		log.Fatalf("bootstrap catalog: %v", err)
	}
	slog.Info("catalog ready", "app", cfg.AppName, "tables", cat.Tables(), "layouts", cat.Layouts())

	stmts := flag.Args()
	if len(stmts) == 0 {
		stmts = readStatements(os.Stdin)
	}

	failed := 0
	for _, sql := range stmts {
		if err := run(os.Stdout, sql, cat); err != nil {
			slog.Error("statement failed", "sql", sql, "err", err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// readStatements returns one statement per non-empty line.
func readStatements(r io.Reader) []string {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	if err := sc.Err(); err != nil {
		slog.Error("read stdin", "err", err)
	}
	return out
}

func run(w io.Writer, sql string, cat *catalog.Catalog) error {
	stmt, err := parser.Parse(sql)
	if err != nil {
		return err
	}
	plan, err := planner.BuildPlan(stmt, cat)
	if err != nil {
		return err
	}
	if err := planner.Apply(plan, cat); err != nil {
		return err
	}

	d := plan.Desc()
	slog.Debug("planned", "plan", fmt.Sprintf("%T", plan), "fields", d.NumFields())
	_, err = fmt.Fprintf(w, "%s\tfields=%d size=%d hash=%016x\n", d, d.NumFields(), d.Size(), d.Hash())
	return err
}
