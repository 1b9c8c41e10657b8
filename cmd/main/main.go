package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"match-service/internal/config"
	"match-service/internal/fileio"
	"match-service/internal/match/model"
	matchSvc "match-service/internal/match/service"
	serverhttp "match-service/server/http"
)

type pathList []string

func (p *pathList) String() string     { return strings.Join(*p, ",") }
func (p *pathList) Set(v string) error { *p = append(*p, v); return nil }

func main() {
	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		runtime.GOMAXPROCS(runtime.NumCPU())
	}

	var catalogs pathList
	flag.Var(&catalogs, "product", "catalog file, NDJSON/CSV/XLS/XLSX (repeatable)")
	flag.Var(&catalogs, "p", "shorthand for -product")
	output := flag.String("output", "", "output file (default stdout)")
	flag.StringVar(output, "o", "", "shorthand for -output")
	phrase := flag.Bool("phrase-check", false, "extra phrase-containment pass over ambiguous candidates")
	headerRow := flag.Int("header-row", 1, "header row for tabular inputs (1-based)")
	serve := flag.Bool("serve", false, "run the HTTP service instead of a batch pass")
	flag.Parse()

	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	if *serve {
		runServer(cfg, logger)
		return
	}

	if len(catalogs) == 0 || flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: match-service -p <catalog> [-p <catalog>...] [-o <path>] <listing file>...")
		os.Exit(2)
	}
	opt := model.Options{PhraseCheck: *phrase}
	if err := runBatch(catalogs, flag.Args(), *output, opt, *headerRow, logger); err != nil {
		logger.Error().Err(err).Msg("match failed")
		os.Exit(1)
	}
}

// runBatch — два этапа: весь каталог в индекс, затем прайсы в порядке
// аргументов. Ошибка каталога фатальна и случается до чтения прайсов.
func runBatch(catalogPaths, listingPaths []string, outPath string, opt model.Options, headerRow int, log zerolog.Logger) error {
	var products []model.Product
	for _, path := range catalogPaths {
		recs, err := readFile(path, headerRow)
		if err != nil {
			return err
		}
		ps, err := matchSvc.LoadProducts(recs, path)
		if err != nil {
			return err
		}
		products = append(products, ps...)
	}

	var listings []model.Listing
	for _, path := range listingPaths {
		recs, err := readFile(path, headerRow)
		if err != nil {
			return err
		}
		listings = append(listings, matchSvc.LoadListings(recs, path, log)...)
	}

	groups := matchSvc.Run(products, listings, opt)

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	for _, g := range groups {
		if err := enc.Encode(g); err != nil {
			return err
		}
	}

	matched := 0
	for _, g := range groups {
		matched += len(g.Listings)
	}
	log.Info().
		Int("products", len(products)).
		Int("listings", len(listings)).
		Int("groups", len(groups)).
		Int("matched", matched).
		Msg("done")
	return nil
}

func readFile(path string, headerRow int) ([]fileio.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return fileio.ReadRecords(f, path, headerRow)
}

func runServer(cfg config.Config, logger zerolog.Logger) {
	r := serverhttp.NewRouter(cfg, logger)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}
