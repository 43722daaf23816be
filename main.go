// xlogdump-go - parse and pretty-print PostgreSQL (8.2-9.2) WAL segment
// files.
//
// Usage:
//
//	xlogdump-go 000000010000000000000001
//	xlogdump-go -r Heap -n -h localhost -U postgres 000000010000000000000001
//	xlogdump-go -t 000000010000000000000001
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/chocapikk/xlogdump-go/xlogdump"
)

var segmentNamePattern = regexp.MustCompile(`^[0-9A-Fa-f]{24}$`)

func main() {
	var (
		rmname         string
		rmid           string
		xid            string
		transactions   bool
		statements     bool
		oid2name       bool
		hideTimestamps bool
		stats          bool
		outputJSON     bool
		outputCSV      bool
		verbose        bool
		host, port, user, password string
	)

	flag.StringVar(&rmname, "r", "", "only dump records from this resource manager")
	flag.StringVar(&rmname, "rmname", "", "")
	flag.StringVar(&rmid, "rmid", "", "only dump records from this resource manager, by numeric id (0-15)")
	flag.StringVar(&xid, "xid", "", "only dump records from this transaction id")
	flag.BoolVar(&transactions, "t", false, "dump transaction summaries instead of records")
	flag.BoolVar(&transactions, "transactions", false, "")
	flag.BoolVar(&statements, "s", false, "attempt to reconstruct SQL statements (requires -n)")
	flag.BoolVar(&statements, "statements", false, "")
	flag.BoolVar(&oid2name, "n", false, "resolve tablespace/database/relation OIDs to names")
	flag.BoolVar(&oid2name, "oid2name", false, "")
	flag.BoolVar(&hideTimestamps, "T", false, "hide timestamps in commit/abort records")
	flag.BoolVar(&hideTimestamps, "hide-timestamps", false, "")
	flag.BoolVar(&stats, "stats", false, "print per-resource-manager record and byte counts")
	flag.BoolVar(&outputJSON, "json", false, "render records as JSON instead of text")
	flag.BoolVar(&outputCSV, "csv", false, "render records as CSV instead of text")
	flag.BoolVar(&verbose, "v", false, "verbose diagnostic logging")
	flag.StringVar(&host, "h", "localhost", "")
	flag.StringVar(&host, "host", "localhost", "database host for -n")
	flag.StringVar(&port, "p", "5432", "")
	flag.StringVar(&port, "port", "5432", "database port for -n")
	flag.StringVar(&user, "U", os.Getenv("USER"), "")
	flag.StringVar(&user, "user", os.Getenv("USER"), "database user for -n")
	flag.StringVar(&password, "W", "", "database password for -n")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `xlogdump-go - parse and pretty-print PostgreSQL (8.2-9.2) WAL segments

Usage:
  %s [options] segmentfile [segmentfile ...]

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()
	xlogdump.SetVerbose(verbose)

	cfg := xlogdump.Config{
		RmName:         rmname,
		Transactions:   transactions,
		Statements:     statements,
		Oid2Name:       oid2name,
		HideTimestamps: hideTimestamps,
		Stats:          stats,
		JSON:           outputJSON,
		CSV:            outputCSV,
		Host:           host,
		Port:           port,
		User:           user,
		Password:       password,
	}
	if rmid != "" {
		n, err := strconv.ParseUint(rmid, 10, 8)
		if err != nil || n > xlogdump.RMMaxID {
			fmt.Fprintf(os.Stderr, "xlogdump-go: --rmid must be a number between 0 and %d\n", xlogdump.RMMaxID)
			os.Exit(1)
		}
		cfg.RmID = uint8(n)
		cfg.HasRmID = true
	}
	if xid != "" {
		n, err := strconv.ParseUint(xid, 10, 32)
		if err != nil {
			fmt.Fprintf(os.Stderr, "xlogdump-go: --xid must be a number\n")
			os.Exit(1)
		}
		cfg.Xid = uint32(n)
		cfg.HasXid = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "xlogdump-go: %v\n", err)
		os.Exit(1)
	}

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "xlogdump-go: at least one WAL segment file is required")
		flag.Usage()
		os.Exit(1)
	}

	var resolver xlogdump.NameResolver = xlogdump.NoopResolver{}
	if oid2name {
		r, err := xlogdump.NewLiveResolver(xlogdump.ResolverConfig{
			Host: host, Port: port, User: user, Password: password, Database: "postgres",
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "xlogdump-go: %v\n", err)
			os.Exit(1)
		}
		resolver = r
		defer resolver.Close()
	}

	driver := xlogdump.NewDriver(cfg, resolver)
	exitCode := 0
	for _, path := range files {
		if err := processFile(driver, cfg, path); err != nil {
			fmt.Fprintf(os.Stderr, "xlogdump-go: %s: %v\n", path, err)
			exitCode = 1
		}
	}

	if transactions {
		printTransactions(driver, cfg)
	}
	if stats {
		printStats(driver, cfg)
	}
	resolver.Close()
	os.Exit(exitCode)
}

func processFile(driver *xlogdump.Driver, cfg xlogdump.Config, path string) error {
	timeline, segID, segNo, err := parseSegmentName(filepath.Base(path))
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	src := xlogdump.NewFilePageSource(f)
	sess := xlogdump.NewSession(src, timeline, segID, segNo)

	var results []xlogdump.RecordResult
	err = driver.Run(sess, func(rr xlogdump.RecordResult) {
		if transactionsOnly(cfg) {
			return
		}
		results = append(results, rr)
	})
	if err != nil {
		return err
	}

	return emitRecords(cfg, results)
}

func transactionsOnly(cfg xlogdump.Config) bool { return cfg.Transactions }

func emitRecords(cfg xlogdump.Config, results []xlogdump.RecordResult) error {
	switch {
	case cfg.JSON:
		return xlogdump.WriteJSON(os.Stdout, results)
	case cfg.CSV:
		return xlogdump.WriteRecordsCSV(os.Stdout, results)
	default:
		for _, r := range results {
			fmt.Println(r.String())
		}
		return nil
	}
}

func printTransactions(driver *xlogdump.Driver, cfg xlogdump.Config) {
	txns := driver.Txns.Transactions()
	if cfg.JSON {
		xlogdump.WriteJSON(os.Stdout, txns)
		return
	}
	if cfg.CSV {
		xlogdump.WriteTransactionsCSV(os.Stdout, txns)
		return
	}
	for _, t := range txns {
		fmt.Println(xlogdump.TransactionResult(t).String())
	}
}

func printStats(driver *xlogdump.Driver, cfg xlogdump.Config) {
	sr := xlogdump.StatsResult{Rows: driver.Stats.Rows(), Total: driver.Stats.TotalRecords(), Ops: driver.Stats.OpCounts()}
	if cfg.JSON {
		xlogdump.WriteJSON(os.Stdout, sr)
		return
	}
	fmt.Print(sr.String())
}

// parseSegmentName parses a 24-hex-digit WAL segment file name into its
// timeline, log id and segment number, matching xlogdump.c's
// sscanf("%8x%8x%8x", ...).
func parseSegmentName(name string) (timeline, segID, segNo uint32, err error) {
	if !segmentNamePattern.MatchString(name) {
		return 0, 0, 0, fmt.Errorf("%q is not a 24-hex-digit WAL segment file name", name)
	}
	tl, err1 := strconv.ParseUint(name[0:8], 16, 32)
	id, err2 := strconv.ParseUint(name[8:16], 16, 32)
	seg, err3 := strconv.ParseUint(name[16:24], 16, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, fmt.Errorf("%q is not a valid WAL segment file name", name)
	}
	return uint32(tl), uint32(id), uint32(seg), nil
}
