package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/json-iterator/go"
	"github.com/op/go-logging"

	"github.com/woozymasta/lzw"
)

const progName = "zcompress"

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
)

var log = logging.MustGetLogger(progName)

// Exit codes follow compress(1): 2 means some file was left uncompressed
// because compression would have made it larger.
const (
	exitOK        = 0
	exitError     = 1
	exitUnchanged = 2
)

const suffix = ".Z"

var errNotSmaller = errors.New("compressed output is not smaller")

type config struct {
	decompress bool
	toStdout   bool
	keep       bool
	force      bool
	verbose    bool
	jsonReport bool
	debug      bool
	noBlock    bool
	bits       int
	reset      string
}

// report is one -json line.
type report struct {
	Input  string    `json:"input"`
	Output string    `json:"output"`
	Mode   string    `json:"mode"`
	Stats  lzw.Stats `json:"stats"`
	Saved  float64   `json:"savings"`
}

type cli struct {
	cfg    config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cfg config
	var showVersion bool

	flags := flag.NewFlagSet(progName, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVar(&cfg.decompress, "d", false, "Decompress")
	flags.BoolVar(&cfg.toStdout, "c", false, "Write to standard output, keep input files")
	flags.BoolVar(&cfg.keep, "k", false, "Keep input files")
	flags.BoolVar(&cfg.force, "f", false, "Overwrite outputs and keep results that did not shrink")
	flags.BoolVar(&cfg.verbose, "v", false, "Print compression statistics")
	flags.BoolVar(&cfg.jsonReport, "json", false, "Print statistics as JSON lines on standard error")
	flags.BoolVar(&cfg.debug, "debug", false, "Log codec internals")
	flags.BoolVar(&cfg.noBlock, "C", false, "Disable block mode (no clear codes)")
	flags.IntVar(&cfg.bits, "b", lzw.DefaultBits, "Maximum code width, 9..16")
	flags.StringVar(&cfg.reset, "reset", "ratio", "Dictionary reset strategy: ratio, full, never")
	flags.BoolVar(&showVersion, "version", false, "Print version and exit")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] [file ...]\n\n", progName)
		fmt.Fprintf(stderr, "Compress files to .Z, or standard input to standard output.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}

		return exitError
	}

	if showVersion {
		fmt.Fprintf(stdout, "%s %s (commit %s)\n", progName, version, commit)

		return exitOK
	}

	startLogging(stderr, cfg.debug)

	c := &cli{cfg: cfg, stdin: stdin, stdout: stdout, stderr: stderr}
	if _, err := c.compressOptions(); err != nil {
		log.Errorf("%v", err)

		return exitError
	}

	if flags.NArg() == 0 {
		if err := c.filter(); err != nil {
			log.Errorf("%v", err)

			return exitError
		}

		return exitOK
	}

	status := exitOK
	for _, name := range flags.Args() {
		var err error
		if cfg.decompress {
			err = c.decompressFile(name)
		} else {
			err = c.compressFile(name)
		}

		switch {
		case err == nil:
		case errors.Is(err, errNotSmaller):
			log.Warningf("%s: %v, left unchanged", name, err)
			if status == exitOK {
				status = exitUnchanged
			}
		default:
			log.Errorf("%s: %v", name, err)
			status = exitError
		}
	}

	return status
}

func startLogging(w io.Writer, debug bool) {
	backend := logging.NewLogBackend(w, progName+": ", 0)
	formatter := logging.MustStringFormatter("%{level:-7s} %{module:-9s} | %{message}")
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.INFO, "")
	if debug {
		leveled.SetLevel(logging.DEBUG, "")
	}
	logging.SetBackend(leveled)
}

func (c *cli) compressOptions() (*lzw.CompressOptions, error) {
	opts := &lzw.CompressOptions{MaxBits: c.cfg.bits, BlockMode: !c.cfg.noBlock}

	switch c.cfg.reset {
	case "ratio":
		opts.Reset = lzw.RatioReset{}
	case "full":
		opts.Reset = lzw.ResetWhenFull{}
	case "never":
		opts.Reset = lzw.NeverReset{}
	default:
		return nil, fmt.Errorf("unknown reset strategy %q", c.cfg.reset)
	}

	if c.cfg.bits < lzw.MinBits || c.cfg.bits > lzw.MaxBits {
		return nil, fmt.Errorf("%w: -b %d", lzw.ErrInvalidMaxBits, c.cfg.bits)
	}

	return opts, nil
}

// filter processes standard input to standard output.
func (c *cli) filter() error {
	var (
		stats lzw.Stats
		err   error
	)

	if c.cfg.decompress {
		stats, err = c.decode(c.stdout, c.stdin)
	} else {
		stats, err = c.encode(c.stdout, c.stdin)
	}
	if err != nil {
		return err
	}

	c.printStats("-", "-", stats)

	return nil
}

func (c *cli) compressFile(name string) error {
	if strings.HasSuffix(name, suffix) {
		return fmt.Errorf("already has %s suffix", suffix)
	}

	return c.processFile(name, name+suffix, c.encode)
}

func (c *cli) decompressFile(name string) error {
	if !strings.HasSuffix(name, suffix) {
		name += suffix
	}

	return c.processFile(name, strings.TrimSuffix(name, suffix), c.decode)
}

// processFile runs codec from input to output. The input is removed on success
// unless -k or -c is given; a failed or rejected output is removed.
func (c *cli) processFile(input, output string, codec func(io.Writer, io.Reader) (lzw.Stats, error)) error {
	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return errors.New("not a regular file")
	}

	if c.cfg.toStdout {
		stats, err := codec(c.stdout, in)
		if err != nil {
			return err
		}
		c.printStats(input, "-", stats)

		return nil
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if c.cfg.force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	out, err := os.OpenFile(output, flags, info.Mode().Perm())
	if err != nil {
		return err
	}

	stats, err := codec(out, in)
	if err == nil {
		err = out.Chmod(info.Mode().Perm())
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err == nil && !c.cfg.decompress && !c.cfg.force && stats.Packed >= stats.Raw {
		err = errNotSmaller
	}
	if err != nil {
		_ = os.Remove(output)

		return err
	}

	log.Debugf("%s -> %s: %d codes, %d clears, final width %d", input, output, stats.Codes, stats.Clears, stats.Width)
	c.printStats(input, output, stats)

	if c.cfg.keep {
		return nil
	}

	return os.Remove(input)
}

func (c *cli) encode(dst io.Writer, src io.Reader) (lzw.Stats, error) {
	opts, err := c.compressOptions()
	if err != nil {
		return lzw.Stats{}, err
	}

	zw, err := lzw.NewWriter(dst, opts)
	if err != nil {
		return lzw.Stats{}, err
	}

	if _, err := io.Copy(zw, src); err != nil {
		_ = zw.Close()

		return zw.Stats(), err
	}

	err = zw.Close()

	return zw.Stats(), err
}

func (c *cli) decode(dst io.Writer, src io.Reader) (lzw.Stats, error) {
	zr, err := lzw.NewReader(src, nil)
	if err != nil {
		return lzw.Stats{}, err
	}
	defer zr.Close()

	_, err = io.Copy(dst, zr)

	return zr.Stats(), err
}

func (c *cli) printStats(input, output string, stats lzw.Stats) {
	if c.cfg.verbose {
		switch {
		case output == "-":
			fmt.Fprintf(c.stderr, "%s: Compression: %.2f%%\n", input, stats.Savings())
		case c.cfg.keep:
			fmt.Fprintf(c.stderr, "%s: Compression: %.2f%% -- created %s\n", input, stats.Savings(), output)
		default:
			fmt.Fprintf(c.stderr, "%s: Compression: %.2f%% -- replaced with %s\n", input, stats.Savings(), output)
		}
	}

	if !c.cfg.jsonReport {
		return
	}

	mode := "compress"
	if c.cfg.decompress {
		mode = "decompress"
	}

	stream := json.ConfigDefault.BorrowStream(c.stderr)
	stream.WriteVal(report{Input: input, Output: output, Mode: mode, Stats: stats, Saved: stats.Savings()})
	stream.WriteRaw("\n")
	if err := stream.Flush(); err != nil {
		log.Warningf("json report: %v", err)
	}
	json.ConfigDefault.ReturnStream(stream)
}
