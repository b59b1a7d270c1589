// ABOUTME: Entry point for the swfsound extraction tool
// ABOUTME: Parses CLI flags and lists, extracts or plays SWF sounds
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Resonate-Protocol/swfsound/internal/version"
	"golang.org/x/sync/errgroup"
)

var (
	list        = flag.Bool("list", false, "List stream head and event sounds instead of extracting")
	play        = flag.Bool("play", false, "Play the first file's stream sound")
	outDir      = flag.String("out", ".", "Output directory for WAV files")
	seek        = flag.Uint("seek", 0, "Start at this sample frame of the stream sound")
	rate        = flag.Int("rate", 0, "Resample output to this rate in Hz (0 keeps the source rate)")
	sounds      = flag.Bool("sounds", false, "Also extract DefineSound event sounds")
	jobs        = flag.Int("jobs", 4, "Number of files processed concurrently")
	noTUI       = flag.Bool("no-tui", false, "Disable the playback TUI, use streaming logs instead")
	logFile     = flag.String("log-file", "", "Log file path while the playback TUI is shown (default: discard logs)")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file.swf...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	files := flag.Args()
	if len(files) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := validateFlags(*rate, *seek, *jobs); err != nil {
		log.Fatal(err)
	}

	opts := options{
		outDir: *outDir,
		seek:   uint32(*seek),
		rate:   *rate,
		sounds: *sounds,
		tui:    *play && !*noTUI,
	}

	if opts.tui {
		// TUI mode: log only to file
		var w io.Writer = io.Discard
		if *logFile != "" {
			f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
			if err != nil {
				log.Fatalf("error opening log file: %v", err)
			}
			defer func() { _ = f.Close() }()
			w = f
		}
		log.SetOutput(w)
	}

	// Handle shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case *list:
		for _, path := range files {
			if err := listFile(os.Stdout, path); err != nil {
				log.Printf("Error: %v", err)
			}
		}
	case *play:
		if len(files) > 1 {
			log.Printf("Playing %s, ignoring %d other files", files[0], len(files)-1)
		}
		if err := playFile(ctx, files[0], opts); err != nil {
			log.SetOutput(os.Stderr)
			log.Fatalf("Playback error: %v", err)
		}
	default:
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(*jobs)
		for _, path := range files {
			g.Go(func() error {
				return extractFile(gctx, path, opts)
			})
		}
		if err := g.Wait(); err != nil {
			log.Fatalf("Extraction failed: %v", err)
		}
		log.Printf("Extracted %d files to %s", len(files), opts.outDir)
	}
}

// validateFlags checks numeric flags against the ranges the decoders accept
func validateFlags(rate int, seek uint, jobs int) error {
	if rate < 0 || rate > 0xFFFF {
		return fmt.Errorf("invalid -rate %d (must be 0-65535)", rate)
	}
	if seek > 0xFFFFFFFF {
		return fmt.Errorf("invalid -seek %d", seek)
	}
	if jobs < 1 {
		return fmt.Errorf("invalid -jobs %d (must be at least 1)", jobs)
	}
	return nil
}
