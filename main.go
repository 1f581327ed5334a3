/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
/*
	egg: a small interpreted expression language

	runs program files, inline programs (-c) and an interactive REPL
*/
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dc0d/onexit"
	"github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/launix-de/egg/config"
	"github.com/launix-de/egg/egg"
)

// workaround for flags package to allow multiple values
type arrayFlags []string

func (i *arrayFlags) String() string {
	return fmt.Sprint(*i)
}

func (i *arrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

// driver runs programs against one root scope. Every program gets its own
// child scope so that definitions do not leak from one file into the next.
type driver struct {
	ev        *egg.Evaluator
	top       *egg.Env
	out       io.Writer
	logger    *log.Logger
	maxSource int64
}

func newDriver(cfg *config.Config, out io.Writer, logger *log.Logger) (*driver, error) {
	maxSource, err := cfg.MaxSourceBytes()
	if err != nil {
		return nil, err
	}
	ev := egg.NewEvaluator()
	ev.MaxSteps = cfg.MaxSteps
	ev.MaxDepth = cfg.MaxDepth
	return &driver{
		ev:        ev,
		top:       egg.NewTopScope(out),
		out:       out,
		logger:    logger,
		maxSource: maxSource,
	}, nil
}

func (d *driver) readFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Errorf("file not found: %s", path)
		}
		return "", errors.Wrapf(err, "cannot open %s", path)
	}
	if d.maxSource > 0 && info.Size() > d.maxSource {
		return "", errors.Errorf("%s is %s, the limit is %s", path,
			units.HumanSize(float64(info.Size())), units.HumanSize(float64(d.maxSource)))
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "cannot read %s", path)
	}
	return string(src), nil
}

func (d *driver) runSource(name, src string) error {
	start := time.Now()
	result, err := d.ev.Run(src, egg.NewEnv(d.top))
	if err != nil {
		return errors.Wrap(err, name)
	}
	d.logger.Debug("program finished", "program", name, "result", egg.Serialize(result), "duration", time.Since(start))
	return nil
}

func (d *driver) runFile(path string) error {
	src, err := d.readFile(path)
	if err != nil {
		return err
	}
	return d.runSource(path, src)
}

// watch reruns the files whenever one of them changes until stop is closed.
func (d *driver) watch(paths []string, stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "cannot watch files")
	}
	defer watcher.Close()
	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			return errors.Wrapf(err, "cannot watch %s", path)
		}
	}
	for {
		select {
		case <-stop:
			return nil
		case werr := <-watcher.Errors:
			d.logger.Warn("watch error", "error", werr)
		case event := <-watcher.Events:
			// flush all other events
			for {
				time.Sleep(10 * time.Millisecond) // delay a bit, so we don't read empty files
				select {
				case <-watcher.Events:
					continue
				default:
				}
				break
			}
			d.logger.Info("reloading", "file", event.Name)
			for _, path := range paths {
				if err := d.runFile(path); err != nil {
					d.logger.Error(err.Error())
				}
				watcher.Add(path) // text editors rename, so we have to rewatch
			}
		}
	}
}

func main() {
	// init random generator for UUIDs
	uuid.SetRand(rand.Reader)

	// parse command line options
	var commands arrayFlags
	flag.Var(&commands, "c", "Execute egg program (repeatable)")
	var repl bool
	flag.BoolVar(&repl, "i", false, "Start the REPL after files and commands ran")
	flag.BoolVar(&repl, "repl", false, "Same as -i")
	watch := flag.Bool("watch", false, "Rerun the program files whenever they change")
	configFile := flag.String("config", "", "YAML configuration file")
	traceFile := flag.String("trace", "", "Write a chrome trace of all function calls into this file")
	docs := flag.String("docs", "", "Write Markdown documentation of all builtins into this folder and exit")
	maxSteps := flag.Int64("max-steps", -1, "Evaluation step budget per program, 0 = unlimited (default from config)")
	maxDepth := flag.Int("max-depth", -1, "Maximum nesting depth, 0 = unlimited (default from config)")
	maxSource := flag.String("max-source", "", "Largest accepted program file, e.g. 16MB (default from config)")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (default from config)")
	flag.Parse()
	files := flag.Args()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			fmt.Fprintln(os.Stderr, *configFile+":", err)
			os.Exit(1)
		}
	}
	if *maxSteps >= 0 {
		cfg.MaxSteps = *maxSteps
	}
	if *maxDepth >= 0 {
		cfg.MaxDepth = *maxDepth
	}
	if *maxSource != "" {
		cfg.MaxSource = *maxSource
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *traceFile != "" {
		cfg.Trace = *traceFile
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level, Prefix: "egg"})
	if cfg.NoColor {
		color.NoColor = true
	}

	if *docs != "" {
		if err := egg.WriteDocumentation(*docs); err != nil {
			logger.Fatal("cannot write documentation", "error", err)
		}
		logger.Info("documentation written", "folder", *docs)
		return
	}

	d, err := newDriver(cfg, os.Stdout, logger)
	if err != nil {
		logger.Fatal(err)
	}
	if cfg.Trace != "" {
		trace, err := egg.OpenTrace(cfg.Trace)
		if err != nil {
			logger.Fatal(err)
		}
		d.ev.Trace = trace
		onexit.Register(trace.Close) // close trace file on exit
	}
	// runs the registered exit handlers, then exits
	onexit.ForceExit(run(d, files, commands, repl, *watch, cfg))
}

func run(d *driver, files []string, commands []string, repl, watch bool, cfg *config.Config) int {
	// install exit handler
	stop := make(chan struct{})
	cancelChan := make(chan os.Signal, 1)
	signal.Notify(cancelChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-cancelChan
		if watch {
			close(stop)
			return
		}
		onexit.ForceExit(1)
	}()

	status := 0
	for _, file := range files {
		d.logger.Debug("loading", "file", file)
		if err := d.runFile(file); err != nil {
			d.logger.Error(err.Error())
			status = 1
			break
		}
	}
	for i, command := range commands {
		if status != 0 {
			break
		}
		d.logger.Debug("executing", "command", command)
		if err := d.runSource(fmt.Sprintf("command %d", i+1), command); err != nil {
			d.logger.Error(err.Error())
			status = 1
		}
	}

	if watch {
		if len(files) == 0 {
			d.logger.Error("-watch needs at least one program file")
			return 1
		}
		if err := d.watch(files, stop); err != nil {
			d.logger.Error(err.Error())
			return 1
		}
		return 0
	}

	if repl || (len(files) == 0 && len(commands) == 0) {
		// the REPL handles Ctrl-C itself
		signal.Reset(syscall.SIGINT)
		fmt.Fprintln(d.out, "egg REPL, type .help for help and .exit to leave")
		if err := egg.Repl(egg.NewEnv(d.top), d.ev, cfg.HistoryFile); err != nil {
			d.logger.Error(err.Error())
			return 1
		}
	}
	return status
}
