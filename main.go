package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gravitational/uitest/driver"
	"github.com/gravitational/uitest/driver/selenium"
	"github.com/gravitational/uitest/lib/db"
	"github.com/gravitational/uitest/lib/debug"
	"github.com/gravitational/uitest/lib/defaults"
	"github.com/gravitational/uitest/lib/ui"
	"github.com/gravitational/uitest/lib/xlog"

	"github.com/dustin/go-humanize"
	"github.com/gravitational/configure/cstrings"
	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Error(trace.DebugReport(err))
		fmt.Fprintln(os.Stderr, trace.UserMessage(err))
		os.Exit(255)
	}
}

func run() error {
	args, extraArgs := cstrings.SplitAt(os.Args, "--")
	if len(extraArgs) != 0 && extraArgs[0] == "--" {
		extraArgs = extraArgs[1:]
	}

	var (
		app        = kingpin.New("uitest", "Browser and database helpers for UI tests. Browser flags follow \"--\".")
		debugMode  = app.Flag("debug", "enable debug logging").Bool()
		dumpStacks = app.Flag("dump-stacks", "dump goroutine stacks on first interrupt, exit on second").Bool()
		pprofAddr  = app.Flag("pprof-addr", "serve profiling endpoint on this address").String()
		configPath = app.Flag("config", "path to JSON or YAML configuration file").Envar("ROBO_CONFIG_FILE").String()

		copen        = app.Command("open", "open a page and print its title")
		copenURL     = copen.Arg("url", "page address").Required().String()
		copenWaitFor = copen.Flag("wait-for", "CSS selector of an element to wait for").String()

		cscreenshot        = app.Command("screenshot", "capture a screenshot of a page")
		cscreenshotURL     = cscreenshot.Arg("url", "page address").Required().String()
		cscreenshotPath    = cscreenshot.Arg("path", "output PNG file").Required().String()
		cscreenshotWaitFor = cscreenshot.Flag("wait-for", "CSS selector of an element to wait for").String()

		cquery       = app.Command("query", "run a query and print the rows as YAML")
		cquerySQL    = cquery.Arg("sql", "query").Required().String()
		cqueryParams = cquery.Arg("params", "positional query parameters").Strings()

		cexec       = app.Command("exec", "execute a statement and print the number of affected rows")
		cexecSQL    = cexec.Arg("sql", "statement").Required().String()
		cexecParams = cexec.Arg("params", "positional statement parameters").Strings()
	)

	cmd, err := app.Parse(args[1:])
	if err != nil {
		return trace.Wrap(err)
	}

	level := log.InfoLevel
	if *debugMode {
		level = log.DebugLevel
	}
	xlog.Init(level)

	if *pprofAddr != "" {
		debug.StartProfiling(*pprofAddr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if *dumpStacks {
		go debug.DumpLoop(ctx, cancel, os.Stderr)
	} else {
		go cancelOnInterrupt(ctx, cancel)
	}

	config, err := newFileConfig(*configPath)
	if err != nil {
		return trace.Wrap(err)
	}

	switch cmd {
	case copen.FullCommand():
		return withPage(ctx, config.Browser, extraArgs, func(page *ui.Page) error {
			if err := load(page, *copenURL, *copenWaitFor); err != nil {
				return trace.Wrap(err)
			}
			title, err := page.Title()
			if err != nil {
				return trace.Wrap(err)
			}
			url, err := page.CurrentURL()
			if err != nil {
				return trace.Wrap(err)
			}
			fmt.Printf("%v\n%v\n", title, url)
			return nil
		})
	case cscreenshot.FullCommand():
		return withPage(ctx, config.Browser, extraArgs, func(page *ui.Page) error {
			if err := load(page, *cscreenshotURL, *cscreenshotWaitFor); err != nil {
				return trace.Wrap(err)
			}
			return trace.Wrap(page.TakeScreenshot(*cscreenshotPath))
		})
	case cquery.FullCommand():
		result, err := db.QueryWith(ctx, config.Database, *cquerySQL, params(*cqueryParams)...)
		if err != nil {
			return trace.Wrap(err)
		}
		return trace.Wrap(printRows(os.Stdout, result))
	case cexec.FullCommand():
		affected, err := db.UpdateWith(ctx, config.Database, *cexecSQL, params(*cexecParams)...)
		if err != nil {
			return trace.Wrap(err)
		}
		fmt.Printf("%v rows affected\n", humanize.Comma(affected))
	}

	return nil
}

// withPage runs fn with a page over a new browser session.
// Browser flags in args take precedence over the configuration
func withPage(ctx context.Context, base selenium.Config, args []string, fn func(*ui.Page) error) error {
	config, err := selenium.ParseArgsWithBase(args, base)
	if err != nil {
		return trace.Wrap(err)
	}
	session, err := driver.Init(*config)
	if err != nil {
		return trace.Wrap(err)
	}
	defer func() {
		if err := driver.Quit(); err != nil {
			log.WithError(err).Warn("Failed to quit browser session.")
		}
	}()
	return fn(ui.New(session).WithContext(ctx))
}

func load(page *ui.Page, url, waitFor string) error {
	if err := page.Open(url); err != nil {
		return trace.Wrap(err)
	}
	if !page.WaitForPageLoad(defaults.PageLoadTimeout) {
		log.Warnf("Page %v did not finish loading in %v.", url, defaults.PageLoadTimeout)
	}
	if waitFor == "" {
		return nil
	}
	_, err := page.WaitForVisibility(ui.ByCSS(waitFor))
	return trace.Wrap(err)
}

// printRows writes the rows as a YAML list preserving column order
func printRows(w io.Writer, result db.QueryResult) error {
	rows := make([]yaml.MapSlice, 0, len(result))
	for _, row := range result {
		var item yaml.MapSlice
		for i, column := range row.Columns() {
			value := row.Values()[i]
			if b, ok := value.([]byte); ok {
				value = fmt.Sprintf("%x", b)
			}
			item = append(item, yaml.MapItem{Key: column, Value: value})
		}
		rows = append(rows, item)
	}
	out, err := yaml.Marshal(rows)
	if err != nil {
		return trace.Wrap(err)
	}
	if _, err := w.Write(out); err != nil {
		return trace.ConvertSystemError(err)
	}
	_, err = fmt.Fprintf(w, "# %v rows\n", humanize.Comma(int64(len(result))))
	return trace.ConvertSystemError(err)
}

func params(values []string) []interface{} {
	result := make([]interface{}, 0, len(values))
	for _, value := range values {
		result = append(result, value)
	}
	return result
}

func cancelOnInterrupt(ctx context.Context, cancel context.CancelFunc) {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)
	select {
	case <-interrupt:
		log.Info("Interrupted.")
		cancel()
	case <-ctx.Done():
	}
}
