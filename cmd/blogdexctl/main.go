// Command blogdexctl queries local markdown content from the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	dbSQLite "github.com/wwwqqqzzz/blog-sub000/internal/db/sqlite"
	logpkg "github.com/wwwqqqzzz/blog-sub000/internal/logger"
	"github.com/wwwqqqzzz/blog-sub000/internal/repository/views"
	"github.com/wwwqqqzzz/blog-sub000/internal/version"
	blogdex "github.com/wwwqqqzzz/blog-sub000/pkg/sdk"
)

const defaultLimit = 10

var errUsage = errors.New("usage")

var commands = map[string]string{
	"search":  "search [-limit n] <query...>",
	"related": "related [-limit n] <link>",
	"popular": "popular [-limit n]",
	"series":  "series <name> [link]",
	"tags":    "tags",
}

func main() {
	styled := term.IsTerminal(int(os.Stdout.Fd()))
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, styled))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, styled bool) int {
	global := flag.NewFlagSet("blogdexctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	dirs := global.String("dir", "content/posts", "comma-separated markdown directories")
	viewsDB := global.String("views", "", "sqlite database holding view counts")
	plain := global.Bool("plain", false, "disable colors and styling")
	verbose := global.Bool("v", false, "log to stderr")
	showVersion := global.Bool("version", false, "print version and exit")
	global.Usage = func() { usage(stderr, global) }

	if err := global.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		_, _ = fmt.Fprintln(stdout, "blogdexctl", version.String())
		return 0
	}

	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return 2
	}
	cmd, cmdArgs := rest[0], rest[1:]
	if _, ok := commands[cmd]; !ok {
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		global.Usage()
		return 2
	}

	out := printer{w: stdout, styled: styled && !*plain}
	errOut := printer{w: stderr, styled: styled && !*plain}

	logger := zap.NewNop()
	if *verbose {
		l, err := logpkg.NewLogger("cli", "debug")
		if err != nil {
			errOut.fail(err)
			return 1
		}
		logger = l
		defer func() { _ = logger.Sync() }()
	}

	opts := []blogdex.Option{blogdex.WithLogger(logger)}
	if *viewsDB != "" {
		store, err := dbSQLite.Open(*viewsDB)
		if err != nil {
			errOut.fail(err)
			return 1
		}
		defer store.Close()
		opts = append(opts, blogdex.WithViews(views.New(store, views.DefaultKeyPrefix).WithLogger(logger)))
	}

	eng, err := blogdex.NewFromDirs(ctx, splitList(*dirs), opts...)
	if err != nil {
		errOut.fail(err)
		return 1
	}
	defer func() { _ = eng.Close() }()

	if err := dispatch(ctx, eng, out, cmd, cmdArgs); err != nil {
		if errors.Is(err, errUsage) {
			_, _ = fmt.Fprintf(stderr, "usage: blogdexctl [flags] %s\n", commands[cmd])
			return 2
		}
		errOut.fail(err)
		return 1
	}
	return 0
}

func dispatch(ctx context.Context, eng *blogdex.Engine, out printer, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	limit := fs.Int("limit", defaultLimit, "maximum number of results")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	args = fs.Args()

	switch cmd {
	case "search":
		if len(args) == 0 {
			return errUsage
		}
		query := strings.Join(args, " ")
		results, err := eng.Search(ctx, query, *limit)
		if err != nil {
			return err
		}
		out.searchResults(eng, query, results)

	case "related":
		if len(args) != 1 {
			return errUsage
		}
		ref, err := eng.Post(args[0])
		if err != nil {
			return err
		}
		items, err := eng.Related(ref.Link, *limit)
		if err != nil {
			return err
		}
		out.related(ref, items)

	case "popular":
		out.popular(eng.Popular(ctx, *limit))

	case "series":
		if len(args) == 0 || len(args) > 2 {
			return errUsage
		}
		c, ok := findCollection(eng.Collections(), args[0])
		if !ok {
			return fmt.Errorf("series %q: %w", args[0], blogdex.ErrNotFound)
		}
		current := ""
		if len(args) == 2 {
			current = args[1]
		}
		out.series(c, current)
		if current != "" {
			nav, ok := eng.Navigate(c.Name, current)
			if !ok {
				return fmt.Errorf("post %q in series %q: %w", current, c.Name, blogdex.ErrPostNotFound)
			}
			out.navigation(nav)
		}

	case "tags":
		out.tagList(eng.Tags())
	}
	return nil
}

func findCollection(cols []blogdex.Collection, name string) (blogdex.Collection, bool) {
	for _, c := range cols {
		if c.Name == name || c.ID == name {
			return c, true
		}
	}
	return blogdex.Collection{}, false
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func usage(w io.Writer, fs *flag.FlagSet) {
	_, _ = fmt.Fprintln(w, "usage: blogdexctl [flags] <command> [args]")
	_, _ = fmt.Fprintln(w, "\ncommands:")
	for _, name := range []string{"search", "related", "popular", "series", "tags"} {
		_, _ = fmt.Fprintf(w, "  %s\n", commands[name])
	}
	_, _ = fmt.Fprintln(w, "\nflags:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
