// Command formkit-check validates forms of a saved HTML page against a rule
// file, and publishes rule files to Redis for formkit-server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/dom"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/redis"
	"github.com/dmitrymomot/formkit/pkg/rulesource"
	"github.com/dmitrymomot/formkit/pkg/ruleset"
)

// Exit codes.
const (
	exitOK      = 0
	exitError   = 1
	exitInvalid = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return exitError
	}
	switch args[0] {
	case "check":
		return check(ctx, args[1:], stdout, stderr)
	case "publish":
		return publish(ctx, args[1:], stdout, stderr)
	default:
		printUsage(stderr)
		return exitError
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: formkit-check <command> [flags]

Commands:
  check -page <file.html> -rules <rules.yaml> -form <selector> [-variant <name>] [-out <file.html>]
        Validate the form as saved in the page. Prints failing fields.
        Exit status 2 when fields are invalid.
  publish -key <name> [-ttl <duration>] <rules.yaml>
        Decode a rule file and store it in Redis under the key.
        Redis is configured with FORMKIT_REDIS_* variables.
`)
}

func check(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	pagePath := fs.String("page", "", "HTML page")
	rulesPath := fs.String("rules", "", "rule file (YAML)")
	selector := fs.String("form", "", "form selector, e.g. #main-form")
	variant := fs.String("variant", "", "variant to validate; empty for single forms")
	out := fs.String("out", "", "write the marked up page here")
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *pagePath == "" || *rulesPath == "" || *selector == "" {
		fmt.Fprintln(stderr, "check requires -page, -rules and -form")
		return exitError
	}

	spec, err := loadRules(*rulesPath)
	if err != nil {
		fmt.Fprintln(stderr, "rules:", err)
		return exitError
	}
	f, err := os.Open(*pagePath)
	if err != nil {
		fmt.Fprintln(stderr, "page:", err)
		return exitError
	}
	doc, err := dom.Parse(f)
	f.Close()
	if err != nil {
		fmt.Fprintln(stderr, "page:", err)
		return exitError
	}

	p, err := formkit.New(doc, *selector, spec, formkit.WithLogger(logger.Discard()),
		formkit.WithErrorSink(formkit.ErrorSinkFunc(func(_ context.Context, perr formkit.ProcessingError) {
			fmt.Fprintln(stderr, perr.Error())
		})),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	outcome, runErr := p.Validate(ctx, *variant)
	for _, name := range outcome.FailedFields() {
		fmt.Fprintln(stdout, name)
	}

	if *out != "" {
		if err := writePage(*out, doc); err != nil {
			fmt.Fprintln(stderr, "out:", err)
			return exitError
		}
	}

	switch {
	case runErr != nil:
		return exitError
	case !outcome.Valid():
		return exitInvalid
	default:
		return exitOK
	}
}

func publish(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("publish", flag.ContinueOnError)
	fs.SetOutput(stderr)
	key := fs.String("key", "", "rule key, usually the form name")
	ttl := fs.Duration("ttl", 0, "expiry; zero keeps the rules forever")
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "publish requires exactly one rule file")
		return exitError
	}
	if err := rulesource.CheckKey(*key); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	if _, err := ruleset.Decode(data); err != nil {
		fmt.Fprintln(stderr, "rules:", err)
		return exitError
	}

	cfg, err := config.Load[redis.Config](config.WithPrefix("FORMKIT_"))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	defer client.Close()

	if err := redis.NewStore(client, cfg.KeyPrefix).Set(ctx, *key, data, *ttl); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	fmt.Fprintf(stdout, "published %s%s\n", cfg.KeyPrefix, *key)
	return exitOK
}

func loadRules(path string) (ruleset.Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ruleset.DecodeReader(f)
}

func writePage(path string, doc *dom.HTMLDocument) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()
	return doc.Render(f)
}
