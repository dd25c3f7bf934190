package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/midbel/cli"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/surfexpr"
)

var errFail = errors.New("fail")

var (
	summary = "surfexpr compiles and evaluates surface height expressions"
	help    = `expressions use x, z, and t with the operators ^ * / + - and the functions
` + strings.Join(surfexpr.Keywords(), " ")
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	var (
		set     = cli.NewFlagSet("surfexpr")
		root    = prepare()
		verbose bool
	)
	set.BoolVar(&verbose, "v", false, "log debug messages")
	root.SetSummary(summary)
	root.SetHelp(help)
	if err := set.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root.Help()
			os.Exit(2)
		}
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger = logger.Level(level)
	err := root.Execute(set.Args())
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func prepare() *cli.CommandTrie {
	root := cli.New()
	root.Register([]string{"tokens"}, &tokensCmd)
	root.Register([]string{"tree"}, &treeCmd)
	root.Register([]string{"eval"}, &evalCmd)
	root.Register([]string{"sample"}, &sampleCmd)
	return root
}

// expression joins command line arguments into one expression, so that
// "surfexpr eval x + z" needs no quotes.
func expression(args []string) (string, error) {
	src := strings.Join(args, " ")
	if strings.TrimSpace(src) == "" {
		return "", errors.New("no expression given")
	}
	return src, nil
}

// explain prints the source with a caret under the column of an input error.
func explain(src string, err error) error {
	var ie surfexpr.InputError
	if !errors.As(err, &ie) || ie.Pos() < 1 {
		return err
	}
	fmt.Fprintln(os.Stderr, src)
	fmt.Fprintln(os.Stderr, strings.Repeat(" ", ie.Pos()-1)+"^")
	return err
}
