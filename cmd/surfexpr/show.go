package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/midbel/cli"

	"github.com/zephyrtronium/surfexpr"
)

var tokensCmd = cli.Command{
	Name:    "tokens",
	Alias:   []string{"lex"},
	Summary: "print the tokens of an expression",
	Handler: &TokensCmd{},
}

var treeCmd = cli.Command{
	Name:    "tree",
	Alias:   []string{"parse"},
	Summary: "print the parsed form of an expression",
	Handler: &TreeCmd{},
}

type TokensCmd struct{}

func (c *TokensCmd) Run(args []string) error {
	set := cli.NewFlagSet("tokens")
	if err := set.Parse(args); err != nil {
		return err
	}
	src, err := expression(set.Args())
	if err != nil {
		return err
	}
	toks, err := surfexpr.Tokenize(src)
	if err != nil {
		return explain(src, err)
	}
	for _, tok := range toks {
		fmt.Fprintf(os.Stdout, "%-4d %-10s %s\n", tok.Pos(), tok.Kind(), tok.Text())
	}
	return nil
}

type TreeCmd struct{}

func (c *TreeCmd) Run(args []string) error {
	set := cli.NewFlagSet("tree")
	if err := set.Parse(args); err != nil {
		return err
	}
	src, err := expression(set.Args())
	if err != nil {
		return err
	}
	e, err := surfexpr.Compile(src)
	if err != nil {
		return explain(src, err)
	}
	fmt.Fprintln(os.Stdout, e)
	if vars := e.Vars(); len(vars) > 0 {
		fmt.Fprintln(os.Stdout, "uses", strings.Join(vars, ", "))
	}
	return nil
}
