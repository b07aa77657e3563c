package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/goliatone/go-mxtheme"
)

type Globals struct {
	Config  string `short:"c" help:"YAML configuration file" type:"path"`
	EnvFile string `name:"env-file" help:"Optional .env file" default:".env"`

	out io.Writer
}

type RequestFlags struct {
	RequestLocale string `name:"request-locale" help:"Locale of the simulated request"`
	DefaultLocale bool   `name:"request-default" help:"Treat the request locale as the default"`
	ScriptRoot    string `name:"script-root" help:"Mount point of the simulated request"`
	Locale        string `help:"Explicit target locale; \"default\" forces the default locale"`
	Qualified     bool   `help:"Produce an absolute url"`
	NoRoot        bool   `name:"no-root" help:"Drop the mount root from the result"`
}

func (r RequestFlags) requestContext() context.Context {
	return mxtheme.WithRequest(context.Background(), mxtheme.Request{
		Locale:     r.RequestLocale,
		IsDefault:  r.DefaultLocale,
		ScriptRoot: r.ScriptRoot,
	})
}

type localizeCmd struct {
	RequestFlags
	URL string `arg:"" help:"Router generated url to localize"`
}

func (c *localizeCmd) Run(g *Globals) error {
	module, err := g.module()
	if err != nil {
		return err
	}
	out, err := module.URLs().Localize(c.requestContext(), c.URL, mxtheme.Options{
		Locale:    c.Locale,
		Qualified: c.Qualified,
		NoRoot:    c.NoRoot,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(g.out, out)
	return err
}

type buildCmd struct {
	RequestFlags
	Route  string            `arg:"" optional:"" help:"Named route (group.route) or literal path"`
	Params map[string]string `short:"p" name:"param" help:"Route parameter as key=value"`
}

func (c *buildCmd) Run(g *Globals) error {
	module, err := g.module()
	if err != nil {
		return err
	}

	params := mxtheme.Params{}
	for key, value := range c.Params {
		params[key] = value
	}
	if c.Locale != "" {
		params["locale"] = c.Locale
	}
	if c.Qualified {
		params["qualified"] = true
	}
	if c.NoRoot {
		params["__no_root"] = true
	}

	var args []string
	if route := strings.TrimSpace(c.Route); route != "" {
		args = []string{route}
	}
	out, err := module.URLs().Build(c.requestContext(), args, params)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(g.out, out)
	return err
}

type cli struct {
	Globals

	Localize localizeCmd `cmd:"" help:"Localize an already built url"`
	Build    buildCmd    `cmd:"" help:"Build and localize a url from a route"`
}

func (g *Globals) module() (*mxtheme.Module, error) {
	cfg, err := mxtheme.LoadConfig(mxtheme.LoadOptions{Path: g.Config, DotEnv: g.EnvFile})
	if err != nil {
		return nil, err
	}
	return mxtheme.New(cfg)
}

func run(args []string, stdout, stderr io.Writer) error {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("mxtheme"),
		kong.Description("Build and localize portal urls from the command line."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	c.out = stdout
	return ctx.Run(&c.Globals)
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "mxtheme:", err)
		os.Exit(1)
	}
}
