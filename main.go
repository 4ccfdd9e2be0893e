package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/mcncl/univalue/internal/config"
	"github.com/mcncl/univalue/internal/errors"
	"github.com/mcncl/univalue/internal/logging"
)

// Version information
const (
	Version = "0.1.0"
)

// cli defines the command-line interface
type cli struct {
	Config    string `help:"Path to a config file. Defaults to the nearest .univalue.yml." short:"c" type:"path"`
	Debug     bool   `help:"Enable debug logging." short:"d"`
	LogFormat string `help:"Log output format." enum:"logfmt,json" default:"logfmt"`

	Fmt     FmtCmd     `cmd:"" help:"Parse a JSON document and write it back out."`
	Check   CheckCmd   `cmd:"" help:"Check that JSON documents parse and have a required shape."`
	Get     GetCmd     `cmd:"" help:"Print the value at a dotted path such as servers.0.name."`
	Stats   StatsCmd   `cmd:"" help:"Summarize the shape of a JSON document."`
	Test    TestCmd    `cmd:"" help:"Run a directory of pass*/fail* JSON fixtures through the reader."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// CLI holds the parsed command line
var CLI cli

// Context holds the runtime context shared by all commands
type Context struct {
	ConfigPath string
	Debug      bool
	LogFormat  string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// setup loads the configuration with the command's flag overrides applied
// and builds the logger.
func (c *Context) setup(overrides config.Overrides) (*config.Config, log.Logger, error) {
	configPath := c.ConfigPath
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	if c.Debug {
		debug := true
		overrides.Debug = &debug
	}

	cfg, err := config.LoadConfigWithCLI(configPath, overrides)
	if err != nil {
		return nil, nil, errors.NewConfigError(fmt.Sprintf("failed to load configuration from '%s'", configPath), err)
	}

	logger := logging.New(c.Stderr, c.LogFormat, cfg.Dev.Debug)
	if configPath != "" {
		level.Debug(logger).Log("msg", "loaded config file", "path", configPath)
	}
	return cfg, logger, nil
}

func newParser(target *cli, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("univalue"),
		kong.Description("Parse, check, query and reformat JSON documents"),
		kong.UsageOnError(),
	}, options...)
	return kong.New(target, options...)
}

func main() {
	parser, err := newParser(&CLI)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = ctx.Run(&Context{
		ConfigPath: CLI.Config,
		Debug:      CLI.Debug,
		LogFormat:  CLI.LogFormat,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	})
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}
