// Command ott runs the three-band upward/downward compressor on WAV files,
// plays them through it in real time and inspects its parameters and
// crossover response.
package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-ott/internal/cli"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	LogLevel string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`

	Render   RenderCmd   `cmd:"" help:"Process a WAV file offline."`
	Play     PlayCmd     `cmd:"" help:"Play a WAV file through the processor with live meters."`
	Params   ParamsCmd   `cmd:"" help:"List parameters or print a preset."`
	Response ResponseCmd `cmd:"" help:"Measure the band-sum frequency response."`
	Version  VersionCmd  `cmd:"" help:"Show version and SIMD features."`
}

func main() {
	var args CLI
	ctx := kong.Parse(&args,
		kong.Name("ott"),
		kong.Description("Three-band upward/downward compressor"),
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter("ott")),
	)

	logger, err := newLogger(os.Stderr, args.LogLevel)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(2)
	}

	if err := ctx.Run(logger); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}
