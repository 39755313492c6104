package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/posener/complete"
	"github.com/willabides/kongplete"

	"github.com/jac241/pview/cmd"
)

var cli struct {
	View  cmd.ViewCmd  `cmd:"" default:"withargs" help:"Open a Parquet file in the interactive viewer."`
	Serve cmd.ServeCmd `cmd:"" help:"Serve a Parquet file's rows over an HTTP API."`
}

func main() {
	parser := kong.Must(
		&cli,
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Description("Paginated viewer for Parquet files."),
	)
	kongplete.Complete(parser, kongplete.WithPredictor("file", complete.PredictFiles("*")))

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	ctx.FatalIfErrorf(ctx.Run())
}
