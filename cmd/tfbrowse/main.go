// Command tfbrowse renders passages of Tischendorf's Greek New Testament
// as HTML. It prints plain and pretty renderings and source links, and
// exports standalone pages.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
)

const version = "0.1.0"

// CLI defines the command-line interface for tfbrowse.
type CLI struct {
	Globals

	Plain   PlainCmd   `cmd:"" help:"Print the plain rendering of nodes or passages"`
	Pretty  PrettyCmd  `cmd:"" help:"Print the pretty rendering of nodes or passages"`
	Link    LinkCmd    `cmd:"" help:"Print the source link of nodes or passages"`
	Export  ExportCmd  `cmd:"" help:"Export passages as a standalone HTML page"`
	Batch   BatchCmd   `cmd:"" help:"Run the export jobs of a TOML batch file"`
	Info    InfoCmd    `cmd:"" help:"Describe the loaded corpus"`
	Init    InitCmd    `cmd:"" name:"init-config" help:"Write the default configuration file"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

func newParser(cli *CLI, ctx context.Context, stdout, stderr io.Writer) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("tfbrowse"),
		kong.Description("Tischendorf corpus browser - HTML renderings of the Greek New Testament"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Writers(stdout, stderr),
		kong.Bind(&cli.Globals),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := newParser(&cli, ctx, stdout, stderr)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return kctx.Run()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "tfbrowse: error: %v\n", err)
		os.Exit(1)
	}
}
