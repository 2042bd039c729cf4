package main

import (
	"github.com/alecthomas/kong"

	"github.com/Badpoolinator/strata-wiki/cmd/stratawiki/commands"
	"github.com/Badpoolinator/strata-wiki/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("stratawiki"),
		kong.Description("Static documentation site builder for Strata Source games"),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)
	err := ctx.Run(&commands.Global{})
	ctx.FatalIfErrorf(err)
}
