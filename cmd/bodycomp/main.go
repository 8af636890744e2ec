package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"bodycomp/internal/cli"
	"bodycomp/internal/config"
)

var CLI struct {
	Version kong.VersionFlag

	Serve        cli.ServeCmd        `cmd:"" help:"Run the HTTP API and web UI." default:"1"`
	Add          cli.AddCmd          `cmd:"" help:"Record a measurement."`
	Edit         cli.EditCmd         `cmd:"" help:"Change a recorded measurement."`
	Delete       cli.DeleteCmd       `cmd:"" help:"Delete a measurement."`
	List         cli.ListCmd         `cmd:"" help:"List all measurements."`
	Latest       cli.LatestCmd       `cmd:"" help:"Show the most recent measurement."`
	Chart        cli.ChartCmd        `cmd:"" help:"Print the body fat and fat-free mass series."`
	Export       cli.ExportCmd       `cmd:"" help:"Export measurements to CSV or JSON."`
	Import       cli.ImportCmd       `cmd:"" help:"Merge measurements from a JSON export."`
	HashPassword cli.HashPasswordCmd `cmd:"" name:"hash-password" help:"Print a bcrypt hash for BODYCOMP_OWNER_PASSWORD_HASH."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("bodycomp"),
		kong.Description("Body composition tracker (Navy method)"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Config: cfg,
		Out:    os.Stdout,
		Err:    os.Stderr,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
