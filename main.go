package main

import (
	"os"

	"github.com/keskad/picolo/pkgs/app"
	"github.com/keskad/picolo/pkgs/cli"
)

func main() {
	app := app.PicoloApp{}
	cmd := cli.NewRootCommand(&app)
	args := os.Args
	if args != nil {
		args = args[1:]
		cmd.SetArgs(args)
	}
	err := cmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
