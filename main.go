package main

import (
	"fmt"
	"os"

	"github.com/hitoshi/ticketgate/internal/app"
	"github.com/hitoshi/ticketgate/internal/render"
)

func main() {
	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, render.Error(err))
		os.Exit(1)
	}
}
