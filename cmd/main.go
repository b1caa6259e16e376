package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/danielroe/directus-typegen/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Run(ctx, cmd.Settings{
		WorkingDir: mustGetwd(),
		Args:       os.Args[1:],
		LookupEnv:  os.LookupEnv,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}); err != nil {
		stop()
		log.Fatal(err.Error())
	}
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal("failed to determine working directory")
	}

	return wd
}
