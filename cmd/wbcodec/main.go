package main

import (
	"context"
	"os"

	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"

	"github.com/diwise/wikibase-codec/cmd/wbcodec/commands"
)

const (
	appName string = "wbcodec"
)

func main() {
	appVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), appName, appVersion, "json")

	err := commands.Execute(ctx, log)
	cleanup()

	if err != nil {
		os.Exit(1)
	}
}
