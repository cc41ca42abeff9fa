package main

import (
	"fmt"
	"os"

	"github.com/shamanec/GADS-emulator-manager/cmd"
	_ "github.com/shamanec/GADS-emulator-manager/docs"
	"github.com/shamanec/GADS-emulator-manager/logger"
)

var version = "dev"

func main() {
	if err := cmd.Execute(version); err != nil {
		logger.ProviderLogger.LogError("provider", err.Error())
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
