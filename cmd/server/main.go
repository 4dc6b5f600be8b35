package main

import (
	"os"

	"go-file-share/pkg/logger"
)

func main() {
	defer logger.Sync()
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
