package main

import (
	"os"

	"github.com/df07/go-pathtracer/cmd"
	"github.com/df07/go-pathtracer/pkg/log"
)

var logger = log.New("pathtracer")

func main() {
	if err := cmd.NewApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
