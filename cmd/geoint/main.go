package main

import (
	"github.com/imertcoskun/geoint/pkg/cli"
)

func main() {
	cli.Execute()
}
