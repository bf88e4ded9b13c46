package main

import "github.com/dgallion1/docoutline/internal/cli"

func main() {
	cli.Execute()
}
