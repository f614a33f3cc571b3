package main

import "github.com/funvibe/vela/pkg/cli"

func main() {
	cli.Run()
}
