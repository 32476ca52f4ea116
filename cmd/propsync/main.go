package main

import "propsync/internal/cli"

func main() {
	cli.Execute()
}
