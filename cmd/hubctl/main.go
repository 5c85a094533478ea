package main

import (
	"machinehub/cmd/hubctl/cli"
)

func main() {
	cli.InitAndExecute()
}
