package main

import (
	"boscoin.io/ballot/cmd/ballot/cmd"
)

func main() {
	cmd.Execute()
}
