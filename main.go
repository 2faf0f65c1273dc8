package main

import "github/seimcp/go-wallet/cmd"

func main() {
	cmd.Execute()
}
