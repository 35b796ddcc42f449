package main

import "github.com/ideamans/accountclient/cmd/accountclient/cmd"

func main() {
	cmd.Execute()
}
