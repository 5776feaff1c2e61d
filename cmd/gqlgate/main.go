package main

import "github.com/gqlgate/gqlgate/cmd/gqlgate/cmd"

func main() {
	cmd.Execute()
}
