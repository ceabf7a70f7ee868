package main

import "github.com/tabscribe/tabscribe/cmd"

func main() {
	cmd.Execute()
}
