package main

import "github.com/papapumpkin/matn/cmd"

func main() {
	cmd.Execute()
}
