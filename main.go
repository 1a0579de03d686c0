package main

import "wrench/cmd"

func main() {
	cmd.Execute()
}
