package main

import "github.com/example/hallcheck/cmd"

func main() {
	cmd.Execute()
}
