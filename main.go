package main

import "github.com/velo-bench/velo/cmd"

func main() {
	cmd.Execute()
}
