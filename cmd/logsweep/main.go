package main

import "github.com/yokitheyo/logsweep/internal/cmd"

func main() {
	cmd.Execute()
}
