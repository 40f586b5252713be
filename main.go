package main

import "github.com/aquachem/electrodb/cmd"

func main() {
	cmd.Execute()
}
