package main

import "github.com/Tiliavir/time-checker/cmd"

func main() {
	cmd.Execute()
}
