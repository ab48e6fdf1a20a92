package main

import "edgetrans/cmd"

func main() {
	cmd.Execute()
}
