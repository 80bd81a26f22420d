package main

import "report-validator/cmd"

func main() {
	cmd.Execute()
}
