package main

import "github.com/salesworks/salespipe/cmd"

func main() {
	cmd.Execute()
}
