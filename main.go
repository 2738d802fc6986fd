package main

import "superapp-api/cmd"

func main() {
	cmd.Execute()
}
