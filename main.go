package main

import "chillstreams/cmd"

func main() {
	cmd.Execute()
}
