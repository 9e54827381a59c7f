package main

import "github.com/wbtb/audiohash/cmd/audiohash/cmd"

func main() {
	cmd.Execute()
}
