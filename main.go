package main

import "github.com/openlab-ops/cdboot/cmd"

func main() {
	cmd.Execute()
}
