package main

import (
	"fmt"

	"keeper/cmd"
)

var (
	version string
	commit  string
)

func main() {
	cmd.Execute(fmt.Sprintf("%s-%s", version, commit))
}
