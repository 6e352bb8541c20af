package main

import "github.com/tlhtlh2211/datavis-project2/internal/cli"

func main() {
	cli.Execute()
}
