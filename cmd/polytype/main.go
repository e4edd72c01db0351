package main

import "github.com/aseio6668/PolyType-sub001/internal/cli"

func main() {
	cli.Execute()
}
