package main

import "github.com/Idenfo/UK-PEP-scrape/cmd"

func main() {
	cmd.Execute()
}
