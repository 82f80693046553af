package main

import "github.com/Ahmed-Sermani/go-pagerank/cmd"

func main() {
	cmd.Execute()
}
