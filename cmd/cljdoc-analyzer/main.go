package main

import "github.com/lread/cljdoc-analyzer/internal/cli"

func main() {
	cli.Execute()
}
