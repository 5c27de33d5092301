package main

import "github.com/commercekit/ucp-mcp/adapter/cli"

func main() {
	cli.Execute()
}
