package main

import "github.com/llehouerou/wavesmobile/internal/cli"

func main() {
	cli.Execute()
}
