package main

import "github.com/cityreport/api-go/cmd"

func main() {
	cmd.Execute()
}
