package main

import "github.com/goliatone/go-crudform/cmd/crudformd/cmd"

func main() {
	cmd.Execute()
}
