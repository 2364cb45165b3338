package main

import "github.com/eowork/pmoprototype-sub005/cmd"

func main() {
	cmd.Execute()
}
