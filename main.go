package main

import "github.com/junaidrashid-git/trendy-shop/cmd"

func main() {
	cmd.Execute()
}
