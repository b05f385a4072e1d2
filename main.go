package main

import "github.com/MohithS04/Food-service-sales/cmd"

func main() {
	cmd.Execute()
}
