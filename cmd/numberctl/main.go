package main

import "github.com/WatsonMulkey/The-Number/internal/cli"

func main() {
	cli.Execute()
}
