package main

import "loan-calculator/cmd"

func main() {
	cmd.Execute()
}
