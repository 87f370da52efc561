package main

import "github.com/Reu7en/Intervision-sub000/cmd"

func main() {
	cmd.Execute()
}
