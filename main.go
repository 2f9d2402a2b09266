/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "palettegen/cmd"

func main() {
	cmd.Execute()
}
