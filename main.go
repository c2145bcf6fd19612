/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/killallgit/player-core/cmd"

func main() {
	cmd.Execute()
}
