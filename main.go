/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/jobdeck/jobdeck/cmd"

func main() {
	cmd.Execute()
}
