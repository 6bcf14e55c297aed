/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/azure/update-management-deboarder/cmd"

func main() {
	cmd.Execute()
}
