package main

import "github.com/DawnLiExplorer/Me2Comic/cmd"

func main() {
	cmd.Execute()
}
