package main

import "dataset-reconciler/cmd"

func main() {
	cmd.Execute()
}
