package main

import "github.com/olivierh59500/nexus-particles/cmd"

func main() {
	cmd.Execute()
}
