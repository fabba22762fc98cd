// cmd/pahmm/main.go
package main

import (
	"pahmm/internal/app"
	"pahmm/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
