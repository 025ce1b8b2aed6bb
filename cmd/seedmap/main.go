// cmd/seedmap/main.go
package main

import (
	"seedmap/internal/app"
	"seedmap/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
