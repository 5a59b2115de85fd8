package main

import "github.com/mvoronkova/readlist/internal/agent/cli"

// заполняются при сборке через -ldflags "-X main.buildVersion=... -X main.buildDate=..."
var (
	buildVersion = "dev"
	buildDate    = "unknown"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
