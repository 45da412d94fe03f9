package main

import "github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/cli"

func main() {
	cli.Execute()
}
