// Command tweetwatch forwards tweets matching a filter rule to a spreadsheet.
package main

import (
	"os"

	"github.com/custodia-labs/tweetwatch/internal/adapters/driving/cli"
)

func main() {
	os.Exit(cli.Execute())
}
