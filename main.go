package main

import (
	"os"

	"github.com/MobRulesGames/isomap/cmd"
)

func main() {
	cmd.Main(os.Args)
}
