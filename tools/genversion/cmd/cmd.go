package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MobRulesGames/isomap/tools/genversion"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s path/to/.git/HEAD path/to/gen/version.go\n", os.Args[0])
		os.Exit(1)
	}

	commitHash, err := genversion.ReadCommitHash(os.Args[1])
	if err != nil {
		panic(err)
	}

	outpath := os.Args[2]
	targetdir := filepath.Dir(outpath)
	err = os.MkdirAll(targetdir, 0755)
	if err != nil {
		panic(fmt.Errorf("couldn't os.MkdirAll(%q): %w", targetdir, err))
	}

	outFile, err := os.Create(outpath)
	if err != nil {
		panic(fmt.Errorf("couldn't os.Create(%q): %w", outpath, err))
	}
	defer outFile.Close()

	err = genversion.GenFile(commitHash, outFile)
	if err != nil {
		panic(fmt.Errorf("GenFile failed: %w", err))
	}
}
