package genversion

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

var outputTemplate = template.Must(template.New("output").Parse(outputTemplateStr))

const outputTemplateStr = `package gen

func Version() string {
	return "{{.}}"
}
`

func GenFile(commitHash string, outFile io.Writer) error {
	return outputTemplate.Execute(outFile, commitHash)
}

// ReadCommitHash resolves a .git/HEAD file to the commit it points at.
//
// The contents of .git/HEAD might be a raw hash like
//
//	c0ffeec0ffec0ffec0ffec0ffec0ffec0ffeec0f
//
// or a line like
//
//	ref: refs/heads/main
func ReadCommitHash(headPath string) (string, error) {
	headBytes, err := os.ReadFile(headPath)
	if err != nil {
		return "", fmt.Errorf("couldn't os.ReadFile(%q): %w", headPath, err)
	}

	commitHash := headBytes
	if bytes.HasPrefix(headBytes, []byte("ref: ")) {
		ref := strings.TrimSpace(strings.SplitAfterN(string(headBytes), " ", 2)[1])
		commitHashPath := filepath.Join(filepath.Dir(headPath), filepath.FromSlash(ref))
		commitHash, err = os.ReadFile(commitHashPath)
		if err != nil {
			return "", fmt.Errorf("couldn't os.ReadFile(%q): %w", commitHashPath, err)
		}
	}
	return string(bytes.TrimSpace(commitHash)), nil
}
