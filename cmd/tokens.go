package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Vorticode/expect.js/internal"
	"github.com/Vorticode/expect.js/lexer"
	"github.com/Vorticode/expect.js/scanner"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [paths...]",
	Short: "Lex files and print their token trees",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		sc := newScanner()
		failed := 0
		for _, arg := range args {
			files, err := expand(sc, arg)
			if err != nil {
				logger.Error("Error scanning path", zap.String("path", arg), zap.Error(err))
				os.Exit(1)
			}
			for _, file := range files {
				if !dumpTokens(file) {
					failed++
				}
			}
		}
		if failed > 0 {
			os.Exit(1)
		}
	},
}

// expand lists the lexable files under path; a plain file is returned as-is
// regardless of extension.
func expand(sc *scanner.Scanner, path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return sc.Scan(path)
}

func dumpTokens(path string) bool {
	src, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Error reading source file", zap.String("file", path), zap.Error(err))
		return false
	}

	tokens, err := lexer.Tokenize(grammar(), string(src), lexOptions(path)...)
	if err != nil {
		var lexErr *lexer.LexError
		if errors.As(err, &lexErr) {
			fmt.Print(internal.FormatLexError(lexErr, string(src), path))
		} else {
			logger.Error("Error lexing file", zap.String("file", path), zap.Error(err))
		}
		return false
	}

	fmt.Printf("== %s\n", path)
	fmt.Print(internal.FormatTokens(tokens))
	return true
}
