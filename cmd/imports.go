package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Vorticode/expect.js/imports"
	"github.com/Vorticode/expect.js/internal"
	"github.com/Vorticode/expect.js/lexer"
)

var (
	importsJSON    bool
	importsRewrite bool
	importsWrite   bool
)

var importsCmd = &cobra.Command{
	Use:   "imports [paths...]",
	Short: "List import specifiers, optionally rewriting relative ones to file URLs",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var (
			mu     sync.Mutex
			byFile = make(map[string][]imports.Specifier)
		)

		failed, err := internal.ProcessPaths(ctx, logger, newScanner(), args, func(path string) error {
			specs, procErr := processImports(path)
			if procErr != nil {
				return procErr
			}
			mu.Lock()
			byFile[path] = specs
			mu.Unlock()
			return nil
		})
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}

		printSpecifiers(byFile)
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	importsCmd.Flags().BoolVar(&importsJSON, "json", false, "Output specifiers in JSON format")
	importsCmd.Flags().BoolVar(&importsRewrite, "rewrite", false, "Rewrite relative specifiers to absolute file URLs")
	importsCmd.Flags().BoolVarP(&importsWrite, "write", "w", false, "With --rewrite, write the result back instead of printing it")
}

func processImports(path string) ([]imports.Specifier, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.Tokenize(grammar(), string(src), lexOptions(path)...)
	if err != nil {
		return nil, err
	}

	if !importsRewrite {
		return imports.Find(tokens), nil
	}

	changed := imports.Rewrite(tokens, func(spec string) (string, bool) {
		return resolveSpecifier(path, spec)
	})
	specs := imports.Find(tokens)
	if changed == 0 {
		return specs, nil
	}
	out := lexer.Render(tokens)
	if importsWrite {
		return specs, os.WriteFile(path, []byte(out), 0o644)
	}
	fmt.Print(out)
	return specs, nil
}

// resolveSpecifier turns a relative specifier into an absolute file URL,
// resolved against the importing file's directory. Bare and already-absolute
// specifiers are left alone.
func resolveSpecifier(path, spec string) (string, bool) {
	if !strings.HasPrefix(spec, "./") && !strings.HasPrefix(spec, "../") {
		return "", false
	}
	abs, err := filepath.Abs(filepath.Join(filepath.Dir(path), spec))
	if err != nil {
		return "", false
	}
	return "file://" + filepath.ToSlash(abs), true
}

func printSpecifiers(byFile map[string][]imports.Specifier) {
	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	sort.Strings(files)

	if importsJSON {
		d, err := json.Marshal(byFile)
		if err != nil {
			logger.Error("Error marshalling specifiers to JSON", zap.Error(err))
			return
		}
		fmt.Println(string(d))
		return
	}
	for _, file := range files {
		for _, spec := range byFile[file] {
			fmt.Printf("%s:%d:%d\t%s\n", file, spec.Line, spec.Col, spec.Path)
		}
	}
}
