package cmd

import (
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Vorticode/expect.js/lexer"
	"github.com/Vorticode/expect.js/scanner"
)

var (
	noColor         bool
	hashPlaceholder bool
	lenientTags     bool
	strictEOF       bool
	maxDepth        int
	extensions      []string
	timeout         time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "lexjs [paths...]",
	Short:            "lexjs - lex HTML/JS sources and search their token streams",
	TraverseChildren: true, // Prioritize subcommands
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'lexjs' is entered
			_ = cmd.Help()
			return
		}
		// Format: lexjs [path1 path2 ...] => behaves like the tokens subcommand
		tokensCmd.Run(tokensCmd, args)
	},
}

func Execute() error {
	defer func() { _ = logger.Sync() }()
	return rootCmd.Execute()
}

func init() {
	logger, _ = zap.NewProduction()

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&hashPlaceholder, "hash-placeholder", false, "Lex #{expr} instead of ${expr} template placeholders")
	rootCmd.PersistentFlags().BoolVar(&lenientTags, "lenient-tags", false, "Lex unrecognized characters inside tags as unknown tokens")
	rootCmd.PersistentFlags().BoolVar(&strictEOF, "strict-eof", false, "Treat end of input inside an unterminated nested mode as an error")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", lexer.DefaultMaxDepth, "Mode nesting ceiling")
	rootCmd.PersistentFlags().StringSliceVar(&extensions, "ext", nil, "File extensions to scan (default .html,.htm,.js,.mjs)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Timeout for batch processing")

	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
	})

	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(importsCmd)
	rootCmd.AddCommand(watchCmd)
}

func grammar() *lexer.Grammar {
	return lexer.NewHTMLJS(lexer.Config{
		HashPlaceholder: hashPlaceholder,
		LenientTags:     lenientTags,
	})
}

func lexOptions(path string) []lexer.Option {
	opts := []lexer.Option{lexer.MaxDepth(maxDepth)}
	if scanner.IsScript(path) {
		opts = append(opts, lexer.StartMode(lexer.ModeJS))
	}
	if strictEOF {
		opts = append(opts, lexer.StrictEOF())
	}
	return opts
}

func newScanner() *scanner.Scanner {
	return scanner.New(extensions...)
}
