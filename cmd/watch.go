package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Vorticode/expect.js/internal"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Re-lex files whenever they change and report errors",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		sc := newScanner()
		w, err := internal.NewWatcher(logger,
			sc.Matches,
			func(path string) {
				if dumpTokens(path) {
					logger.Info("lexed ok", zap.String("file", path))
				}
			})
		if err != nil {
			logger.Fatal("Failed to create watcher", zap.Error(err))
		}

		for _, arg := range args {
			if err := w.Add(arg); err != nil {
				logger.Fatal("Failed to watch path", zap.String("path", arg), zap.Error(err))
			}
		}
		if err := w.Start(); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		_ = w.Stop()
	},
}
