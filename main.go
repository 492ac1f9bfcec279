package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"camprobe/cmd"
)

// ビルド時に -ldflags で埋め込む
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cmd.NewRootCommand(version, commit, date)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		// probe の到達不可は結果として出力済み
		if !errors.Is(err, cmd.ErrUnreachable) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
