package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"spravochnik/internal/cli"
)

func main() {
	root := cli.NewRootCommand(os.Stdout)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Ошибка: %v", err))
		os.Exit(1)
	}
}
