package main

import (
	"fmt"
	"os"

	"fjacquet/yonder-ynab/cmd/bot"
	"fjacquet/yonder-ynab/cmd/convert"
	"fjacquet/yonder-ynab/cmd/push"
	"fjacquet/yonder-ynab/cmd/root"
	"fjacquet/yonder-ynab/cmd/serve"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(push.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(bot.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
