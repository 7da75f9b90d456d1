package main

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"shopping-list-bot/internal/application"
	tele "shopping-list-bot/internal/infra/adapters/telegram"
)

var consoleSender int64

// consoleCmd drives the command router from stdin, without Telegram.
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Chat with the bot from the terminal",
	Long: `Read messages from stdin and print the bot's replies.

A line starting with "!" presses the inline button with that callback data,
e.g. "!cmd:list".`,
	RunE: runConsole,
}

func init() {
	consoleCmd.Flags().Int64Var(&consoleSender, "sender", 1, "Telegram user id to act as")
}

func runConsole(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := buildApp(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	out := tele.NewNoopBotAdapter(cmd.OutOrStdout())
	return consoleLoop(cmd.Context(), cmd.InOrStdin(), out, a.facade, consoleSender)
}

// consoleRouter is satisfied by *application.BotFacade.
type consoleRouter interface {
	HandleMessage(ctx context.Context, in application.Incoming) application.Reply
	HandleCallback(ctx context.Context, in application.Incoming, data string) application.Reply
}

func consoleLoop(ctx context.Context, in io.Reader, out *tele.NoopBotAdapter, router consoleRouter, sender int64) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := sc.Text()
		msg := application.Incoming{SenderID: sender, ChatID: sender, Name: "console", Text: line}

		var reply application.Reply
		if data, ok := strings.CutPrefix(strings.TrimSpace(line), "!"); ok {
			reply = router.HandleCallback(ctx, msg, data)
		} else {
			reply = router.HandleMessage(ctx, msg)
		}
		if err := out.Deliver(ctx, sender, reply); err != nil {
			return err
		}
	}
	return sc.Err()
}
