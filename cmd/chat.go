package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/config"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/dependency"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the shopping assistant in your terminal",
	RunE:  runChat,
}

func runChat(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	c, err := dependency.New(cfg)
	if err != nil {
		return fmt.Errorf("wire services: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("%s shopbot ready. Ask about shoes or books; type /quit to exit.\n", logo)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		res := c.AgentLoop().Converse(ctx, "cli", line, func(step string) {
			fmt.Println("  " + step)
		})
		fmt.Println("bot> " + res.Reply)
		if res.TriggerCheckout {
			fmt.Println("  (checkout started — complete payment via the /checkout endpoint)")
		}
		if ctx.Err() != nil {
			break
		}
	}
	return scanner.Err()
}
