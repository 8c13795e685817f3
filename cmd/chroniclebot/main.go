// Command chroniclebot runs the historical events Telegram bot.
package main

import (
	"context"
	"log"
	"os"

	corecmd "github.com/m3rciful/chroniclebot/core/cmd"
	"github.com/m3rciful/chroniclebot/internal/app"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		EnvFiles:          []string{".env"},
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return app.Load(path)
		},
		Bootstrap: func(ctx context.Context, cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			return app.Bootstrap(ctx, cfg.(*app.Config), app.BootstrapOptions{})
		},
	})
	if err != nil {
		log.Printf("chroniclebot: %v", err)
		os.Exit(1)
	}
}
