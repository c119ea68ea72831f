package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/urfave/cli"

	"github.com/lampochka7181/CryptoEuroMillionsBot/backend"
	"github.com/lampochka7181/CryptoEuroMillionsBot/bot"
	"github.com/lampochka7181/CryptoEuroMillionsBot/config"
	"github.com/lampochka7181/CryptoEuroMillionsBot/network"
	"github.com/lampochka7181/CryptoEuroMillionsBot/purchase"
	"github.com/lampochka7181/CryptoEuroMillionsBot/session"
	"github.com/lampochka7181/CryptoEuroMillionsBot/wallet"
)

var log = logger.GetOrCreate("main")

func main() {
	app := cli.NewApp()
	app.Name = "CryptoEuroMillionsBot"
	app.Usage = "Telegram client for the Crypto EuroMillions lottery"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "path to the configuration file",
			Value: config.DefaultConfigPath,
		},
	}
	app.Action = startBot

	err := app.Run(os.Args)
	if err != nil {
		log.Error("application stopped", "error", err)
		os.Exit(1)
	}
}

func startBot(ctx *cli.Context) error {
	rand.Seed(time.Now().UnixNano())

	cfg, err := config.NewConfig(ctx.GlobalString("config"))
	if err != nil {
		log.Error("can not read configuration", "error", err)
		return err
	}

	networkManager, err := network.NewManager(cfg)
	if err != nil {
		log.Error("can not create network manager", "error", err)
		return err
	}

	deviceWallet := wallet.NewDeviceWallet(cfg.Seedphrase, cfg.Network.Proxy)
	backendClient := backend.NewClient(cfg.Backend.URL)
	storage := session.NewStorage(cfg.SessionFile)
	sessions := session.NewManager(deviceWallet, backendClient, storage)
	orchestrator := purchase.NewOrchestrator(sessions, backendClient, networkManager, deviceWallet)

	telegramBot, err := bot.NewBot(cfg, sessions, orchestrator, networkManager)
	if err != nil {
		log.Error("can not create bot", "error", err)
		return err
	}

	telegramBot.StartTasks()
	sessions.RestoreSession(context.Background())

	log.Info("bot is up")
	select {}
}
