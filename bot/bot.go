package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/lampochka7181/CryptoEuroMillionsBot/data"
	"github.com/lampochka7181/CryptoEuroMillionsBot/network"
	"github.com/lampochka7181/CryptoEuroMillionsBot/purchase"
	"github.com/lampochka7181/CryptoEuroMillionsBot/session"
	"github.com/lampochka7181/CryptoEuroMillionsBot/utils"
)

var log = logger.GetOrCreate("bot")

// Bot - holds the required fields of the bot application
type Bot struct {
	tgBot          *tgbotapi.BotAPI
	cfg            *data.AppConfig
	sessions       *session.Manager
	orchestrator   *purchase.Orchestrator
	networkManager *network.Manager
}

// NewBot - creates a new Bot object
func NewBot(cfg *data.AppConfig, sessions *session.Manager, orchestrator *purchase.Orchestrator, networkManager *network.Manager) (*Bot, error) {
	tgBot, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Error("can not create telegram bot", "error", err)
		return nil, err
	}

	telegramBot := &Bot{
		tgBot:          tgBot,
		cfg:            cfg,
		sessions:       sessions,
		orchestrator:   orchestrator,
		networkManager: networkManager,
	}

	return telegramBot, nil
}

// StartTasks - starts bot's tasks
func (b *Bot) StartTasks() {
	go func() {
		for {
			b.orchestrator.RefreshProjections()
			time.Sleep(time.Minute)
		}
	}()

	go func() {
		for event := range b.sessions.Events() {
			switch event {
			case session.SessionEstablished:
				b.orchestrator.ReloadActivities()
				sess := b.sessions.Current()
				if sess != nil {
					b.sendMessage(fmt.Sprintf("🔓 `Wallet connected:` %s", utils.ShortenAddress(sess.WalletAddress)))
				}
			case session.SessionCleared:
				b.sendMessage("🔒 `Wallet disconnected`")
			}
		}
	}()

	go func() {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		updates, err := b.tgBot.GetUpdatesChan(u)
		if err != nil {
			log.Error("can not get Telegram bot updates", "error", err)
			panic(err)
		}
		updates.Clear()
		for update := range updates {
			if update.Message != nil && update.Message.Chat.IsPrivate() {
				if update.Message.From.ID != int(b.cfg.Bot.Owner) {
					log.Warn("message from unknown user", "user", utils.FormatTgUser(update.Message.From))
					continue
				}
				if update.Message.IsCommand() {
					b.privateCommandReceived(update.Message)
					continue
				}
				b.privateMessageReceived(update.Message)
			}
			if update.CallbackQuery != nil {
				if update.CallbackQuery.From.ID != int(b.cfg.Bot.Owner) {
					continue
				}
				b.callbackQueryReceived(update.CallbackQuery)
			}
		}
	}()
}

func (b *Bot) sendMessage(text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(b.cfg.Bot.Owner, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	res, err := b.tgBot.Send(msg)
	if err != nil {
		log.Warn("error sending message", "message", text, "error", err)
	}

	return res, err
}

func (b *Bot) reportError(text string) {
	b.sendMessage("⛔️ " + text)
}

// connectWallet runs the session manager's connect flow and reports the
// outcome. The session-established message itself comes through the events
// channel.
func (b *Bot) connectWallet() {
	err := b.sessions.Connect(context.Background())
	if err != nil {
		log.Error("connect failed", "error", err)
		b.reportError(err.Error())
		return
	}

	b.orchestrator.RefreshProjections()
}

func (b *Bot) jackpotInfo() string {
	text := "`Global Mega Jackpot`\n\n"

	jackpot := b.orchestrator.Jackpot()
	if jackpot != nil {
		text += fmt.Sprintf("`Pot:` %.2f EGLD\n", jackpot.Pot.CurrentAmount)
		text += fmt.Sprintf("`Tickets sold:` %v\n", jackpot.Pot.TotalTicketsSold)
	} else {
		text += "`Pot:` unavailable\n"
	}

	countdown := b.orchestrator.Countdown()
	if countdown != nil {
		text += fmt.Sprintf("`Draw in:` %s\n", countdown.Countdown.Formatted)
		text += fmt.Sprintf("`Next draw:` %s %s\n", countdown.NextDraw.Day, countdown.NextDraw.Time)
	}

	text += fmt.Sprintf("`Ticket price:` %s EGLD", utils.NicePrice(data.TicketPriceEGLD, -1))

	return text
}

func (b *Bot) sendActivity() {
	activities := b.orchestrator.Activities()
	if len(activities) == 0 {
		b.sendMessage("No tickets yet.")
		return
	}

	text := "`My Activity`\n"
	for i, activity := range activities {
		if i == maxActivityEntries {
			text += fmt.Sprintf("\n... and %v more", len(activities)-maxActivityEntries)
			break
		}
		text += fmt.Sprintf("\n`%s`\n%v ★%v • %s EGLD • [view tx](%s%s)\n",
			activity.Date, activity.Main, activity.Stars,
			utils.NicePrice(activity.Price, -1), b.cfg.Network.ExplorerTransaction, activity.TxSig)
	}

	b.sendMessage(text)
}

func (b *Bot) sendBalance() {
	sess := b.sessions.Current()
	if sess == nil {
		b.sendMessage("🔌 Connect your wallet first")
		return
	}

	balance, err := b.networkManager.GetBalance(sess.WalletAddress)
	if err != nil {
		b.reportError("can not get wallet balance")
		return
	}

	text := fmt.Sprintf("`Wallet:` [%s](%s%s)\n`Balance:` %s EGLD",
		utils.ShortenAddress(sess.WalletAddress), b.cfg.Network.ExplorerAccount, sess.WalletAddress,
		utils.NicePrice(balance, -1))

	nonce, err := b.networkManager.GetAddressNonce(sess.WalletAddress)
	if err == nil {
		text += fmt.Sprintf("\n`Nonce:` %v", nonce)
	}

	b.sendMessage(text)
}

func (b *Bot) play() {
	activity, err := b.orchestrator.Buy(context.Background())
	if err != nil {
		if errors.Is(err, purchase.ErrReconnectRequired) {
			b.connectWallet()
			return
		}
		if errors.Is(err, purchase.ErrIncompleteSelection) {
			b.sendMessage(fmt.Sprintf("Select `%v` numbers and `%v` Powerball first", data.MainNumbersCount, data.StarNumbersCount))
			b.sendPicker()
			return
		}
		log.Error("purchase failed", "error", err)
		b.reportError(err.Error())
		return
	}

	b.sendPurchaseSuccess(activity)
}

func (b *Bot) flashBuy() {
	activity, err := b.orchestrator.FlashBuy(context.Background())
	if err != nil {
		if errors.Is(err, purchase.ErrReconnectRequired) {
			b.connectWallet()
			return
		}
		log.Error("flash buy failed", "error", err)
		b.reportError(err.Error())
		return
	}

	b.sendPurchaseSuccess(activity)
}

func (b *Bot) sendPurchaseSuccess(activity *data.TicketActivity) {
	text := fmt.Sprintf("🎉 `Ticket purchased!` You played 1 ticket • %s EGLD\n\n`Numbers:` %v ★%v\n[view tx](%s%s)",
		utils.NicePrice(activity.Price, -1), activity.Main, activity.Stars,
		b.cfg.Network.ExplorerTransaction, activity.TxSig)
	b.sendMessage(text)
}

const maxActivityEntries = 10
