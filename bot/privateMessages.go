package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/lampochka7181/CryptoEuroMillionsBot/utils"
)

func (b *Bot) privateMessageReceived(message *tgbotapi.Message) {
	name := utils.FormatTgUser(message.From)
	log.Info("private message received", "message", message.Text, "user", name)

	switch message.Text {
	case menuJackpot:
		b.sendMessage(b.jackpotInfo())
		return
	case menuPickNumbers:
		b.sendPicker()
		return
	case menuPlay:
		b.play()
		return
	case menuFlash:
		b.flashBuy()
		return
	case menuMyActivity:
		b.sendActivity()
		return
	case menuBalance:
		b.sendBalance()
		return
	case menuConnect:
		b.connectWallet()
		return
	case menuDisconnect:
		b.sessions.Disconnect()
		return
	case menuMainHelp:
		msg := tgbotapi.NewMessage(b.cfg.Bot.Owner, helpMessage)
		msg.ParseMode = tgbotapi.ModeMarkdown
		_, err := b.tgBot.Send(msg)
		if err != nil {
			log.Error("unable to send message", "message", helpMessage, "error", err)
		}
		return
	}
}
