package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/lampochka7181/CryptoEuroMillionsBot/utils"
)

func (b *Bot) privateCommandReceived(message *tgbotapi.Message) {
	cmd := message.Command()
	args := message.CommandArguments()
	name := utils.FormatTgUser(message.From)
	log.Info("private command received", "command", cmd, "args", args, "user", name)

	if cmd == "start" {
		msg := tgbotapi.NewMessage(b.cfg.Bot.Owner, helpMessage)
		msg.ParseMode = tgbotapi.ModeMarkdown
		b.tgBot.Send(msg)
		b.mainMenu()
		return
	}
}
