package bot

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/lampochka7181/CryptoEuroMillionsBot/utils"
)

func (b *Bot) callbackQueryReceived(callback *tgbotapi.CallbackQuery) {
	cb := callback.Data
	b.tgBot.AnswerCallbackQuery(tgbotapi.NewCallback(callback.ID, cb))
	name := utils.FormatTgUser(callback.From)
	log.Info("callback received", "callback", cb, "user", name)

	switch {
	case strings.HasPrefix(cb, cbMainPrefix):
		n, err := strconv.Atoi(strings.TrimPrefix(cb, cbMainPrefix))
		if err != nil {
			return
		}
		b.orchestrator.ToggleMain(n)
		b.updatePicker(callback.Message)
	case strings.HasPrefix(cb, cbStarPrefix):
		n, err := strconv.Atoi(strings.TrimPrefix(cb, cbStarPrefix))
		if err != nil {
			return
		}
		b.orchestrator.ToggleStar(n)
		b.updatePicker(callback.Message)
	case cb == cbRandomPick:
		b.orchestrator.RandomFillSelection()
		b.updatePicker(callback.Message)
	case cb == cbClearPick:
		b.orchestrator.ClearSelection()
		b.updatePicker(callback.Message)
	case cb == cbPlay:
		b.play()
	}
}

func (b *Bot) updatePicker(message *tgbotapi.Message) {
	if message == nil {
		return
	}

	selection := b.orchestrator.Selection()
	msg := tgbotapi.NewEditMessageText(message.Chat.ID, message.MessageID, b.pickerText(selection))
	msg.ParseMode = tgbotapi.ModeMarkdown
	keyboard := pickerKeyboard(selection)
	msg.ReplyMarkup = &keyboard
	b.tgBot.Send(msg)
}
