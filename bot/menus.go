package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/lampochka7181/CryptoEuroMillionsBot/data"
)

func (b *Bot) mainMenu() {
	menu := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuJackpot),
			tgbotapi.NewKeyboardButton(menuPickNumbers),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuPlay),
			tgbotapi.NewKeyboardButton(menuFlash),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuMyActivity),
			tgbotapi.NewKeyboardButton(menuBalance),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuConnect),
			tgbotapi.NewKeyboardButton(menuDisconnect),
			tgbotapi.NewKeyboardButton(menuMainHelp),
		),
	)

	msg := tgbotapi.NewMessage(b.cfg.Bot.Owner, "`🏘 Main menu`")
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = menu
	b.tgBot.Send(msg)
}

func (b *Bot) sendPicker() {
	selection := b.orchestrator.Selection()

	msg := tgbotapi.NewMessage(b.cfg.Bot.Owner, b.pickerText(selection))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = pickerKeyboard(selection)
	b.tgBot.Send(msg)
}

func (b *Bot) pickerText(selection data.Selection) string {
	return fmt.Sprintf("`Pick numbers (%v + %v Powerball)`\n`Numbers:` %v/%v `Powerball:` %v/%v",
		data.MainNumbersCount, data.StarNumbersCount,
		len(selection.Main), data.MainNumbersCount,
		len(selection.Stars), data.StarNumbersCount)
}

func pickerKeyboard(selection data.Selection) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0)

	row := make([]tgbotapi.InlineKeyboardButton, 0, pickerColumns)
	for n := 1; n <= data.MainNumbersMax; n++ {
		row = append(row, numberButton(n, cbMainPrefix, contains(selection.Main, n)))
		if len(row) == pickerColumns {
			rows = append(rows, row)
			row = make([]tgbotapi.InlineKeyboardButton, 0, pickerColumns)
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	row = make([]tgbotapi.InlineKeyboardButton, 0, pickerColumns)
	for n := 1; n <= data.StarNumbersMax; n++ {
		row = append(row, numberButton(n, cbStarPrefix, contains(selection.Stars, n)))
		if len(row) == pickerColumns {
			rows = append(rows, row)
			row = make([]tgbotapi.InlineKeyboardButton, 0, pickerColumns)
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🎲 Random", cbRandomPick),
		tgbotapi.NewInlineKeyboardButtonData("🧹 Clear", cbClearPick),
		tgbotapi.NewInlineKeyboardButtonData("🎟 Play", cbPlay),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func numberButton(n int, prefix string, selected bool) tgbotapi.InlineKeyboardButton {
	label := fmt.Sprintf("%v", n)
	if prefix == cbStarPrefix {
		label = fmt.Sprintf("★%v", n)
	}
	if selected {
		label = "✅" + label
	}

	return tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%v", prefix, n))
}

func contains(pool []int, n int) bool {
	for _, x := range pool {
		if x == n {
			return true
		}
	}

	return false
}

const pickerColumns = 6
