package bot

const (
	menuJackpot     = "💰 Jackpot"
	menuPickNumbers = "🔢 Pick Numbers"
	menuPlay        = "🎟 Play"
	menuFlash       = "⚡️ Flash Buy"
	menuMyActivity  = "🎫 My Activity"
	menuBalance     = "👛 Balance"
	menuConnect     = "🔌 Connect"
	menuDisconnect  = "🔒 Disconnect"
	menuMainHelp    = "📖 Help"

	cbMainPrefix = "main:"
	cbStarPrefix = "star:"
	cbRandomPick = "random"
	cbClearPick  = "clear"
	cbPlay       = "play"
)

var (
	helpMessage = "`Crypto EuroMillions`\n" +
		"\n" +
		"Pick `4` numbers (1-30) and `1` Powerball (1-10), or let `Flash Buy` pick for you.\n\n" +
		"A ticket costs `0.05 EGLD`, paid straight from the wallet configured for this bot. " +
		"The payment goes on chain first and the ticket is registered with the lottery service right after.\n\n" +
		"`Connect` authenticates your wallet with the lottery service by signing a short message. " +
		"`Disconnect` forgets the session again.\n\n" +
		"🍀 Good luck!"
)
