package purchase

import (
	"context"
	"strconv"
	"sync"
	"time"

	logger "github.com/ElrondNetwork/elrond-go-logger"

	"github.com/lampochka7181/CryptoEuroMillionsBot/backend"
	"github.com/lampochka7181/CryptoEuroMillionsBot/data"
	"github.com/lampochka7181/CryptoEuroMillionsBot/wallet"
)

var log = logger.GetOrCreate("purchase")

// SessionProvider is what the orchestrator needs to know about the session
type SessionProvider interface {
	Current() *data.Session
	NeedsReconnect() bool
}

// PaymentExecutor submits the on-chain transfer and blocks until it settles
type PaymentExecutor interface {
	SendPayment(ctx context.Context, signer wallet.Signer, recipient string, amount float64) (string, error)
}

// Orchestrator owns the selection and the activity list and sequences a
// purchase: payment intent, on-chain transfer, verification, ticket
// registration. Each step is attempted once; the first failure aborts the
// rest. The window between a confirmed transfer and a failed verification or
// registration is not reconciled here.
type Orchestrator struct {
	sessions SessionProvider
	backend  *backend.Client
	payments PaymentExecutor
	signer   wallet.Signer

	mut        sync.Mutex
	busy       bool
	selection  data.Selection
	activities []*data.TicketActivity
	jackpot    *data.JackpotInfo
	countdown  *data.CountdownInfo
}

// NewOrchestrator - creates a new purchase Orchestrator object
func NewOrchestrator(sessions SessionProvider, backendClient *backend.Client, payments PaymentExecutor, signer wallet.Signer) *Orchestrator {
	return &Orchestrator{
		sessions: sessions,
		backend:  backendClient,
		payments: payments,
		signer:   signer,
	}
}

// ToggleMain toggles a main number in the current selection
func (o *Orchestrator) ToggleMain(n int) {
	o.mut.Lock()
	defer o.mut.Unlock()
	o.selection.ToggleMain(n)
}

// ToggleStar toggles a powerball number in the current selection
func (o *Orchestrator) ToggleStar(n int) {
	o.mut.Lock()
	defer o.mut.Unlock()
	o.selection.ToggleStar(n)
}

// RandomFillSelection replaces the current selection with a random full one
func (o *Orchestrator) RandomFillSelection() {
	o.mut.Lock()
	defer o.mut.Unlock()
	o.selection.RandomFill()
}

// ClearSelection empties the current selection
func (o *Orchestrator) ClearSelection() {
	o.mut.Lock()
	defer o.mut.Unlock()
	o.selection.Clear()
}

// Selection returns a copy of the current selection
func (o *Orchestrator) Selection() data.Selection {
	o.mut.Lock()
	defer o.mut.Unlock()

	return data.Selection{
		Main:  append([]int(nil), o.selection.Main...),
		Stars: append([]int(nil), o.selection.Stars...),
	}
}

// Buy is the standard entry point: it requires a valid session and a
// complete selection.
func (o *Orchestrator) Buy(ctx context.Context) (*data.TicketActivity, error) {
	sess, err := o.requireSession()
	if err != nil {
		return nil, err
	}

	o.mut.Lock()
	if o.busy {
		o.mut.Unlock()
		return nil, ErrPurchaseInProgress
	}
	if !o.selection.Complete() {
		o.mut.Unlock()
		return nil, ErrIncompleteSelection
	}
	o.busy = true
	main := o.selection.SortedMain()
	stars := o.selection.SortedStars()
	o.mut.Unlock()

	defer o.release()

	return o.run(ctx, sess, main, stars)
}

// FlashBuy is the quick-buy entry point: it replaces any partial selection
// with a random one and proceeds immediately.
func (o *Orchestrator) FlashBuy(ctx context.Context) (*data.TicketActivity, error) {
	sess, err := o.requireSession()
	if err != nil {
		return nil, err
	}

	o.mut.Lock()
	if o.busy {
		o.mut.Unlock()
		return nil, ErrPurchaseInProgress
	}
	o.busy = true
	o.selection.RandomFill()
	main := o.selection.SortedMain()
	stars := o.selection.SortedStars()
	o.mut.Unlock()

	defer o.release()

	return o.run(ctx, sess, main, stars)
}

func (o *Orchestrator) requireSession() (*data.Session, error) {
	sess := o.sessions.Current()
	if sess == nil || o.sessions.NeedsReconnect() {
		return nil, ErrReconnectRequired
	}

	return sess, nil
}

func (o *Orchestrator) release() {
	o.mut.Lock()
	o.busy = false
	o.mut.Unlock()
}

func (o *Orchestrator) run(ctx context.Context, sess *data.Session, main []int, stars []int) (*data.TicketActivity, error) {
	log.Info("starting purchase", "main", main, "stars", stars)

	intent, err := o.backend.CreateIntent(sess.Token, 1)
	if err != nil {
		return nil, wrapStep(ErrIntentCreationFailed, err)
	}

	txHash, err := o.payments.SendPayment(ctx, o.signer, intent.RecipientAddress, data.TicketPriceEGLD)
	if err != nil {
		return nil, err
	}

	// funds have moved; a failure from here on is not reversed
	err = o.backend.VerifyPayment(sess.Token, txHash, intent.PaymentIntentID)
	if err != nil {
		return nil, wrapStep(ErrVerificationFailed, err)
	}

	ticketID, err := o.backend.CreateTicket(sess.Token, main, stars[0], txHash)
	if err != nil {
		return nil, wrapStep(ErrTicketCreationFailed, err)
	}
	if ticketID == "" {
		ticketID = strconv.FormatInt(time.Now().UnixNano()/int64(time.Millisecond), 10)
	}

	activity := &data.TicketActivity{
		ID:    ticketID,
		Date:  time.Now().UTC().Format(time.RFC3339),
		Main:  main,
		Stars: stars,
		Price: data.TicketPriceEGLD,
		TxSig: txHash,
	}

	o.mut.Lock()
	o.activities = append([]*data.TicketActivity{activity}, o.activities...)
	o.selection.Clear()
	o.mut.Unlock()

	o.RefreshProjections()

	log.Info("purchase complete", "ticket", ticketID, "tx", txHash)

	return activity, nil
}

// ReloadActivities replaces the optimistic local list with the backend's
// authoritative one; called on session start
func (o *Orchestrator) ReloadActivities() {
	sess := o.sessions.Current()
	if sess == nil {
		return
	}

	activities, err := o.backend.MyTickets(sess.Token)
	if err != nil {
		log.Warn("can not fetch ticket list", "error", err)
		activities = nil
	}

	o.mut.Lock()
	o.activities = activities
	o.mut.Unlock()
}

// Activities returns a copy of the activity list, newest first
func (o *Orchestrator) Activities() []*data.TicketActivity {
	o.mut.Lock()
	defer o.mut.Unlock()

	return append([]*data.TicketActivity(nil), o.activities...)
}

// RefreshProjections refetches the jackpot and countdown snapshots
func (o *Orchestrator) RefreshProjections() {
	jackpot, err := o.backend.GetJackpot()
	if err != nil {
		log.Warn("can not fetch jackpot", "error", err)
		jackpot = nil
	}

	countdown, err := o.backend.GetCountdown()
	if err != nil {
		log.Warn("can not fetch countdown", "error", err)
		countdown = nil
	}

	o.mut.Lock()
	o.jackpot = jackpot
	o.countdown = countdown
	o.mut.Unlock()
}

// Jackpot returns the last fetched jackpot snapshot, or nil
func (o *Orchestrator) Jackpot() *data.JackpotInfo {
	o.mut.Lock()
	defer o.mut.Unlock()

	return o.jackpot
}

// Countdown returns the last fetched next-draw snapshot, or nil
func (o *Orchestrator) Countdown() *data.CountdownInfo {
	o.mut.Lock()
	defer o.mut.Unlock()

	return o.countdown
}
