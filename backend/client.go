package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/lampochka7181/CryptoEuroMillionsBot/data"
)

var log = logger.GetOrCreate("backend")

// Client talks to the lottery backend. All requests carry JSON bodies and,
// where a token is given, an Authorization bearer header.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient - creates a new backend Client object
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) do(method string, path string, token string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("backend not reachable", "endpoint", path, "error", err)
		return fmt.Errorf("%w: %s", ErrBackendUnreachable, err.Error())
	}
	defer resp.Body.Close()

	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &RequestError{StatusCode: resp.StatusCode}
		errBody := &data.ErrorResponse{}
		if json.Unmarshal(raw, errBody) == nil {
			reqErr.Message = errBody.Message
		}
		log.Debug("backend request failed", "endpoint", path, "status", resp.StatusCode, "message", reqErr.Message)
		return reqErr
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(raw, out)
}

// Me validates a bearer token against GET /auth/me. The token may be empty,
// in which case the call is unauthenticated.
func (c *Client) Me(token string) (*data.TokenResponse, error) {
	res := &data.TokenResponse{}
	err := c.do(http.MethodGet, "/auth/me", token, nil, res)
	if err != nil {
		return nil, err
	}

	return res, nil
}

// WalletConnect exchanges a signed challenge for a token. An empty token with
// a nil error means the backend answered success without issuing one.
func (c *Client) WalletConnect(address string, signature string, message string) (string, error) {
	req := &data.WalletConnectRequest{
		WalletAddress: address,
		Signature:     signature,
		Message:       message,
	}
	res := &data.TokenResponse{}
	err := c.do(http.MethodPost, "/auth/wallet-connect", "", req, res)
	if err != nil {
		return "", err
	}

	return res.AnyToken(), nil
}

// Register creates a backend account for a first-time wallet address
func (c *Client) Register(address string) (string, error) {
	req := &data.RegisterRequest{WalletAddress: address}
	res := &data.TokenResponse{}
	err := c.do(http.MethodPost, "/auth/register", "", req, res)
	if err != nil {
		return "", err
	}

	return res.AnyToken(), nil
}

// CreateIntent asks the backend to track an upcoming payment and returns the
// recipient address the transfer must go to
func (c *Client) CreateIntent(token string, ticketCount int) (*data.PaymentIntent, error) {
	req := &data.CreateIntentRequest{TicketCount: ticketCount}
	res := &data.PaymentIntent{}
	err := c.do(http.MethodPost, "/payments/create-intent", token, req, res)
	if err != nil {
		return nil, err
	}

	return res, nil
}

// VerifyPayment reports the confirmed transfer; the backend decides whether
// it satisfies the intent
func (c *Client) VerifyPayment(token string, transactionHash string, paymentIntentID string) error {
	req := &data.VerifyPaymentRequest{
		TransactionHash: transactionHash,
		PaymentIntentID: paymentIntentID,
	}

	return c.do(http.MethodPost, "/payments/verify", token, req, nil)
}

// CreateTicket registers the number selection against the verified payment
func (c *Client) CreateTicket(token string, numbers []int, powerball int, transactionHash string) (string, error) {
	req := &data.CreateTicketRequest{
		Numbers:         numbers,
		Powerball:       powerball,
		TransactionHash: transactionHash,
	}
	res := &data.CreateTicketResponse{}
	err := c.do(http.MethodPost, "/tickets", token, req, res)
	if err != nil {
		return "", err
	}

	return res.TicketID, nil
}

// MyTickets fetches the authoritative ticket list and converts it to the
// activity shape
func (c *Client) MyTickets(token string) ([]*data.TicketActivity, error) {
	res := &data.MyTicketsResponse{}
	err := c.do(http.MethodGet, "/tickets/my", token, nil, res)
	if err != nil {
		return nil, err
	}

	activities := make([]*data.TicketActivity, 0, len(res.Tickets))
	for _, ticket := range res.Tickets {
		price := ticket.Price
		if price == 0 {
			price = data.TicketPriceEGLD
		}
		activities = append(activities, &data.TicketActivity{
			ID:    ticket.ID,
			Date:  ticket.CreatedAt,
			Main:  ticket.Numbers,
			Stars: []int{ticket.Powerball},
			Price: price,
			TxSig: ticket.TransactionHash,
		})
	}

	return activities, nil
}

// GetJackpot fetches the current jackpot snapshot
func (c *Client) GetJackpot() (*data.JackpotInfo, error) {
	res := &data.JackpotInfo{}
	err := c.do(http.MethodGet, "/pot", "", nil, res)
	if err != nil {
		return nil, err
	}

	return res, nil
}

// GetCountdown fetches the next-draw schedule snapshot
func (c *Client) GetCountdown() (*data.CountdownInfo, error) {
	res := &data.CountdownInfo{}
	err := c.do(http.MethodGet, "/countdown", "", nil, res)
	if err != nil {
		return nil, err
	}

	return res, nil
}

const requestTimeout = 30 * time.Second
