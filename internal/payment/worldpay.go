// Package payment authorizes card payments through the Worldpay Access API.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/config"
)

const (
	contentType    = "application/vnd.worldpay.payments-v7+json"
	authorizePath  = "/payments/authorizations"
	requestTimeout = 30 * time.Second
	narrativeLimit = 24
)

// Card is the raw card input from the customer. Number may contain spaces
// or dashes.
type Card struct {
	Type   string
	Number string
	Expiry string
	CVC    string
}

// Result is the outcome of a payment attempt. Success is false for both
// validation failures and gateway declines; Message is customer-facing.
type Result struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	TransactionID   string `json:"transaction_id,omitempty"`
	WorldpayOutcome string `json:"worldpay_outcome,omitempty"`
	CardUsed        string `json:"card_used,omitempty"`
}

// Client talks to a single Worldpay merchant entity.
type Client struct {
	cfg  config.WorldpayConfig
	http *http.Client
	log  *slog.Logger
}

func NewClient(cfg config.WorldpayConfig, log *slog.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: requestTimeout},
		log:  log,
	}
}

var digitsOnly = regexp.MustCompile(`^\d{16}$`)

// ProcessPayment validates the card locally, then submits an authorization
// for amount (major currency units) with narrative drawn from productName.
// Failures are reported through Result, not the error return; the error is
// reserved for programming mistakes.
func (c *Client) ProcessPayment(ctx context.Context, card Card, amount float64, productName string) Result {
	cardType := strings.TrimSpace(card.Type)
	switch strings.ToLower(cardType) {
	case "visa", "mastercard":
	default:
		return Result{Message: "Invalid card type. Only Visa and Mastercard are accepted."}
	}

	number := strings.NewReplacer(" ", "", "-", "").Replace(card.Number)
	if !digitsOnly.MatchString(number) {
		return Result{Message: "Invalid card number format."}
	}

	month, year, ok := parseExpiry(card.Expiry)
	if !ok {
		return Result{Message: "Invalid expiry date. Please use MM/YY format."}
	}

	cvc := strings.TrimSpace(card.CVC)
	if len(cvc) < 3 || len(cvc) > 4 || !allDigits(cvc) {
		return Result{Message: "Invalid CVC code."}
	}

	ref := uuid.NewString()
	body := authorizationRequest{
		TransactionReference: ref,
		Merchant:             merchant{Entity: c.cfg.MerchantEntity},
		Instruction: instruction{
			Narrative: narrative{Line1: truncate(productName, narrativeLimit)},
			Value: value{
				Currency: "USD",
				Amount:   int64(amount*100 + 0.5),
			},
			PaymentInstrument: paymentInstrument{
				Type:       "card/plain",
				CardNumber: number,
				CardExpiryDate: expiryDate{
					Month: month,
					Year:  year,
				},
				CVC: cvc,
			},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Result{Message: "An unexpected payment error occurred."}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.cfg.BaseURL, "/")+authorizePath, bytes.NewReader(payload))
	if err != nil {
		return Result{Message: "An unexpected payment error occurred."}
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentType)

	c.log.Info("submitting payment authorization",
		slog.String("transaction_ref", ref),
		slog.Int64("amount_minor", body.Instruction.Value.Amount))

	resp, err := c.http.Do(req)
	if err != nil {
		var urlErr interface{ Timeout() bool }
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return Result{Message: "Payment gateway timed out. Please try again."}
		}
		return Result{Message: "Unable to reach payment gateway. Please try again later."}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Message: "An unexpected payment error occurred."}
	}

	return c.classify(resp.StatusCode, raw, ref, cardType, number)
}

func (c *Client) classify(status int, raw []byte, ref, cardType, number string) Result {
	var parsed struct {
		Outcome          string `json:"outcome"`
		ErrorName        string `json:"errorName"`
		Message          string `json:"message"`
		ValidationErrors []struct {
			Message string `json:"message"`
		} `json:"validationErrors"`
	}
	_ = json.Unmarshal(raw, &parsed)

	cardUsed := fmt.Sprintf("%s ending in %s", cardType, number[len(number)-4:])

	switch {
	case (status == http.StatusOK || status == http.StatusCreated) && parsed.Outcome == "authorized":
		return Result{
			Success:         true,
			Message:         "Payment authorized and settled successfully via WorldPay.",
			TransactionID:   ref,
			WorldpayOutcome: parsed.Outcome,
			CardUsed:        cardUsed,
		}
	case status == http.StatusUnauthorized:
		return Result{Message: "Payment gateway authentication failed. Please contact support."}
	case status == http.StatusBadRequest:
		details := parsed.Message
		if details == "" && len(parsed.ValidationErrors) > 0 {
			details = parsed.ValidationErrors[0].Message
		}
		if details == "" {
			details = parsed.ErrorName
		}
		return Result{Message: fmt.Sprintf("Payment validation error: %s", details)}
	case parsed.Outcome == "refused":
		return Result{
			Message:         "Payment was declined by your card issuer. Please try a different card.",
			WorldpayOutcome: parsed.Outcome,
		}
	default:
		c.log.Warn("unexpected gateway response", slog.Int("status", status))
		return Result{Message: fmt.Sprintf("Payment was not authorized (HTTP %d). Please try again.", status)}
	}
}

func parseExpiry(expiry string) (month, year int, ok bool) {
	parts := strings.Split(strings.TrimSpace(expiry), "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[0])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, false
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return m, y + 2000, true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

type authorizationRequest struct {
	TransactionReference string      `json:"transactionReference"`
	Merchant             merchant    `json:"merchant"`
	Instruction          instruction `json:"instruction"`
}

type merchant struct {
	Entity string `json:"entity"`
}

type instruction struct {
	Narrative         narrative         `json:"narrative"`
	Value             value             `json:"value"`
	PaymentInstrument paymentInstrument `json:"paymentInstrument"`
}

type narrative struct {
	Line1 string `json:"line1"`
}

type value struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

type paymentInstrument struct {
	Type           string     `json:"type"`
	CardNumber     string     `json:"cardNumber"`
	CardExpiryDate expiryDate `json:"cardExpiryDate"`
	CVC            string     `json:"cvc"`
}

type expiryDate struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}
