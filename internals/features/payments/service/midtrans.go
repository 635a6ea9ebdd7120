package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

/* =========================================================
   Gateway contract
========================================================= */

// CheckoutRequest: data yang dibutuhkan untuk membuat satu sesi Snap.
type CheckoutRequest struct {
	OrderID        string
	Amount         int64
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	PackageID      string
	PackageName    string
	PassengerCount int
	BookingCode    string
}

type Checkout struct {
	Token       string
	RedirectURL string
}

type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)
}

/* =========================================================
   Midtrans Snap
========================================================= */

// maksimum panjang item name dari Midtrans
const itemNameMaxLen = 50

type SnapOptions struct {
	ServerKey     string
	UseProduction bool
	FinishURL     string
	ExpiryMinutes int
}

type SnapGateway struct {
	client snap.Client
	opts   SnapOptions
}

// NewSnapGateway dipanggil sekali saat bootstrap, lalu di-inject ke service.
func NewSnapGateway(opts SnapOptions) *SnapGateway {
	g := &SnapGateway{opts: opts}
	if opts.UseProduction {
		g.client.New(opts.ServerKey, midtrans.Production)
	} else {
		g.client.New(opts.ServerKey, midtrans.Sandbox)
	}
	return g
}

func (g *SnapGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snapReq, err := BuildSnapRequest(req, g.opts)
	if err != nil {
		return nil, err
	}

	resp, mErr := g.client.CreateTransaction(snapReq)
	if mErr != nil {
		return nil, fmt.Errorf("midtrans create transaction: %w", mErr)
	}
	if resp == nil || resp.Token == "" {
		return nil, errors.New("midtrans create transaction: empty token")
	}
	return &Checkout{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

// BuildSnapRequest: gross = total, satu item dengan harga satuan round(total/pax) x pax.
func BuildSnapRequest(req CheckoutRequest, opts SnapOptions) (*snap.Request, error) {
	if req.Amount <= 0 {
		return nil, errors.New("invalid amount")
	}
	if strings.TrimSpace(req.OrderID) == "" {
		return nil, errors.New("order id is required")
	}
	pax := req.PassengerCount
	if pax <= 0 {
		pax = 1
	}
	if pax > math.MaxInt32 {
		return nil, errors.New("passenger count out of range")
	}

	out := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.Amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.CustomerName,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       defaultString(req.PackageID, "tour-package"),
				Name:     truncateRunes(req.PackageName, itemNameMaxLen),
				Price:    UnitPrice(req.Amount, pax),
				Qty:      int32(pax),
				Category: "Tour",
			},
		},
		CreditCard:   &snap.CreditCardDetails{Secure: true},
		CustomField1: req.BookingCode,
	}

	if opts.FinishURL != "" {
		out.Callbacks = &snap.Callbacks{Finish: opts.FinishURL}
	}
	if opts.ExpiryMinutes > 0 {
		out.Expiry = &snap.ExpiryDetails{Unit: "minute", Duration: int64(opts.ExpiryMinutes)}
	}
	return out, nil
}

// UnitPrice = round(total / pax).
func UnitPrice(total int64, pax int) int64 {
	if pax <= 0 {
		pax = 1
	}
	return int64(math.Round(float64(total) / float64(pax)))
}

/* =========================================================
   Utils
========================================================= */

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n])
}

func defaultString(s string, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
