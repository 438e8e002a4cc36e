package domain

import (
	"errors"
	"time"
)

var ErrInvalidAmount = errors.New("amount must be greater than zero")
var ErrDuplicateInvestment = errors.New("investment already recorded")
var ErrInvalidSignature = errors.New("invalid webhook signature")

// Investment is one ledger row, keyed by the gateway's payment intent.
type Investment struct {
	ID              string    `json:"id" bson:"_id"`
	PaymentIntentID string    `json:"paymentIntentId" bson:"payment_intent_id"`
	ProjectID       string    `json:"projectId" bson:"project_id"`
	UserID          string    `json:"userId" bson:"user_id"`
	Amount          int64     `json:"amount" bson:"amount"`
	Currency        string    `json:"currency" bson:"currency"`
	// Funded is set once the amount has been added to the project total.
	Funded          bool      `json:"-" bson:"funded"`
	CreatedAt       time.Time `json:"createdAt" bson:"created_at"`
}

// PaymentIntent is the subset of a gateway intent the platform needs.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	ProjectID    string
	UserID       string
}

const EventPaymentSucceeded = "payment_intent.succeeded"

// PaymentEvent is a verified webhook event.
type PaymentEvent struct {
	ID     string
	Type   string
	Intent PaymentIntent
}
