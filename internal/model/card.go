package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CardType is the card network.
type CardType string

const (
	CardTypeVisa   CardType = "VISA"
	CardTypeMaster CardType = "MASTER"
	CardTypeAmex   CardType = "AMEX"
	CardTypeRupay  CardType = "RUPAY"
)

// CardTypes lists the accepted card networks.
var CardTypes = []CardType{CardTypeVisa, CardTypeMaster, CardTypeAmex, CardTypeRupay}

// ValidCardType reports whether s names a known card network.
func ValidCardType(s string) bool {
	for _, t := range CardTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// Payment is a single recorded payment against a card's current bill.
type Payment struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
	Note   string          `json:"note,omitempty"`
}

// Card is one credit card record. Payments belong exclusively to their
// card and are removed with it.
type Card struct {
	ID                string          `json:"id"`
	CardholderName    string          `json:"cardholderName"`
	BankName          string          `json:"bankName"`
	MobileNumber      string          `json:"mobileNumber"`
	CardType          CardType        `json:"cardType"`
	CardVariant       string          `json:"cardVariant,omitempty"`
	CardNumber        string          `json:"cardNumber"` // 16 digits
	ExpiryDate        string          `json:"expiryDate"` // MM/YY
	CVV               string          `json:"cvv"`
	CardLimit         decimal.Decimal `json:"cardLimit"`
	BillAmount        decimal.Decimal `json:"billAmount"`
	BillDate          time.Time       `json:"billDate"`
	DueDate           time.Time       `json:"dueDate"`
	Payments          []Payment       `json:"payments"`
	CardImageFront    string          `json:"cardImageFront,omitempty"` // base64 blob
	CardImageBack     string          `json:"cardImageBack,omitempty"`  // base64 blob
	CardPIN           string          `json:"cardPin,omitempty"`
	AppPIN            string          `json:"appPin,omitempty"`
	BirthDate         *time.Time      `json:"birthDate,omitempty"`
	IFSCCode          string          `json:"ifscCode,omitempty"`
	StatementPassword string          `json:"statementPassword,omitempty"`
}

// MaskedNumber returns the card number as "...1234".
func (c Card) MaskedNumber() string {
	if len(c.CardNumber) < 4 {
		return "..." + c.CardNumber
	}
	return "..." + c.CardNumber[len(c.CardNumber)-4:]
}
