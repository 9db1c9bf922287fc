package store

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/billfold-dev/billfold/internal/id"
	"github.com/billfold-dev/billfold/internal/model"
)

// legacyCard carries the fields of older persisted record shapes on
// top of the current one. Early versions stored a single paidAmount
// number instead of a payment list and a single cardImage.
type legacyCard struct {
	model.Card
	PaidAmount *decimal.Decimal `json:"paidAmount,omitempty"`
	CardImage  string           `json:"cardImage,omitempty"`
}

// migrateRecord decodes one stored record, coercing older shapes into
// the current one. The transform is best-effort and total: missing
// fields get defaults, nothing is written back until the next save.
func migrateRecord(raw json.RawMessage) (model.Card, error) {
	var lc legacyCard
	if err := json.Unmarshal(raw, &lc); err != nil {
		return model.Card{}, fmt.Errorf("decoding card record: %w", err)
	}

	card := lc.Card

	// paidAmount -> synthesized payment list.
	if card.Payments == nil && lc.PaidAmount != nil {
		card.Payments = []model.Payment{}
		if lc.PaidAmount.IsPositive() {
			card.Payments = append(card.Payments, model.Payment{
				ID:     id.New() + "-migrated",
				Amount: *lc.PaidAmount,
				Date:   card.DueDate,
			})
		}
	}
	if card.Payments == nil {
		card.Payments = []model.Payment{}
	}

	// cardImage -> cardImageFront.
	if lc.CardImage != "" && card.CardImageFront == "" {
		card.CardImageFront = lc.CardImage
	}

	if card.BillDate.IsZero() {
		card.BillDate = card.DueDate
	}

	return card, nil
}
