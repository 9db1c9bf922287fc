package store

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billfold-dev/billfold/internal/model"
)

func TestMigrateRecord_LegacyPaidAmount(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "old-1",
		"cardholderName": "Ritu Sharma",
		"cardType": "VISA",
		"cardNumber": "4111111111111111",
		"expiryDate": "09/27",
		"cvv": "123",
		"billAmount": 1000,
		"paidAmount": 400,
		"dueDate": "2024-04-25T00:00:00Z"
	}`)

	card, err := migrateRecord(raw)
	require.NoError(t, err)

	require.Len(t, card.Payments, 1)
	assert.True(t, card.Payments[0].Amount.Equal(dec("400")))
	assert.True(t, card.Payments[0].Date.Equal(card.DueDate))
	assert.True(t, strings.HasSuffix(card.Payments[0].ID, "-migrated"))

	// Missing billDate falls back to dueDate, missing limit to zero,
	// missing bank/mobile to empty.
	assert.True(t, card.BillDate.Equal(card.DueDate))
	assert.True(t, card.CardLimit.IsZero())
	assert.Empty(t, card.BankName)
	assert.Empty(t, card.MobileNumber)

	assert.Equal(t, model.StatusPartiallyPaid, card.Status())
}

func TestMigrateRecord_LegacyZeroPaidAmount(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "old-2",
		"cardholderName": "Amit Verma",
		"cardType": "AMEX",
		"cardNumber": "3411111111111111",
		"expiryDate": "01/26",
		"cvv": "1234",
		"billAmount": 1000,
		"paidAmount": 0,
		"dueDate": "2024-04-25T00:00:00Z"
	}`)

	card, err := migrateRecord(raw)
	require.NoError(t, err)
	assert.NotNil(t, card.Payments)
	assert.Empty(t, card.Payments)
	assert.Equal(t, model.StatusUnpaid, card.Status())
}

func TestMigrateRecord_LegacyCardImage(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "old-3",
		"cardholderName": "Ritu Sharma",
		"cardType": "VISA",
		"cardNumber": "4111111111111111",
		"expiryDate": "09/27",
		"cvv": "123",
		"billAmount": "0",
		"cardImage": "base64-front",
		"payments": [],
		"billDate": "2024-04-05T00:00:00Z",
		"dueDate": "2024-04-25T00:00:00Z"
	}`)

	card, err := migrateRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, "base64-front", card.CardImageFront)
}

func TestMigrateRecord_CurrentShapeUntouched(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "new-1",
		"cardholderName": "Ritu Sharma",
		"bankName": "HDFC",
		"mobileNumber": "9876543210",
		"cardType": "VISA",
		"cardNumber": "4111111111111111",
		"expiryDate": "09/27",
		"cvv": "123",
		"cardLimit": "50000",
		"billAmount": "1000",
		"billDate": "2024-04-05T00:00:00Z",
		"dueDate": "2024-04-25T00:00:00Z",
		"payments": [
			{"id": "p1", "amount": "250", "date": "2024-04-10T00:00:00Z", "note": "upi"}
		]
	}`)

	card, err := migrateRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, "new-1", card.ID)
	require.Len(t, card.Payments, 1)
	assert.Equal(t, "p1", card.Payments[0].ID)
	assert.True(t, card.BillDate.Equal(time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)))
}

func TestMigrateRecord_Unreadable(t *testing.T) {
	_, err := migrateRecord(json.RawMessage(`"not an object"`))
	assert.Error(t, err)
}

func TestOpen_MigratesLegacyRecordsOnLoad(t *testing.T) {
	blob := NewMemBlob()
	require.NoError(t, blob.Set(Key, []byte(`[
		{"id": "old-1", "cardholderName": "Ritu", "cardType": "VISA",
		 "cardNumber": "4111111111111111", "expiryDate": "09/27", "cvv": "123",
		 "billAmount": 1000, "paidAmount": 1000, "dueDate": "2024-04-25T00:00:00Z"}
	]`)))

	s := Open(blob, quietLogger())
	require.Equal(t, 1, s.Len())
	card, ok := s.Get("old-1")
	require.True(t, ok)
	assert.Equal(t, model.StatusPaid, card.Status())
}
