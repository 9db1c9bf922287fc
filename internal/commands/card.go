package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/billfold-dev/billfold/internal/auditlog"
	"github.com/billfold-dev/billfold/internal/importer"
	"github.com/billfold-dev/billfold/internal/model"
)

// cardFlags holds the string form inputs of add/edit. Validation runs
// on the assembled row, the same schema the importer uses.
type cardFlags struct {
	name              string
	bank              string
	mobile            string
	cardType          string
	variant           string
	number            string
	expiry            string
	cvv               string
	limit             string
	bill              string
	billDate          string
	dueDate           string
	birthDate         string
	cardPIN           string
	appPIN            string
	ifsc              string
	statementPassword string
}

func (f *cardFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "cardholder name")
	cmd.Flags().StringVar(&f.bank, "bank", "", "bank name")
	cmd.Flags().StringVar(&f.mobile, "mobile", "", "10-digit mobile number")
	cmd.Flags().StringVar(&f.cardType, "type", "", "card type (RUPAY, VISA, MASTER, AMEX)")
	cmd.Flags().StringVar(&f.variant, "variant", "", "card variant")
	cmd.Flags().StringVar(&f.number, "number", "", "16-digit card number")
	cmd.Flags().StringVar(&f.expiry, "expiry", "", "expiry date (MM/YY)")
	cmd.Flags().StringVar(&f.cvv, "cvv", "", "3 or 4 digit CVV")
	cmd.Flags().StringVar(&f.limit, "limit", "", "card limit")
	cmd.Flags().StringVar(&f.bill, "bill", "0", "current bill amount")
	cmd.Flags().StringVar(&f.billDate, "bill-date", "", "bill date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.dueDate, "due-date", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.birthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.cardPIN, "card-pin", "", "4-digit card PIN")
	cmd.Flags().StringVar(&f.appPIN, "app-pin", "", "4-digit app PIN")
	cmd.Flags().StringVar(&f.ifsc, "ifsc", "", "IFSC code")
	cmd.Flags().StringVar(&f.statementPassword, "statement-password", "", "statement password")
}

func (f *cardFlags) row() importer.Row {
	return importer.Row{
		CardholderName:    f.name,
		BankName:          f.bank,
		MobileNumber:      f.mobile,
		CardType:          f.cardType,
		CardVariant:       f.variant,
		CardNumber:        f.number,
		ExpiryDate:        f.expiry,
		CVV:               f.cvv,
		CardLimit:         f.limit,
		BillAmount:        f.bill,
		BillDate:          f.billDate,
		DueDate:           f.dueDate,
		BirthDate:         f.birthDate,
		CardPIN:           f.cardPIN,
		AppPIN:            f.appPIN,
		IFSCCode:          f.ifsc,
		StatementPassword: f.statementPassword,
	}
}

// rowFromCard projects an existing card back into form inputs so edits
// revalidate against the full schema.
func rowFromCard(card model.Card) importer.Row {
	row := importer.Row{
		CardholderName:    card.CardholderName,
		BankName:          card.BankName,
		MobileNumber:      card.MobileNumber,
		CardType:          string(card.CardType),
		CardVariant:       card.CardVariant,
		CardNumber:        card.CardNumber,
		ExpiryDate:        card.ExpiryDate,
		CVV:               card.CVV,
		CardLimit:         card.CardLimit.String(),
		BillAmount:        card.BillAmount.String(),
		BillDate:          card.BillDate.Format("2006-01-02"),
		DueDate:           card.DueDate.Format("2006-01-02"),
		CardPIN:           card.CardPIN,
		AppPIN:            card.AppPIN,
		IFSCCode:          card.IFSCCode,
		StatementPassword: card.StatementPassword,
	}
	if card.BirthDate != nil {
		row.BirthDate = card.BirthDate.Format("2006-01-02")
	}
	return row
}

// validateCardRow runs the field schema on one form row.
func validateCardRow(row importer.Row) (model.Card, error) {
	result := importer.ValidateRows([]importer.Row{row})
	if !result.OK() {
		msgs := make([]string, len(result.Errors))
		for i, e := range result.Errors {
			msgs[i] = e.Field + ": " + e.Message
		}
		return model.Card{}, fmt.Errorf("invalid card: %s", strings.Join(msgs, "; "))
	}
	return result.Cards[0], nil
}

func newAddCommand() *cobra.Command {
	var profile string
	flags := &cardFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd.OutOrStdout(), profile, flags)
		},
	}

	cmd.Flags().StringVar(&profile, "profile", ".", "profile directory")
	flags.register(cmd)
	for _, required := range []string{"name", "bank", "mobile", "type", "number", "expiry", "cvv", "limit", "bill-date", "due-date"} {
		_ = cmd.MarkFlagRequired(required)
	}

	return cmd
}

func runAdd(out io.Writer, profile string, flags *cardFlags) error {
	card, err := validateCardRow(flags.row())
	if err != nil {
		return err
	}

	a, err := openApp(profile)
	if err != nil {
		return err
	}

	added, err := a.store.Add(card)
	if err != nil {
		return err
	}
	a.audit(auditlog.ActionAddCard, added.ID, added.CardholderName+" "+added.MaskedNumber())

	fmt.Fprintf(out, "Added card %s (%s)\n", added.MaskedNumber(), added.ID)
	return nil
}

func newEditCommand() *cobra.Command {
	var profile string
	flags := &cardFlags{}

	cmd := &cobra.Command{
		Use:   "edit <card-id>",
		Short: "Edit an existing card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], profile, flags)
		},
	}

	cmd.Flags().StringVar(&profile, "profile", ".", "profile directory")
	flags.register(cmd)

	return cmd
}

func runEdit(cmd *cobra.Command, cardID, profile string, flags *cardFlags) error {
	a, err := openApp(profile)
	if err != nil {
		return err
	}

	existing, ok := a.store.Get(cardID)
	if !ok {
		return fmt.Errorf("unknown card %s", cardID)
	}

	// Start from the stored card, overlay only the changed flags.
	row := rowFromCard(existing)
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("name", &row.CardholderName, flags.name)
	set("bank", &row.BankName, flags.bank)
	set("mobile", &row.MobileNumber, flags.mobile)
	set("type", &row.CardType, flags.cardType)
	set("variant", &row.CardVariant, flags.variant)
	set("number", &row.CardNumber, flags.number)
	set("expiry", &row.ExpiryDate, flags.expiry)
	set("cvv", &row.CVV, flags.cvv)
	set("limit", &row.CardLimit, flags.limit)
	set("bill", &row.BillAmount, flags.bill)
	set("bill-date", &row.BillDate, flags.billDate)
	set("due-date", &row.DueDate, flags.dueDate)
	set("birth-date", &row.BirthDate, flags.birthDate)
	set("card-pin", &row.CardPIN, flags.cardPIN)
	set("app-pin", &row.AppPIN, flags.appPIN)
	set("ifsc", &row.IFSCCode, flags.ifsc)
	set("statement-password", &row.StatementPassword, flags.statementPassword)

	updated, err := validateCardRow(row)
	if err != nil {
		return err
	}

	// The edit replaces the record wholesale but keeps identity,
	// payments and images.
	updated.ID = existing.ID
	updated.Payments = existing.Payments
	updated.CardImageFront = existing.CardImageFront
	updated.CardImageBack = existing.CardImageBack

	if err := a.store.Update(updated); err != nil {
		return err
	}
	a.audit(auditlog.ActionEditCard, updated.ID, updated.CardholderName+" "+updated.MaskedNumber())

	fmt.Fprintf(cmd.OutOrStdout(), "Updated card %s\n", updated.MaskedNumber())
	return nil
}

func newDeleteCommand() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "delete <card-id>",
		Short: "Delete a card and its payment history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd.OutOrStdout(), profile, args[0])
		},
	}

	cmd.Flags().StringVar(&profile, "profile", ".", "profile directory")

	return cmd
}

func runDelete(out io.Writer, profile, cardID string) error {
	a, err := openApp(profile)
	if err != nil {
		return err
	}

	card, ok := a.store.Get(cardID)
	if !ok {
		return fmt.Errorf("unknown card %s", cardID)
	}

	if err := a.store.Delete(cardID); err != nil {
		return err
	}
	a.audit(auditlog.ActionDeleteCard, cardID, card.CardholderName+" "+card.MaskedNumber())

	fmt.Fprintf(out, "Deleted card %s and %d payment(s)\n", card.MaskedNumber(), len(card.Payments))
	return nil
}
