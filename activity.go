package kapgain

import (
	"slices"
	"strings"
)

// ActivityType is a typed string for identifying brokerage statement activities.
type ActivityType string

// Activity types that affect the lot ledger.
const (
	Buy  ActivityType = "BUY"
	Sell ActivityType = "SELL"
	// SSO is a stock spin-off receipt: shares arriving with no independent
	// cost basis at receipt time.
	SSO ActivityType = "SSO"
	// SSP is a stock spin-off surrender/resolution pair that rescales the
	// basis of the remaining lots once the spin-off terms are known.
	SSP ActivityType = "SSP"
	// MAS is a merger-and-acquisition share exchange, handled with the same
	// surrender/resolution mechanism as SSP.
	MAS ActivityType = "MAS"
)

// ReceivedDividendTypes lists the dividend activities paid out to the account.
var ReceivedDividendTypes = []ActivityType{"DIV", "DIVCGL", "DIVCGS", "DIVROC", "DIVTXEX"}

// TaxDividendTypes lists the dividend withholding activities.
var TaxDividendTypes = []ActivityType{"DIVNRA", "DIVFT", "DIVTW"}

// lotTypes are the activities the calculator dispatches on.
var lotTypes = []ActivityType{Buy, Sell, SSO, SSP, MAS}

// Supported reports whether the activity type is understood by the system.
// Statements containing any unsupported type still export, but the sales
// calculation is withheld: tax figures computed without understanding every
// activity's effect on the lots would be unreliable.
func (t ActivityType) Supported() bool {
	return slices.Contains(lotTypes, t) ||
		slices.Contains(ReceivedDividendTypes, t) ||
		slices.Contains(TaxDividendTypes, t)
}

// Activity is a single trade event from a brokerage statement. It is
// immutable input: the exchange rate fields are stamped by the rate table
// before the activity reaches the calculator.
type Activity struct {
	Symbol      string
	Description string // instrument description from the statement
	Company     string
	Type        ActivityType
	TradeDate   Date
	SettleDate  Date
	Quantity    Quantity // signed; the sign encodes direction for SSP/MAS
	Price       Money    // unit price in the trade currency
	Amount      Money    // total statement amount in the trade currency
	Rate        Rate     // exchange rate to the reporting currency
	RateDate    Date     // publication date of the rate actually used
}

// NormalizedSymbol strips the ".OLD" suffix some statement sources use to
// disambiguate a superseded ticker during a corporate action.
func (a Activity) NormalizedSymbol() string {
	return strings.ReplaceAll(a.Symbol, ".OLD", "")
}

// UnsupportedActivityTypes returns the distinct activity types present in the
// statements that the system does not understand, in order of first
// appearance.
func UnsupportedActivityTypes(activities []Activity) []ActivityType {
	var unsupported []ActivityType
	for _, a := range activities {
		if a.Type.Supported() {
			continue
		}
		if !slices.Contains(unsupported, a.Type) {
			unsupported = append(unsupported, a.Type)
		}
	}
	return unsupported
}
