package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// BalanceSide indicates the debit or credit side of an account or line.
type BalanceSide string

const (
	Debit  BalanceSide = "DEBIT"
	Credit BalanceSide = "CREDIT"
)

// Account is an entry in the chart of accounts. Once referenced by a posted
// journal entry only IsActive may change; accounts are never hard-deleted.
type Account struct {
	Code          string      `json:"code"` // Primary key, unique reference id
	Name          string      `json:"name"`
	AccountType   AccountType `json:"accountType"`
	NormalBalance BalanceSide `json:"normalBalance"` // Side on which the balance ordinarily increases
	IsActive      bool        `json:"isActive"`
	AuditFields
}
