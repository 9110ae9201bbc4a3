package domain

// CustomerRecord is a validated customer row consumed by the scoring core.
// Corresponds to the customers table.
type CustomerRecord struct {
	CustomerID          string  // unique within a batch
	Age                 int     // years, >= 18 after validation
	MonthlyIncome       float64 // > 0 after validation
	AverageBalance      float64 // clamped to >= 0
	MonthlyTransactions int     // transactions per month
	Delinquencies12m    int     // late payments in the trailing 12 months, clamped to >= 0
	TenureMonths        int     // months as a customer

	// Carried from the data source, never scored.
	UsesOverdraft bool
	CurrentLimit  int64
}

// RawCustomer is a customer row as delivered by a data source.
// Nil required fields are reported as missing during extraction.
type RawCustomer struct {
	CustomerID          *string
	Age                 *int
	MonthlyIncome       *float64
	AverageBalance      *float64
	MonthlyTransactions *int
	Delinquencies12m    *int
	TenureMonths        *int

	UsesOverdraft *bool  // optional
	CurrentLimit  *int64 // optional
}

// CustomerBatch is the full in-memory table handed over by a data source.
type CustomerBatch struct {
	Columns []string // schema declared by the source
	Rows    []RawCustomer
}

// Column names of the customer schema.
const (
	ColumnCustomerID          = "customer_id"
	ColumnAge                 = "age"
	ColumnMonthlyIncome       = "monthly_income"
	ColumnAverageBalance      = "average_balance"
	ColumnMonthlyTransactions = "monthly_transactions"
	ColumnDelinquencies12m    = "delinquencies_12m"
	ColumnTenureMonths        = "tenure_months"
	ColumnUsesOverdraft       = "uses_overdraft"
	ColumnCurrentLimit        = "current_limit"
)

// RequiredColumns lists the columns every batch must provide.
func RequiredColumns() []string {
	return []string{
		ColumnCustomerID,
		ColumnAge,
		ColumnMonthlyIncome,
		ColumnAverageBalance,
		ColumnMonthlyTransactions,
		ColumnDelinquencies12m,
		ColumnTenureMonths,
	}
}

// AllColumns lists required and optional columns in schema order.
func AllColumns() []string {
	return append(RequiredColumns(), ColumnUsesOverdraft, ColumnCurrentLimit)
}
