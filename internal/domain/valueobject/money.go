package valueobject

import (
	"fmt"
	"strings"

	"github.com/ignatzorin/freelancehub-backend/internal/pkg/apperror"
)

const DefaultCurrency = "INR"

type Money struct {
	Amount   float64
	Currency string
}

func NewMoney(amount float64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, apperror.New(apperror.ErrCodeValidation, "amount cannot be negative")
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{Amount: amount, Currency: strings.ToUpper(currency)}, nil
}

func (m Money) IsPositive() bool {
	return m.Amount > 0
}

func (m Money) String() string {
	return fmt.Sprintf("%s %.2f", m.Currency, m.Amount)
}
