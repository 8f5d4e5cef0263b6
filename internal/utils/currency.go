package utils

import (
	"fmt"
	"math"
)

type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

var SupportedCurrencies = map[string]Currency{
	"XOF": {Code: "XOF", Symbol: "FCFA", Name: "West African CFA Franc"},
	"XAF": {Code: "XAF", Symbol: "FCFA", Name: "Central African CFA Franc"},
	"GNF": {Code: "GNF", Symbol: "FG", Name: "Guinean Franc"},
	"MAD": {Code: "MAD", Symbol: "DH", Name: "Moroccan Dirham"},
	"EUR": {Code: "EUR", Symbol: "€", Name: "Euro"},
	"USD": {Code: "USD", Symbol: "$", Name: "US Dollar"},
}

// FormatCurrency renders an amount the way the recovery notices display it:
// CFA-zone and Guinean francs have no decimal places and trail the symbol.
func FormatCurrency(amount float64, currencyCode string) string {
	currency, exists := SupportedCurrencies[currencyCode]
	if !exists {
		currency = SupportedCurrencies[DefaultCurrency]
	}

	amount = math.Round(amount*100) / 100

	switch currency.Code {
	case "XOF", "XAF", "GNF":
		return fmt.Sprintf("%.0f %s", amount, currency.Symbol)
	default:
		return fmt.Sprintf("%s%.2f", currency.Symbol, amount)
	}
}

func CurrencySymbol(currencyCode string) string {
	if currency, exists := SupportedCurrencies[currencyCode]; exists {
		return currency.Symbol
	}
	return SupportedCurrencies[DefaultCurrency].Symbol
}
