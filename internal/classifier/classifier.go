// Package classifier assigns a spending category to an expense from its
// free-text description via ordered keyword lookup.
package classifier

import "strings"

// Uncategorized is the label for descriptions matching no keyword. It is a
// valid category value, not an error state.
const Uncategorized = "Uncategorized"

type category struct {
	Name     string
	Keywords []string
}

// categoryTable is scanned in declaration order and, within a category, in
// keyword order. A description can match keywords from several categories;
// the first declared one wins, so reordering changes observable behavior.
var categoryTable = []category{
	{"Abbonamenti e Servizi Digitali", []string{
		"Disney+", "Netflix", "Google One", "Amazon", "g2a.com",
	}},
	{"Supermercati e Alimentari", []string{
		"Carrefour", "Lidl", "Sole 365", "Green Garden", "Pantry", "Market",
	}},
	{"Trasporti", []string{
		"Uber", "FREE NOW", "Trenitalia", "Taxi", "Flight", "Airport",
	}},
	{"Ristorazione e Bar", []string{
		"McDonald's", "Burger King", "KFC", "Il Sauro Ristorante", "S. Paolo Ristorazione",
		"Vino E Biga", "Dorys Caffe", "Bar Big", "Cannavina Bar", "Noemy Cafe", "Big Bang Sandwich",
		"Young Pizza", "Gruppo la Piadineria", "Mastroianni", "Mariano Balato",
	}},
	{"Pagamenti e Trasferimenti", []string{
		"Transfer to Revolut user", "Transfer from Revolut user", "Payment from Riccio Giuseppe",
		"Payment from Porto Vincenzo", "Payment from Iuliani Antonio", "Payment from Mangopay",
		"Balance migration", "SumUp",
	}},
	{"Shopping e Abbigliamento", []string{
		"Zalando", "Douglas", "Vinted", "Proshop",
	}},
	{"Alloggi e Viaggi", []string{
		"Airbnb", "Hotel", "Booking", "Vacation",
	}},
	{"Varie", []string{
		"Samnite", "Samnet", "Margroup Societa", "Colella Group", "Fratelli Della Minerva",
		"Officinastu", "Studiouno Grafhic Foto", "Mne 95016279moneynet",
	}},
	{"Carburante e Auto", []string{
		"Gas", "Fuel", "Petrol",
	}},
}

// Classify returns the category whose first keyword (in table order) is a
// case-insensitive substring of the description, or Uncategorized.
func Classify(description string) string {
	if strings.TrimSpace(description) == "" {
		return Uncategorized
	}

	descLower := strings.ToLower(description)
	for _, cat := range categoryTable {
		for _, kw := range cat.Keywords {
			if strings.Contains(descLower, strings.ToLower(kw)) {
				return cat.Name
			}
		}
	}
	return Uncategorized
}
