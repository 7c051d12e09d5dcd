// Package locale holds the user-facing strings the aggregation layer produces:
// month/year section titles, empty-state texts and number separators.
package locale

import (
	"fmt"

	"golang.org/x/text/language"
)

// Locale is a supported display language.
type Locale struct {
	Tag language.Tag

	months    [12]string
	monthYear string // fmt pattern: month name, year

	// DecimalSep and GroupSep are used by money formatting.
	DecimalSep string
	GroupSep   string

	NoTransactions string
	NoCategories   string
	NoExpenses     string
	NoGoals        string
}

var (
	English = Locale{
		Tag: language.English,
		months: [12]string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		monthYear:      "%s %d",
		DecimalSep:     ".",
		GroupSep:       ",",
		NoTransactions: "No transactions found.",
		NoCategories:   "Create a category",
		NoExpenses:     "No expenses this month",
		NoGoals:        "No goals yet",
	}

	BrazilianPortuguese = Locale{
		Tag: language.BrazilianPortuguese,
		months: [12]string{
			"janeiro", "fevereiro", "março", "abril", "maio", "junho",
			"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
		},
		monthYear:      "%s de %d",
		DecimalSep:     ",",
		GroupSep:       ".",
		NoTransactions: "Nenhuma transação encontrada.",
		NoCategories:   "Crie uma Categoria",
		NoExpenses:     "Sem despesas neste mês",
		NoGoals:        "Sem metas cadastradas ainda",
	}

	Spanish = Locale{
		Tag: language.Spanish,
		months: [12]string{
			"enero", "febrero", "marzo", "abril", "mayo", "junio",
			"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
		},
		monthYear:      "%s de %d",
		DecimalSep:     ",",
		GroupSep:       ".",
		NoTransactions: "No se encontraron transacciones.",
		NoCategories:   "Crea una categoría",
		NoExpenses:     "Sin gastos este mes",
		NoGoals:        "Aún no hay metas",
	}
)

// English must stay first: the matcher falls back to index 0.
var supported = []Locale{English, BrazilianPortuguese, Spanish}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(supported))
	for i, l := range supported {
		tags[i] = l.Tag
	}
	return language.NewMatcher(tags)
}()

// Lookup returns the closest supported locale for a BCP 47 tag such as
// "pt-BR". Unknown or malformed tags get English.
func Lookup(tag string) Locale {
	l, _ := Supported(tag)
	return l
}

// Supported is Lookup, also reporting whether tag matched a supported locale.
func Supported(tag string) (Locale, bool) {
	t, err := language.Parse(tag)
	if err != nil {
		return English, false
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return English, false
	}
	return supported[idx], true
}

// MonthName returns the name of a 0-based month.
func (l Locale) MonthName(month int) string {
	if month < 0 || month > 11 {
		return ""
	}
	return l.months[month]
}

// MonthYear returns a section title like "March 2024" or "março de 2024".
func (l Locale) MonthYear(year, month int) string {
	return fmt.Sprintf(l.monthYear, l.MonthName(month), year)
}

// String returns the BCP 47 tag.
func (l Locale) String() string {
	return l.Tag.String()
}
