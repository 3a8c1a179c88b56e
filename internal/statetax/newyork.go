package statetax

import (
	"github.com/shopspring/decimal"
	"github.com/ziziou272/taxlens/internal/domain"
)

// NewYork applies the state brackets plus, where the residency facts call for
// them, the NYC resident add-on tax and the Yonkers resident or nonresident
// surcharge. Both add-ons are computed on NY-sourced income.
type NewYork struct{}

func (NewYork) Code() domain.StateCode { return domain.StateNY }

func (NewYork) Compute(p *domain.TaxProfile, income StateIncome, year *domain.TaxYear) (domain.StateTaxResult, error) {
	params := year.States

	taxable := income.Total().Sub(params.NewYorkStandardDeduction[p.FilingStatus])
	if taxable.LessThan(decimal.Zero) {
		taxable = decimal.Zero
	}

	stateTax := progressiveTax(params.NewYorkBrackets[p.FilingStatus], taxable)

	surtax := decimal.Zero
	note := ""
	if income.Residency.NYCResident {
		surtax = surtax.Add(progressiveTax(params.NYCBrackets[p.FilingStatus], taxable))
		note = "includes NYC resident tax"
	}
	switch {
	case income.Residency.YonkersResident:
		surtax = surtax.Add(stateTax.Mul(params.YonkersResidentRate))
		note = appendNote(note, "includes Yonkers resident surcharge")
	case income.Residency.WorksInYonkers:
		surtax = surtax.Add(income.Wages.Mul(params.YonkersNonresidentRate))
		note = appendNote(note, "includes Yonkers nonresident earnings tax")
	}

	return domain.StateTaxResult{
		State:             domain.StateNY,
		ApportionedIncome: income.Total(),
		IncomeTax:         stateTax,
		Surtax:            surtax,
		Total:             stateTax.Add(surtax),
		Note:              note,
	}, nil
}

func appendNote(existing, added string) string {
	if existing == "" {
		return added
	}
	return existing + "; " + added
}
