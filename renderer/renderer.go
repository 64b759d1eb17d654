// Package renderer renders solver results as markdown.
package renderer

import (
	"bytes"
	"fmt"
	"math"

	"github.com/etnz/xirr"
	md "github.com/nao1215/markdown"
	"github.com/samber/lo"
)

// Report is everything needed to present a solved rate.
type Report struct {
	Source    string          // where the cash flows come from, e.g. a file name
	Currency  string          // ISO 4217 code used to format the amounts, may be empty
	Cashflows []xirr.Cashflow // in any order
	Result    xirr.Result
}

// RenderReport renders the report as a markdown document: the rate, the solver diagnostics and
// the table of cash flows with their present value at the rate.
func RenderReport(r *Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := "Internal Rate of Return"
	if r.Source != "" {
		title = fmt.Sprintf("Internal Rate of Return of %s", r.Source)
	}
	doc.H1(title)
	doc.PlainText(fmt.Sprintf("Annualized rate: %s", md.Bold(r.Result.Rate.String())))
	doc.PlainText("")

	doc.H2("Solver")
	doc.BulletList(solverLines(r.Result)...)

	cashflows := xirr.Sort(r.Cashflows)
	if len(cashflows) == 0 {
		return doc.String()
	}

	doc.H2("Cash Flows")
	start := cashflows[0].Date
	rate := float64(r.Result.Rate)
	var total xirr.Amount
	var totalPV float64
	rows := lo.Map(cashflows, func(c xirr.Cashflow, _ int) []string {
		years := float64(c.Date.DaysSince(start)) / xirr.DaysPerYear
		pv := c.Amount.Float64() / math.Pow(1+rate, years)
		total = total.Add(c.Amount)
		totalPV += pv
		return []string{
			c.Date.String(),
			fmt.Sprintf("%.4f", years),
			c.Amount.Format(r.Currency),
			xirr.A(pv).Format(r.Currency),
			c.Note,
		}
	})
	rows = append(rows, []string{
		md.Bold("Total"),
		"",
		md.Bold(total.Format(r.Currency)),
		md.Bold(xirr.A(totalPV).Format(r.Currency)),
		"",
	})

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Date", "Years", "Amount", "Present Value", "Note"},
		Rows:   rows,
	})

	return doc.String()
}

// solverLines describes how the rate was found.
func solverLines(res xirr.Result) []string {
	switch res.Stage {
	case xirr.StageNewton:
		return []string{
			fmt.Sprintf("Newton-Raphson converged in %d iteration(s).", res.Iterations),
		}
	default:
		return []string{
			fmt.Sprintf("Fallback: %s.", res.Fallback),
			fmt.Sprintf("Bracketed solver converged in %d iteration(s) within %v.", res.Iterations, res.Bracket),
		}
	}
}

// RenderFailure renders a markdown explanation of a solver error with a remedy for the
// error kind.
func RenderFailure(source string, err error) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := "The rate could not be computed"
	if source != "" {
		title = fmt.Sprintf("The rate of %s could not be computed", source)
	}
	doc.H1(title)
	doc.PlainText(err.Error())
	doc.PlainText("")
	doc.PlainText(Remedy(err))
	return doc.String()
}

// Remedy returns a short advice to fix the cause of a solver error.
func Remedy(err error) string {
	switch xirr.ErrorKind(err) {
	case "insufficient_data":
		return "Add cash flows: at least two dated payments are needed."
	case "no_sign_change":
		return "Check the cash flows: there must be at least one negative amount (money invested) and one positive amount (money received)."
	case "no_bracket_found":
		return "Try another starting guess (-guess) or widen the scan range (XIRR_SCAN_MIN, XIRR_SCAN_MAX)."
	case "solve_failed":
		return "Increase the iteration budget (XIRR_BRENT_MAX_ITERATIONS) or loosen the tolerance (XIRR_TOLERANCE)."
	case "invalid_options":
		return "Check the solver configuration (XIRR_* environment variables)."
	default:
		return "Check the cash flow file."
	}
}
