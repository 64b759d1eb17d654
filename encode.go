package xirr

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/xirr/date"
)

// This file contains the code to persist cash flows in a JSON file.
//
// The file is a JSON array of objects:
//
//	[
//	  {"date":"2025-03-23","amount":-16000,"note":"initial deposit"},
//	  {"date":"2025-06-01","amount":12000}
//	]
//
// "date" is an ISO-8601 date (a date-time is accepted, the time is ignored), "amount" is a
// number or a numeric string, "note" is optional.

// ErrFormat is wrapped by every error caused by an invalid cash flow file.
var ErrFormat = errors.New("invalid cash flow file")

// DecodeCashflows reads the cash flow array from r.
func DecodeCashflows(r io.Reader) ([]Cashflow, error) {
	return DecodeCashflowsAt(r, "")
}

// DecodeCashflowsAt reads a JSON document from r and decodes the cash flow array found at the
// JSONPath expression path (e.g. "$.portfolio.flows"). An empty path means the document itself
// is the array.
func DecodeCashflowsAt(r io.Reader, path string) ([]Cashflow, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	if path != "" {
		v, err := jsonpath.Get(path, doc)
		if err != nil {
			return nil, fmt.Errorf("%w: path %q: %w", ErrFormat, path, err)
		}
		doc = v
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: JSON must be a list of cash flow objects", ErrFormat)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no cash flows", ErrFormat)
	}

	cashflows := make([]Cashflow, 0, len(items))
	for i, item := range items {
		c, err := decodeCashflow(item)
		if err != nil {
			return nil, fmt.Errorf("%w: entry #%d: %w", ErrFormat, i, err)
		}
		cashflows = append(cashflows, c)
	}
	return cashflows, nil
}

// decodeCashflow converts a single decoded JSON value into a Cashflow.
func decodeCashflow(item any) (Cashflow, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return Cashflow{}, errors.New("not an object")
	}
	rawDate, hasDate := obj["date"]
	rawAmount, hasAmount := obj["amount"]
	if !hasDate || !hasAmount {
		return Cashflow{}, errors.New(`missing "date" or "amount"`)
	}

	str, ok := rawDate.(string)
	if !ok {
		return Cashflow{}, errors.New("date must be a string")
	}
	on, err := date.Parse(str)
	if err != nil {
		return Cashflow{}, err
	}

	var amount Amount
	switch v := rawAmount.(type) {
	case json.Number:
		amount, err = ParseAmount(v.String())
	case string:
		amount, err = ParseAmount(v)
	default:
		err = errors.New("not a number")
	}
	if err != nil {
		return Cashflow{}, fmt.Errorf("amount is not a valid number: %w", err)
	}

	var note string
	if raw, ok := obj["note"]; ok && raw != nil {
		if note, ok = raw.(string); !ok {
			return Cashflow{}, errors.New("note must be a string")
		}
	}

	return Cashflow{Date: on, Amount: amount, Note: note}, nil
}

// MarshalJSON writes the cash flow with the fields in canonical order.
func (c Cashflow) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", c.Date)
	w.Append("amount", c.Amount)
	w.Optional("note", c.Note)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a single cash flow object.
func (c *Cashflow) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var item any
	if err := dec.Decode(&item); err != nil {
		return err
	}
	v, err := decodeCashflow(item)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// EncodeCashflows writes cashflows as a JSON array, one object per line, in the given order.
func EncodeCashflows(w io.Writer, cashflows []Cashflow) error {
	var b bytes.Buffer
	b.WriteString("[\n")
	for i, c := range cashflows {
		line, err := c.MarshalJSON()
		if err != nil {
			return fmt.Errorf("encoding entry #%d: %w", i, err)
		}
		b.WriteString("  ")
		b.Write(line)
		if i < len(cashflows)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("]\n")
	_, err := w.Write(b.Bytes())
	return err
}

// SampleCashflows returns a small example: a deposit, a withdrawal, a second deposit and the
// current value of the account.
func SampleCashflows() []Cashflow {
	return []Cashflow{
		{Date: date.New(2025, 3, 23), Amount: A(-16000), Note: "initial deposit"},
		{Date: date.New(2025, 6, 1), Amount: A(12000), Note: "withdrawal"},
		{Date: date.New(2025, 8, 11), Amount: A(-700), Note: "deposit"},
		{Date: date.New(2025, 11, 18), Amount: A(4921), Note: "current value including interest"},
	}
}
