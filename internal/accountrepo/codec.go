package accountrepo

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/go-petr/pet-atm/internal/domain"
	"github.com/goccy/go-json"
)

// schemaVersion is the version of the on-disk document layout.
const schemaVersion = 1

// text is stored as a plain JSON string when it is valid UTF-8 and as
// {"base64": "..."} otherwise, so arbitrary bytes survive a round trip.
type text string

type rawText struct {
	Base64 []byte `json:"base64"`
}

func (t text) MarshalJSON() ([]byte, error) {
	if utf8.ValidString(string(t)) {
		return json.Marshal(string(t))
	}

	return json.Marshal(rawText{Base64: []byte(t)})
}

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '{' {
		var raw rawText
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}

		*t = text(raw.Base64)

		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*t = text(s)

	return nil
}

// amount is stored as a JSON number when finite and as "NaN", "+Inf" or "-Inf" otherwise.
type amount float64

func (a amount) MarshalJSON() ([]byte, error) {
	f := float64(a)
	s := strconv.FormatFloat(f, 'g', -1, 64)

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return json.Marshal(s)
	}

	return []byte(s), nil
}

func (a *amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("decode balance %q: %w", s, err)
	}

	*a = amount(f)

	return nil
}

type fileAccount struct {
	AccountNumber text   `json:"account_number"`
	PIN           text   `json:"pin"`
	Balance       amount `json:"balance"`
	Transactions  []text `json:"transactions"`
}

type fileDocument struct {
	Version  int           `json:"version"`
	Accounts []fileAccount `json:"accounts"`
}

func encode(accounts []domain.Account) ([]byte, error) {
	doc := fileDocument{
		Version:  schemaVersion,
		Accounts: make([]fileAccount, 0, len(accounts)),
	}

	for _, a := range accounts {
		transactions := make([]text, 0, len(a.Transactions))
		for _, entry := range a.Transactions {
			transactions = append(transactions, text(entry))
		}

		doc.Accounts = append(doc.Accounts, fileAccount{
			AccountNumber: text(a.AccountNumber),
			PIN:           text(a.PIN),
			Balance:       amount(a.Balance),
			Transactions:  transactions,
		})
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode accounts: %w", err)
	}

	return buf.Bytes(), nil
}

func decode(r io.Reader) ([]domain.Account, error) {
	var doc fileDocument

	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}

	if doc.Version != schemaVersion {
		return nil, fmt.Errorf("unsupported schema version %d", doc.Version)
	}

	accounts := make([]domain.Account, 0, len(doc.Accounts))
	for _, fa := range doc.Accounts {
		transactions := make([]string, 0, len(fa.Transactions))
		for _, entry := range fa.Transactions {
			transactions = append(transactions, string(entry))
		}

		accounts = append(accounts, domain.Account{
			AccountNumber: string(fa.AccountNumber),
			PIN:           string(fa.PIN),
			Balance:       float64(fa.Balance),
			Transactions:  transactions,
		})
	}

	return accounts, nil
}
