package core

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Income bracket labels as they appear in the upstream sheet.
const (
	IncomeAbove10k = "Above 10k"
	Income5kTo10k  = "Between 5k–10k"
	IncomeBelow5k  = "Less than < 5k"
)

// Maintenance issue categories. Anything else folds into CategoryOther.
const (
	CategoryPlumbing   = "Plumbing"
	CategoryElectrical = "Electrical"
	CategoryHVAC       = "HVAC"
	CategoryOther      = "Other"
)

// EmailSentStatus is the upstream marker for a delivered notification email.
const EmailSentStatus = "SENT"

type (
	// Tenant is one rental application row as returned by the tenants
	// webhook. Field names mirror the upstream JSON keys, which come from
	// sheet column headers and are not under our control.
	Tenant struct {
		RowNumber     int    `json:"row_number"`
		Name          string `json:"Name"`
		Email         string `json:"Email"`
		Phone         Text   `json:"Phone"`
		ZipCode       Text   `json:"Zip Code"`
		EmployStatus  string `json:"Employ Status"`
		MonthlyIncome string `json:"Monthly Income"`
		Amount        Amount `json:"Amount"`
		DueDate       string `json:"Due Date"`
		RentalHistory string `json:"Rental History"`
		References    string `json:"References"`
		EmailSent     string `json:"Email Sent"`
		Summary       string `json:"Summary"`
	}

	// Issue is one maintenance report as returned by the issues webhook.
	// The "Contact " key really has a trailing space upstream.
	Issue struct {
		ID          Text   `json:"ID"`
		Name        string `json:"Name"`
		Address     string `json:"Address"`
		Category    string `json:"Issues Type"`
		Description string `json:"Issues"`
		Contact     Text   `json:"Contact "`
		ReportedAt  string `json:"Date / Time"`
	}
)

var (
	ErrNegativeAmount = errors.New("negative rent amount")
	ErrInvalidDueDate = errors.New("due date does not parse")
)

// Amount is a monetary value that tolerates both JSON numbers and quoted
// numeric strings, which the webhook emits interchangeably depending on the
// sheet cell format. Unparseable values decode to zero rather than failing
// the whole payload.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		str = strings.ReplaceAll(strings.TrimSpace(str), ",", "")
		if str == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			*a = 0
			return nil
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// Text is a string field that also accepts bare JSON numbers, since upstream
// identifiers and phone columns flip between the two representations.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*t = ""
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*t = Text(str)
		return nil
	}
	*t = Text(s)
	return nil
}

func (t Text) String() string { return string(t) }

// DueDay returns the date portion (YYYY-MM-DD) of the due date, or "" when
// the field is absent or does not start with a valid date.
func (t Tenant) DueDay() string {
	day := t.DueDate
	if i := strings.IndexByte(day, 'T'); i >= 0 {
		day = day[:i]
	}
	day = strings.TrimSpace(day)
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return ""
	}
	return day
}

// EmailWasSent reports whether the notification email went out. Anything
// other than the exact SENT marker counts as pending.
func (t Tenant) EmailWasSent() bool { return t.EmailSent == EmailSentStatus }

// HasReferences reports whether the applicant provided references.
func (t Tenant) HasReferences() bool { return t.References == "Yes" }

// Validate checks the invariants the upstream source is supposed to hold.
// Violations are reported, never fatal: display favors availability over
// strict validation.
func (t Tenant) Validate() error {
	if t.Amount < 0 {
		return ErrNegativeAmount
	}
	if t.DueDay() == "" {
		return ErrInvalidDueDate
	}
	return nil
}

// BucketCategory maps an absent category to the Other bucket. Populated
// values pass through untouched, even ones outside the known set.
func (i Issue) BucketCategory() string {
	if strings.TrimSpace(i.Category) == "" {
		return CategoryOther
	}
	return i.Category
}

// Urgent reports whether the issue category is an urgency proxy. Plumbing
// and electrical reports are treated as urgent, everything else is not.
func (i Issue) Urgent() bool {
	return i.Category == CategoryPlumbing || i.Category == CategoryElectrical
}

// DateLabel formats a YYYY-MM-DD day as a short chart label ("Jan 2").
// Unparseable input is returned as-is.
func DateLabel(day string) string {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return day
	}
	return t.Format("Jan 2")
}
