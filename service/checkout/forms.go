package checkout

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"shopzone.GO/core/apperr"
)

// Supported shipping states, keyed by form value.
var States = map[string]string{
	"ny": "New York",
	"ca": "California",
	"tx": "Texas",
}

type ShippingForm struct {
	FirstName string `mapstructure:"firstName" json:"firstName"`
	LastName  string `mapstructure:"lastName" json:"lastName"`
	Email     string `mapstructure:"email" json:"email"`
	Phone     string `mapstructure:"phone" json:"phone"`
	Address   string `mapstructure:"address" json:"address"`
	City      string `mapstructure:"city" json:"city"`
	State     string `mapstructure:"state" json:"state"`
	Zip       string `mapstructure:"zip" json:"zip"`
}

type PaymentMethod string

const (
	MethodCard     PaymentMethod = "card"
	MethodPayPal   PaymentMethod = "paypal"
	MethodApplePay PaymentMethod = "applepay"
)

func (m PaymentMethod) Valid() bool {
	return m == MethodCard || m == MethodPayPal || m == MethodApplePay
}

// PaymentForm carries the fields of every method; only the selected
// method's fields are read.
type PaymentForm struct {
	Method     PaymentMethod `mapstructure:"method" json:"method"`
	CardNumber string        `mapstructure:"cardNumber" json:"cardNumber"`
	Expiry     string        `mapstructure:"expiry" json:"expiry"`
	CVC        string        `mapstructure:"cvc" json:"cvc"`
	CardName   string        `mapstructure:"cardName" json:"cardName"`
}

// Payment is the accepted payment choice. Card number and CVC are not kept.
type Payment struct {
	Method   PaymentMethod `json:"method"`
	Last4    string        `json:"last4,omitempty"`
	CardName string        `json:"cardName,omitempty"`
	Expiry   string        `json:"expiry,omitempty"`
}

var (
	emailRe  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	zipRe    = regexp.MustCompile(`^\d{5}$`)
	cvcRe    = regexp.MustCompile(`^\d{3,4}$`)
	expiryRe = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
)

// Normalize trims every field and lowercases the state.
func (f ShippingForm) Normalize() ShippingForm {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Address = strings.TrimSpace(f.Address)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.ToLower(strings.TrimSpace(f.State))
	f.Zip = strings.TrimSpace(f.Zip)
	return f
}

// Validate expects a normalized form.
func (f ShippingForm) Validate() error {
	fields := map[string]string{}
	required := map[string]string{
		"firstName": f.FirstName,
		"lastName":  f.LastName,
		"email":     f.Email,
		"address":   f.Address,
		"city":      f.City,
		"state":     f.State,
		"zip":       f.Zip,
	}
	for name, v := range required {
		if v == "" {
			fields[name] = "required"
		}
	}
	if f.Email != "" && !emailRe.MatchString(f.Email) {
		fields["email"] = "invalid email address"
	}
	if f.Zip != "" && !zipRe.MatchString(f.Zip) {
		fields["zip"] = "must be 5 digits"
	}
	if f.State != "" {
		if _, ok := States[f.State]; !ok {
			fields["state"] = "unsupported state"
		}
	}
	if f.Phone != "" {
		if n := len(digits(f.Phone)); n < 7 || n > 15 {
			fields["phone"] = "must have 7 to 15 digits"
		}
	}
	if len(fields) > 0 {
		return apperr.Validation("checkout.shipping", fields)
	}
	return nil
}

// Accept validates the selected method against now and returns what is
// kept of it.
func (f PaymentForm) Accept(now time.Time) (Payment, error) {
	const op = "checkout.payment"
	method := PaymentMethod(strings.ToLower(strings.TrimSpace(string(f.Method))))
	if !method.Valid() {
		return Payment{}, apperr.Invalid(op, "method", "must be card, paypal or applepay")
	}
	if method != MethodCard {
		return Payment{Method: method}, nil
	}

	fields := map[string]string{}
	number := digits(f.CardNumber)
	switch {
	case number == "":
		fields["cardNumber"] = "required"
	case len(number) != len(strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(f.CardNumber))):
		fields["cardNumber"] = "must contain digits only"
	case len(number) < 13 || len(number) > 19:
		fields["cardNumber"] = "must have 13 to 19 digits"
	case !luhn(number):
		fields["cardNumber"] = "invalid card number"
	}
	expiry := strings.TrimSpace(f.Expiry)
	if err := checkExpiry(expiry, now); err != "" {
		fields["expiry"] = err
	}
	if !cvcRe.MatchString(strings.TrimSpace(f.CVC)) {
		fields["cvc"] = "must be 3 or 4 digits"
	}
	name := strings.TrimSpace(f.CardName)
	if name == "" {
		fields["cardName"] = "required"
	}
	if len(fields) > 0 {
		return Payment{}, apperr.Validation(op, fields)
	}
	return Payment{Method: MethodCard, Last4: number[len(number)-4:], CardName: name, Expiry: expiry}, nil
}

func checkExpiry(expiry string, now time.Time) string {
	if expiry == "" {
		return "required"
	}
	m := expiryRe.FindStringSubmatch(expiry)
	if m == nil {
		return "must be MM/YY"
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return "invalid month"
	}
	// valid through the last day of the expiry month
	firstOfNext := time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, now.Location())
	if !now.Before(firstOfNext) {
		return "card expired"
	}
	return ""
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func luhn(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// FormMap flattens form values to their first value for decoding.
func FormMap(values url.Values) map[string]interface{} {
	out := make(map[string]interface{}, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

func decode(input map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return apperr.Invalid("checkout.decode", "form", fmt.Sprintf("malformed: %v", err))
	}
	return nil
}

func DecodeShipping(input map[string]interface{}) (ShippingForm, error) {
	var f ShippingForm
	err := decode(input, &f)
	return f, err
}

func DecodePayment(input map[string]interface{}) (PaymentForm, error) {
	var f PaymentForm
	err := decode(input, &f)
	return f, err
}
