package bomimport

import "strings"

// Field is a canonical semantic column in an uploaded BOM file.
type Field string

const (
	FieldQuantity  Field = "Quantity"
	FieldReference Field = "Reference"
	FieldOverage   Field = "Overage"
	FieldNote      Field = "Note"
	FieldPartID    Field = "Part_ID"
	FieldPartName  Field = "Part_Name"
	FieldPartIPN   Field = "Part_IPN"
)

// Fields lists every assignable field in display order.
var Fields = []Field{
	FieldQuantity,
	FieldReference,
	FieldOverage,
	FieldNote,
	FieldPartID,
	FieldPartName,
	FieldPartIPN,
}

var requiredFields = []Field{FieldQuantity}

// identityFields can match a row to a catalog part; at least one must be
// assigned before field selection is accepted.
var identityFields = []Field{FieldPartID, FieldPartName, FieldPartIPN}

// ParseField returns the Field matching the given assignment value, or ""
// when the value is empty or not a recognized field.
func ParseField(v string) Field {
	for _, f := range Fields {
		if strings.EqualFold(string(f), strings.TrimSpace(v)) {
			return f
		}
	}
	return ""
}

var headerGuesses = map[string]Field{
	"quantity":   FieldQuantity,
	"qty":        FieldQuantity,
	"count":      FieldQuantity,
	"reference":  FieldReference,
	"references": FieldReference,
	"ref":        FieldReference,
	"refdes":     FieldReference,
	"designator": FieldReference,
	"overage":    FieldOverage,
	"spare":      FieldOverage,
	"note":       FieldNote,
	"notes":      FieldNote,
	"comment":    FieldNote,
	"comments":   FieldNote,
	"remarks":    FieldNote,
	"id":         FieldPartID,
	"partid":     FieldPartID,
	"pk":         FieldPartID,
	"part":       FieldPartName,
	"partname":   FieldPartName,
	"name":       FieldPartName,
	"component":  FieldPartName,
	"ipn":        FieldPartIPN,
	"partipn":    FieldPartIPN,
	"partnumber": FieldPartIPN,
	"pn":         FieldPartIPN,
}

// GuessField suggests a semantic field for a raw header name, or "" when the
// header is unrecognized. Suggestions only seed the field-selection stage;
// the user confirms or corrects them.
func GuessField(header string) Field {
	return headerGuesses[normalizeHeader(header)]
}

func normalizeHeader(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(header)) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
