package entity

// NonFieldErrors is the field name servers use for errors not tied to a field.
const NonFieldErrors = "__all__"

// FormError is a server validation message set for one submitted field.
type FormError struct {
	Field  string
	Errors []string
}

// FormErrors is the list of validation failures returned with a response.
type FormErrors []FormError

// For returns the messages reported for field, in server order.
func (fe FormErrors) For(field string) []string {
	var msgs []string
	for _, e := range fe {
		if e.Field == field {
			msgs = append(msgs, e.Errors...)
		}
	}
	return msgs
}

// NonField returns the top-level messages.
func (fe FormErrors) NonField() []string {
	return fe.For(NonFieldErrors)
}

// Fields returns the names of the fields that carry errors, excluding the
// top-level sentinel, in first-seen order.
func (fe FormErrors) Fields() []string {
	seen := make(map[string]bool, len(fe))
	var fields []string
	for _, e := range fe {
		if e.Field == NonFieldErrors || seen[e.Field] {
			continue
		}
		seen[e.Field] = true
		fields = append(fields, e.Field)
	}
	return fields
}
