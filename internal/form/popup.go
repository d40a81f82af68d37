package form

import "fmt"

const (
	PopupTitle   = "Form Submitted"
	PopupMessage = "Your form has been successfully submitted."
)

// PopupState is the confirmation overlay: hidden until a successful submit,
// shown until the user dismisses it.
type PopupState uint8

const (
	PopupHidden PopupState = iota
	PopupShown
)

func (p PopupState) Visible() bool { return p == PopupShown }

func (p PopupState) String() string {
	if p == PopupShown {
		return "shown"
	}
	return "hidden"
}

func (p PopupState) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PopupState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "shown":
		*p = PopupShown
	case "hidden", "":
		*p = PopupHidden
	default:
		return fmt.Errorf("unknown popup state %q", b)
	}
	return nil
}
