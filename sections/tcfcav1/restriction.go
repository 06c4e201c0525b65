package tcfcav1

// RestrictionType is the legal basis a publisher restriction imposes on vendors.
type RestrictionType uint8

const (
	NotAllowed RestrictionType = iota
	RequireExpressConsent
	RequireImpliedConsent
	// Undefined also stands for any value a newer encoder might emit.
	Undefined
)

var restrictionTypeNames = [...]string{
	NotAllowed:            "NotAllowed",
	RequireExpressConsent: "RequireExpressConsent",
	RequireImpliedConsent: "RequireImpliedConsent",
	Undefined:             "Undefined",
}

// RestrictionTypeFromValue maps an encoded restriction type. Unknown values map to Undefined.
func RestrictionTypeFromValue(v uint8) RestrictionType {
	if t := RestrictionType(v); t < Undefined {
		return t
	}
	return Undefined
}

func (t RestrictionType) String() string {
	if int(t) < len(restrictionTypeNames) {
		return restrictionTypeNames[t]
	}
	return restrictionTypeNames[Undefined]
}

// MarshalText renders the restriction type by name.
func (t RestrictionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
