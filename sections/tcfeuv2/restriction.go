package tcfeuv2

// RestrictionType is the legal basis a publisher restriction imposes on vendors.
type RestrictionType uint8

const (
	NotAllowed RestrictionType = iota
	RequireConsent
	RequireLegitimateInterest
	// Undefined also stands for any value a newer encoder might emit.
	Undefined
)

var restrictionTypeNames = [...]string{
	NotAllowed:                "NotAllowed",
	RequireConsent:            "RequireConsent",
	RequireLegitimateInterest: "RequireLegitimateInterest",
	Undefined:                 "Undefined",
}

// RestrictionTypeFromValue maps an encoded restriction type. Unknown values map to Undefined.
func RestrictionTypeFromValue(v uint8) RestrictionType {
	switch t := RestrictionType(v); t {
	case NotAllowed, RequireConsent, RequireLegitimateInterest:
		return t
	default:
		return Undefined
	}
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
