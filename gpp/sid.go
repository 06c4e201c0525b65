package gpp

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/prebid/prebid-gpp/errortypes"
	"github.com/prebid/prebid-gpp/sections"
)

// ParseSIDList parses the comma separated section ids ("2,6") which the IAB recommends passing
// next to a GPP string on a query string.
func ParseSIDList(raw string) ([]sections.ID, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]sections.ID, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 16)
		if err != nil {
			return nil, &errortypes.BadInput{
				Message: fmt.Sprintf("invalid section id %q in sid list", part),
			}
		}
		ids = append(ids, sections.ID(id))
	}
	return ids, nil
}

// IsSIDInList returns true if the 'sid' value is found in the ids list.
func IsSIDInList(ids []sections.ID, sid sections.ID) bool {
	return slices.Contains(ids, sid)
}

// CheckSIDList returns one warning for every section of sids missing from the header of g.
func CheckSIDList(g *GPPString, sids []sections.ID) []error {
	var warnings []error
	for _, sid := range sids {
		if !IsSIDInList(g.sectionIDs, sid) {
			warnings = append(warnings, &errortypes.Warning{
				Message:     fmt.Sprintf("section %s is listed in the sid list but not in the gpp string", sid),
				WarningCode: errortypes.MissingSectionWarningCode,
			})
		}
	}
	return warnings
}
