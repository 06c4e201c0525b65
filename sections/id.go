package sections

import (
	"slices"
	"strconv"
)

// ID identifies a section in the GPP header.
type ID int

// Section identifiers registered by the IAB for GPP.
const (
	TcfEuV2            ID = 2
	GppHeader          ID = 3
	GppSignalIntegrity ID = 4
	TcfCaV1            ID = 5
	UspV1              ID = 6
	UsNat              ID = 7
	UsCa               ID = 8
	UsVa               ID = 9
	UsCo               ID = 10
	UsUt               ID = 11
	UsCt               ID = 12
)

var names = map[ID]string{
	TcfEuV2:            "tcfeuv2",
	GppHeader:          "header",
	GppSignalIntegrity: "signal_integrity",
	TcfCaV1:            "tcfcav1",
	UspV1:              "uspv1",
	UsNat:              "usnat",
	UsCa:               "usca",
	UsVa:               "usva",
	UsCo:               "usco",
	UsUt:               "usut",
	UsCt:               "usct",
}

// String returns the section's short name, or its number when it has none.
func (id ID) String() string {
	if name, ok := names[id]; ok {
		return name
	}
	return strconv.Itoa(int(id))
}

// IDs returns every section identifier with a name, in ascending order.
func IDs() []ID {
	ids := make([]ID, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
