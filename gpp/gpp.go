// Package gpp splits a GPP string into its header and sections and dispatches every section to
// its decoder.
package gpp

import (
	"fmt"
	"strings"

	"github.com/prebid/prebid-gpp/bitstream"
	"github.com/prebid/prebid-gpp/errortypes"
	"github.com/prebid/prebid-gpp/idset"
	"github.com/prebid/prebid-gpp/sections"
	"github.com/prebid/prebid-gpp/sections/tcfcav1"
	"github.com/prebid/prebid-gpp/sections/tcfeuv2"
)

const (
	// SectionSeparator separates the header and the sections of a GPP string.
	SectionSeparator = "~"

	headerType    = 3
	headerVersion = 1

	typeBits    = 6
	versionBits = 6
)

// SectionDecoder decodes the text of one section.
type SectionDecoder func(section string) (sections.Section, error)

var decoders = map[sections.ID]SectionDecoder{
	sections.TcfEuV2: func(section string) (sections.Section, error) {
		s, err := tcfeuv2.Decode(section)
		if err != nil {
			return nil, err
		}
		return s, nil
	},
	sections.TcfCaV1: func(section string) (sections.Section, error) {
		s, err := tcfcav1.Decode(section)
		if err != nil {
			return nil, err
		}
		return s, nil
	},
}

// Supported reports whether sections with the given identifier can be decoded.
func Supported(id sections.ID) bool {
	_, ok := decoders[id]
	return ok
}

// GPPString is a parsed GPP string. Sections are kept encoded until they are decoded.
type GPPString struct {
	sectionIDs []sections.ID
	sections   map[sections.ID]string
}

// Parse reads the header of s and pairs every section identifier it lists with the section
// text at the same position. The sections themselves are not decoded.
func Parse(s string) (*GPPString, error) {
	segments := strings.Split(s, SectionSeparator)

	ids, err := parseHeader(segments[0])
	if err != nil {
		return nil, err
	}

	if len(ids) != len(segments)-1 {
		return nil, &errortypes.InvalidHeader{
			Message: fmt.Sprintf("header lists %d sections but %d follow", len(ids), len(segments)-1),
		}
	}

	g := &GPPString{
		sectionIDs: ids,
		sections:   make(map[sections.ID]string, len(ids)),
	}
	for i, id := range ids {
		g.sections[id] = segments[i+1]
	}
	return g, nil
}

func parseHeader(header string) ([]sections.ID, error) {
	r := bitstream.NewReaderString(header)

	t, err := bitstream.Uint8(r, typeBits)
	if err != nil {
		return nil, invalidHeader("type", err)
	}
	if t != headerType {
		return nil, &errortypes.InvalidHeader{Message: fmt.Sprintf("header type %d, expected %d", t, headerType)}
	}

	v, err := bitstream.Uint8(r, versionBits)
	if err != nil {
		return nil, invalidHeader("version", err)
	}
	if v != headerVersion {
		return nil, &errortypes.InvalidHeader{Message: fmt.Sprintf("header version %d, expected %d", v, headerVersion)}
	}

	set, err := idset.ReadFibonacciRange(r)
	if err != nil {
		return nil, invalidHeader("section ids", err)
	}

	raw := set.IDs()
	ids := make([]sections.ID, len(raw))
	for i, id := range raw {
		ids[i] = sections.ID(id)
	}
	return ids, nil
}

func invalidHeader(field string, err error) error {
	return &errortypes.InvalidHeader{Message: fmt.Sprintf("unable to read header %s: %v", field, err)}
}

// SectionIDs returns the section identifiers listed in the header, in ascending order.
func (g *GPPString) SectionIDs() []sections.ID {
	ids := make([]sections.ID, len(g.sectionIDs))
	copy(ids, g.sectionIDs)
	return ids
}

// Section returns the encoded text of a section.
func (g *GPPString) Section(id sections.ID) (string, bool) {
	s, ok := g.sections[id]
	return s, ok
}

// DecodeSection decodes one section of the string.
//
// Sections missing from the string fail with an errortypes.Warning and sections without a
// decoder with an *errortypes.UnsupportedSection.
func (g *GPPString) DecodeSection(id sections.ID) (sections.Section, error) {
	s, ok := g.sections[id]
	if !ok {
		return nil, &errortypes.Warning{
			Message:     fmt.Sprintf("section %s is not part of the string", id),
			WarningCode: errortypes.MissingSectionWarningCode,
		}
	}

	decode, ok := decoders[id]
	if !ok {
		return nil, &errortypes.UnsupportedSection{SectionID: int(id)}
	}
	return decode(s)
}

// DecodeAllSections decodes every section in header order. A failing section does not stop the
// others; the decoded sections and the failures are returned side by side.
func (g *GPPString) DecodeAllSections() ([]sections.Section, []error) {
	var (
		decoded []sections.Section
		errs    []error
	)
	for _, id := range g.sectionIDs {
		s, err := g.DecodeSection(id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		decoded = append(decoded, s)
	}
	return decoded, errs
}
