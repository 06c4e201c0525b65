// Package tcfcav1 decodes the IAB TCF Canada v1 section of a GPP string.
package tcfcav1

import (
	"github.com/prebid/prebid-gpp/bitstream"
	"github.com/prebid/prebid-gpp/idset"
	"github.com/prebid/prebid-gpp/sections"
)

// SectionID is the GPP section identifier of TCF Canada v1.
const SectionID = sections.TcfCaV1

// Optional segment types.
const (
	DisclosedVendorsSegment  uint8 = 1
	PublisherPurposesSegment uint8 = 3
)

const (
	cmpIDBits             = 12
	cmpVersionBits        = 12
	consentScreenBits     = 6
	vendorListVersionBits = 12
	policyVersionBits     = 6
	languageLetters       = 2
	specialFeatureCount   = 12
	purposeCount          = 24
	customPurposeBits     = 6

	restrictionPurposeBits = 6
	restrictionTypeBits    = 2
)

// acceptedVersions lists the core segment versions this decoder reads. Version 2 is what CMPs
// (and the IAB reference decoder) emit; its layout is compatible with version 1.
var acceptedVersions = []uint8{1, 2}

// TcfCaV1 is a decoded TCF Canada v1 section. The optional segments are nil when absent.
type TcfCaV1 struct {
	Core              Core               `json:"core"`
	DisclosedVendors  *idset.IDSet       `json:"disclosed_vendors,omitempty"`
	PublisherPurposes *PublisherPurposes `json:"publisher_purposes,omitempty"`
}

// SectionID implements sections.Section.
func (s *TcfCaV1) SectionID() sections.ID {
	return SectionID
}

// Core is the mandatory core segment. Created and LastUpdated are Unix timestamps in seconds.
type Core struct {
	SegmentVersion                uint8                  `json:"segment_version"`
	Created                       uint64                 `json:"created"`
	LastUpdated                   uint64                 `json:"last_updated"`
	CmpID                         uint16                 `json:"cmp_id"`
	CmpVersion                    uint16                 `json:"cmp_version"`
	ConsentScreen                 uint8                  `json:"consent_screen"`
	ConsentLanguage               string                 `json:"consent_language"`
	VendorListVersion             uint16                 `json:"vendor_list_version"`
	PolicyVersion                 uint8                  `json:"policy_version"`
	UseNonStandardStacks          bool                   `json:"use_non_standard_stacks"`
	SpecialFeatureExpressConsents idset.IDSet            `json:"special_feature_express_consents"`
	PurposeExpressConsents        idset.IDSet            `json:"purpose_express_consents"`
	PurposeImpliedConsents        idset.IDSet            `json:"purpose_implied_consents"`
	VendorExpressConsents         idset.IDSet            `json:"vendor_express_consents"`
	VendorImpliedConsents         idset.IDSet            `json:"vendor_implied_consents"`
	PubRestrictions               []PublisherRestriction `json:"pub_restrictions"`
}

// PublisherRestriction restricts the legal basis a set of vendors may use for one purpose.
type PublisherRestriction struct {
	PurposeID           uint8           `json:"purpose_id"`
	RestrictionType     RestrictionType `json:"restriction_type"`
	RestrictedVendorIDs idset.IDSet     `json:"restricted_vendor_ids"`
}

// PublisherPurposes is the publisher purposes segment.
type PublisherPurposes struct {
	PurposeExpressConsents       idset.IDSet `json:"purpose_express_consents"`
	PurposeImpliedConsents       idset.IDSet `json:"purpose_implied_consents"`
	CustomPurposeExpressConsents idset.IDSet `json:"custom_purpose_express_consents"`
	CustomPurposeImpliedConsents idset.IDSet `json:"custom_purpose_implied_consents"`
}

// Decode decodes a TCF Canada v1 section, core segment first and then every optional segment.
func Decode(section string) (*TcfCaV1, error) {
	var s TcfCaV1
	err := sections.Decode(section, s.decodeCore, map[uint8]sections.SegmentDecoder{
		DisclosedVendorsSegment: func(r bitstream.BitReader) error {
			ids, err := idset.ReadOptimizedRange(r)
			if err != nil {
				return err
			}
			s.DisclosedVendors = &ids
			return nil
		},
		PublisherPurposesSegment: func(r bitstream.BitReader) error {
			p, err := readPublisherPurposes(r)
			if err != nil {
				return err
			}
			s.PublisherPurposes = p
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *TcfCaV1) decodeCore(r bitstream.BitReader) error {
	version, err := sections.ReadVersion(r, acceptedVersions...)
	if err != nil {
		return err
	}

	c := Core{SegmentVersion: version}
	if c.Created, err = bitstream.Datetime(r); err != nil {
		return err
	}
	if c.LastUpdated, err = bitstream.Datetime(r); err != nil {
		return err
	}
	if c.CmpID, err = bitstream.Uint16(r, cmpIDBits); err != nil {
		return err
	}
	if c.CmpVersion, err = bitstream.Uint16(r, cmpVersionBits); err != nil {
		return err
	}
	if c.ConsentScreen, err = bitstream.Uint8(r, consentScreenBits); err != nil {
		return err
	}
	if c.ConsentLanguage, err = bitstream.Letters(r, languageLetters); err != nil {
		return err
	}
	if c.VendorListVersion, err = bitstream.Uint16(r, vendorListVersionBits); err != nil {
		return err
	}
	if c.PolicyVersion, err = bitstream.Uint8(r, policyVersionBits); err != nil {
		return err
	}
	if c.UseNonStandardStacks, err = bitstream.Bool(r); err != nil {
		return err
	}
	if c.SpecialFeatureExpressConsents, err = idset.ReadFixedBitfield(r, specialFeatureCount); err != nil {
		return err
	}
	if c.PurposeExpressConsents, err = idset.ReadFixedBitfield(r, purposeCount); err != nil {
		return err
	}
	if c.PurposeImpliedConsents, err = idset.ReadFixedBitfield(r, purposeCount); err != nil {
		return err
	}
	// The format documents both vendor fields as optimized ranges, but producers and the IAB
	// decoder use optimized integer ranges.
	if c.VendorExpressConsents, err = idset.ReadOptimizedIntegerRange(r); err != nil {
		return err
	}
	if c.VendorImpliedConsents, err = idset.ReadOptimizedIntegerRange(r); err != nil {
		return err
	}
	c.PubRestrictions = readPublisherRestrictions(r)

	s.Core = c
	return nil
}

// readPublisherRestrictions never fails: restrictions were added in TCF CA v1.1 and older strings
// end before them, so anything unreadable decodes as no restrictions.
func readPublisherRestrictions(r bitstream.BitReader) []PublisherRestriction {
	ranges, err := idset.ReadArrayOfRanges(r, restrictionPurposeBits, restrictionTypeBits)
	if err != nil {
		return []PublisherRestriction{}
	}

	restrictions := make([]PublisherRestriction, 0, len(ranges))
	for _, entry := range ranges {
		restrictions = append(restrictions, PublisherRestriction{
			PurposeID:           entry.Key,
			RestrictionType:     RestrictionTypeFromValue(entry.RangeType),
			RestrictedVendorIDs: entry.IDs,
		})
	}
	return restrictions
}

func readPublisherPurposes(r bitstream.BitReader) (*PublisherPurposes, error) {
	var (
		p   PublisherPurposes
		err error
	)
	if p.PurposeExpressConsents, err = idset.ReadFixedBitfield(r, purposeCount); err != nil {
		return nil, err
	}
	if p.PurposeImpliedConsents, err = idset.ReadFixedBitfield(r, purposeCount); err != nil {
		return nil, err
	}
	n, err := bitstream.Uint8(r, customPurposeBits)
	if err != nil {
		return nil, err
	}
	if p.CustomPurposeExpressConsents, err = idset.ReadFixedBitfield(r, int(n)); err != nil {
		return nil, err
	}
	if p.CustomPurposeImpliedConsents, err = idset.ReadFixedBitfield(r, int(n)); err != nil {
		return nil, err
	}
	return &p, nil
}
