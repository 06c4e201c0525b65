// Package tcfeuv2 decodes the IAB TCF EU v2 section of a GPP string.
package tcfeuv2

import (
	"errors"
	"io"

	"github.com/prebid/prebid-gpp/bitstream"
	"github.com/prebid/prebid-gpp/idset"
	"github.com/prebid/prebid-gpp/sections"
)

// SectionID is the GPP section identifier of TCF EU v2.
const SectionID = sections.TcfEuV2

// Optional segment types.
const (
	DisclosedVendorsSegment  uint8 = 1
	AllowedVendorsSegment    uint8 = 2
	PublisherPurposesSegment uint8 = 3
)

const (
	segmentVersion = 2

	cmpIDBits             = 12
	cmpVersionBits        = 12
	consentScreenBits     = 6
	vendorListVersionBits = 12
	policyVersionBits     = 6
	languageLetters       = 2
	specialFeatureCount   = 12
	purposeCount          = 24
	customPurposeBits     = 6

	restrictionCountBits   = 12
	restrictionPurposeBits = 6
	restrictionTypeBits    = 2
	rangeCountBits         = 12
	vendorIDBits           = 16
)

// TcfEuV2 is a decoded TCF EU v2 section. The optional segments are nil when absent.
type TcfEuV2 struct {
	Core              Core               `json:"core"`
	DisclosedVendors  *idset.IDSet       `json:"disclosed_vendors,omitempty"`
	AllowedVendors    *idset.IDSet       `json:"allowed_vendors,omitempty"`
	PublisherPurposes *PublisherPurposes `json:"publisher_purposes,omitempty"`
}

// SectionID implements sections.Section.
func (s *TcfEuV2) SectionID() sections.ID {
	return SectionID
}

// Core is the mandatory core segment. Created and LastUpdated are Unix timestamps in seconds.
type Core struct {
	Created                    uint64                 `json:"created"`
	LastUpdated                uint64                 `json:"last_updated"`
	CmpID                      uint16                 `json:"cmp_id"`
	CmpVersion                 uint16                 `json:"cmp_version"`
	ConsentScreen              uint8                  `json:"consent_screen"`
	ConsentLanguage            string                 `json:"consent_language"`
	VendorListVersion          uint16                 `json:"vendor_list_version"`
	PolicyVersion              uint8                  `json:"policy_version"`
	IsServiceSpecific          bool                   `json:"is_service_specific"`
	UseNonStandardStacks       bool                   `json:"use_non_standard_stacks"`
	SpecialFeatureOptins       idset.IDSet            `json:"special_feature_optins"`
	PurposeConsents            idset.IDSet            `json:"purpose_consents"`
	PurposeLegitimateInterests idset.IDSet            `json:"purpose_legitimate_interests"`
	PurposeOneTreatment        bool                   `json:"purpose_one_treatment"`
	PublisherCountryCode       string                 `json:"publisher_country_code"`
	VendorConsents             idset.IDSet            `json:"vendor_consents"`
	VendorLegitimateInterests  idset.IDSet            `json:"vendor_legitimate_interests"`
	PublisherRestrictions      []PublisherRestriction `json:"publisher_restrictions"`
}

// PublisherRestriction restricts the legal basis a set of vendors may use for one purpose.
type PublisherRestriction struct {
	PurposeID           uint8           `json:"purpose_id"`
	RestrictionType     RestrictionType `json:"restriction_type"`
	RestrictedVendorIDs idset.IDSet     `json:"restricted_vendor_ids"`
}

// PublisherPurposes is the publisher purposes segment.
type PublisherPurposes struct {
	Consents                  idset.IDSet `json:"consents"`
	LegitimateInterests       idset.IDSet `json:"legitimate_interests"`
	CustomConsents            idset.IDSet `json:"custom_consents"`
	CustomLegitimateInterests idset.IDSet `json:"custom_legitimate_interests"`
}

// Decode decodes a TCF EU v2 section, core segment first and then every optional segment.
func Decode(section string) (*TcfEuV2, error) {
	var s TcfEuV2
	err := sections.Decode(section, s.decodeCore, map[uint8]sections.SegmentDecoder{
		DisclosedVendorsSegment: func(r bitstream.BitReader) error {
			ids, err := idset.ReadOptimizedIntegerRange(r)
			if err != nil {
				return err
			}
			s.DisclosedVendors = &ids
			return nil
		},
		AllowedVendorsSegment: func(r bitstream.BitReader) error {
			ids, err := idset.ReadOptimizedIntegerRange(r)
			if err != nil {
				return err
			}
			s.AllowedVendors = &ids
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

func (s *TcfEuV2) decodeCore(r bitstream.BitReader) error {
	if _, err := sections.ReadVersion(r, segmentVersion); err != nil {
		return err
	}

	var (
		c   Core
		err error
	)
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
	if c.IsServiceSpecific, err = bitstream.Bool(r); err != nil {
		return err
	}
	if c.UseNonStandardStacks, err = bitstream.Bool(r); err != nil {
		return err
	}
	if c.SpecialFeatureOptins, err = idset.ReadFixedBitfield(r, specialFeatureCount); err != nil {
		return err
	}
	if c.PurposeConsents, err = idset.ReadFixedBitfield(r, purposeCount); err != nil {
		return err
	}
	if c.PurposeLegitimateInterests, err = idset.ReadFixedBitfield(r, purposeCount); err != nil {
		return err
	}
	if c.PurposeOneTreatment, err = bitstream.Bool(r); err != nil {
		return err
	}
	if c.PublisherCountryCode, err = bitstream.Letters(r, languageLetters); err != nil {
		return err
	}
	if c.VendorConsents, err = idset.ReadOptimizedIntegerRange(r); err != nil {
		return err
	}
	if c.VendorLegitimateInterests, err = idset.ReadOptimizedIntegerRange(r); err != nil {
		return err
	}
	if c.PublisherRestrictions, err = readPublisherRestrictions(r); err != nil {
		return err
	}

	s.Core = c
	return nil
}

// readPublisherRestrictions reads the restriction count and then as many restrictions as the
// string actually holds. Some encoders declare more restrictions than they write, or stop in the
// middle of the last one; the restrictions decoded up to that point are kept.
func readPublisherRestrictions(r bitstream.BitReader) ([]PublisherRestriction, error) {
	n, err := bitstream.Uint16(r, restrictionCountBits)
	if err != nil {
		return nil, err
	}

	restrictions := make([]PublisherRestriction, 0, n)
	for i := uint16(0); i < n; i++ {
		purposeID, err := bitstream.Uint8(r, restrictionPurposeBits)
		if isEOF(err) {
			break
		}
		if err != nil {
			return nil, err
		}
		restrictionType, err := bitstream.Uint8(r, restrictionTypeBits)
		if isEOF(err) {
			break
		}
		if err != nil {
			return nil, err
		}
		ids, ok, err := readRestrictedVendors(r, len(restrictions))
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		restrictions = append(restrictions, PublisherRestriction{
			PurposeID:           purposeID,
			RestrictionType:     RestrictionTypeFromValue(restrictionType),
			RestrictedVendorIDs: ids,
		})
	}
	return restrictions, nil
}

// readRestrictedVendors reads the integer range of one restriction. It reports ok=false when the
// string ends inside the range and the restriction should be dropped. Ending inside a vendor
// identifier is only tolerated once at least one restriction has been decoded.
func readRestrictedVendors(r bitstream.BitReader, decoded int) (ids idset.IDSet, ok bool, err error) {
	n, err := bitstream.Uint16(r, rangeCountBits)
	if isEOF(err) {
		return idset.IDSet{}, false, nil
	}
	if err != nil {
		return idset.IDSet{}, false, err
	}

	truncated := func(err error) (idset.IDSet, bool, error) {
		if isEOF(err) && decoded > 0 {
			return idset.IDSet{}, false, nil
		}
		return idset.IDSet{}, false, err
	}

	var b idset.Builder
	for i := uint16(0); i < n; i++ {
		isGroup, err := r.ReadBit()
		if isEOF(err) {
			return idset.IDSet{}, false, nil
		}
		if err != nil {
			return idset.IDSet{}, false, err
		}
		start, err := bitstream.Uint16(r, vendorIDBits)
		if err != nil {
			return truncated(err)
		}
		if !isGroup {
			b.Add(start)
			continue
		}
		end, err := bitstream.Uint16(r, vendorIDBits)
		if err != nil {
			return truncated(err)
		}
		b.AddRange(start, end)
	}
	return b.Build(), true, nil
}

func readPublisherPurposes(r bitstream.BitReader) (*PublisherPurposes, error) {
	var (
		p   PublisherPurposes
		err error
	)
	if p.Consents, err = idset.ReadFixedBitfield(r, purposeCount); err != nil {
		return nil, err
	}
	if p.LegitimateInterests, err = idset.ReadFixedBitfield(r, purposeCount); err != nil {
		return nil, err
	}
	n, err := bitstream.Uint8(r, customPurposeBits)
	if err != nil {
		return nil, err
	}
	if p.CustomConsents, err = idset.ReadFixedBitfield(r, int(n)); err != nil {
		return nil, err
	}
	if p.CustomLegitimateInterests, err = idset.ReadFixedBitfield(r, int(n)); err != nil {
		return nil, err
	}
	return &p, nil
}

func isEOF(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF)
}
