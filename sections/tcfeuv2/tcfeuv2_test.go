package tcfeuv2

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/prebid/go-gdpr/consentconstants"
	"github.com/prebid/go-gdpr/vendorconsent"
	tcf2 "github.com/prebid/go-gdpr/vendorconsent/tcf2"
	"github.com/prebid/prebid-gpp/errortypes"
	"github.com/prebid/prebid-gpp/idset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// core segment only, no vendors and no publisher restrictions
	minimalCore = "CPXxRfAPXxRfAAfKABENB-CgAAAAAAAAAAYgAAAAAAAA"
	// vendor consents as a range, legitimate interests as a bitfield, no restrictions
	rangedCore = "CPXxRfFPXxRfPEsAFDFRCWEaAMJAAEIAAIqIF5wAwABQAyADQBeYAFIBAA"
	// rangedCore followed by three publisher restrictions
	restrictedCore = "CPXxRfFPXxRfPEsAFDFRCWEaAMJAAEIAAIqIF5wAwABQAyADQBeYAFIBADCQAgAEQAUABYfAAHAAQAWA"
	// declares three restrictions but the second one ends inside a vendor identifier
	truncatedSecondRestriction = "CPXxRfFPXxRfPEsAFDFRCWEaAMJAAEIAAIqIF5wAwABQAyADQBeYAFIBADCQAgAEQAUABYcACABZPA"
	// declares one restriction which ends inside its first vendor identifier
	truncatedFirstRestriction = "CPXxRfFPXxRfPEsAFDFRCWEaAMJAAEIAAIqIF5wAwABQAyADQBeYAFIBABCQAYAEA"
	// ends right after the vendor legitimate interests
	missingRestrictionCount = "CPXxRfFPXxRfPEsAFDFRCWEaAMJAAEIAAIqIF5wAwABQAyADQBeYAFIB"

	disclosedVendors  = "IAEEE"
	allowedVendors    = "QHCQAYGQAZE"
	publisherPurposes = "eAAABAAAAdQ"
)

func TestDecodeErrors(t *testing.T) {
	const disclosedOnly = "IFoEUQQgAIQwgIwQABAEAAAAOIAACAIAAAAQAIAgEAACEAAAAAgAQBAAAAAAAGBAAgAAAAAAAFAAECAAAgAAQARAEQAAAAAJAAIAAgAAAYQEAAAQmAgBC3ZAYzUw"
	const purposesOnly = "ZAAgH9794ulA"

	testCases := []struct {
		description string
		in          string
		expected    error
	}{
		{
			description: "Empty string",
			in:          "",
			expected:    &errortypes.ReadFailure{Cause: io.ErrUnexpectedEOF},
		},
		{
			description: "Too short for a core segment",
			in:          "CPX",
			expected:    &errortypes.ReadFailure{Cause: io.ErrUnexpectedEOF},
		},
		{
			description: "Missing restriction count",
			in:          missingRestrictionCount,
			expected:    &errortypes.ReadFailure{Cause: io.ErrUnexpectedEOF},
		},
		{
			description: "First restriction cut inside a vendor identifier",
			in:          truncatedFirstRestriction,
			expected:    &errortypes.ReadFailure{Cause: io.ErrUnexpectedEOF},
		},
		{
			description: "Invalid character",
			in:          "CPX xRf",
			expected:    &errortypes.ReadFailure{Cause: &errortypes.InvalidAlphabetByte{Offset: 3, Byte: ' '}},
		},
		{
			description: "Disclosed vendors only",
			in:          disclosedOnly,
			expected:    &errortypes.UnknownSegmentVersion{SegmentVersion: 8},
		},
		{
			description: "Publisher purposes only",
			in:          purposesOnly,
			expected:    &errortypes.UnknownSegmentVersion{SegmentVersion: 25},
		},
		{
			description: "Disclosed vendors and publisher purposes",
			in:          disclosedOnly + "." + purposesOnly,
			expected:    &errortypes.UnknownSegmentVersion{SegmentVersion: 8},
		},
		{
			description: "Publisher purposes and disclosed vendors",
			in:          purposesOnly + "." + disclosedOnly,
			expected:    &errortypes.UnknownSegmentVersion{SegmentVersion: 25},
		},
		{
			description: "Unknown optional segment type",
			in:          minimalCore + ".oAA",
			expected:    &errortypes.UnknownSegmentType{SegmentType: 5},
		},
		{
			description: "Empty optional segment",
			in:          minimalCore + ".",
			expected:    &errortypes.ReadFailure{Cause: io.ErrUnexpectedEOF},
		},
	}

	for _, test := range testCases {
		section, err := Decode(test.in)
		assert.Nil(t, section, test.description)
		assert.Equal(t, test.expected, err, test.description)
	}
}

func TestDecodeMinimalCore(t *testing.T) {
	section, err := Decode(minimalCore)
	require.NoError(t, err)

	expected := &TcfEuV2{
		Core: Core{
			Created:               1650492000,
			LastUpdated:           1650492000,
			CmpID:                 31,
			CmpVersion:            640,
			ConsentScreen:         1,
			ConsentLanguage:       "EN",
			VendorListVersion:     126,
			PolicyVersion:         2,
			IsServiceSpecific:     true,
			PublisherCountryCode:  "DE",
			PublisherRestrictions: []PublisherRestriction{},
		},
	}
	assert.Equal(t, expected, section)
	assert.Equal(t, SectionID, section.SectionID())
}

func TestDecodeRangedCore(t *testing.T) {
	section, err := Decode(restrictedCore)
	require.NoError(t, err)

	expected := Core{
		Created:                    1650492000,
		LastUpdated:                1650492001,
		CmpID:                      300,
		CmpVersion:                 5,
		ConsentScreen:              3,
		ConsentLanguage:            "FR",
		VendorListVersion:          150,
		PolicyVersion:              4,
		IsServiceSpecific:          false,
		UseNonStandardStacks:       true,
		SpecialFeatureOptins:       idset.Of(1, 3),
		PurposeConsents:            idset.Of(1, 2, 7, 10),
		PurposeLegitimateInterests: idset.Of(2, 7),
		PurposeOneTreatment:        true,
		PublisherCountryCode:       "FR",
		VendorConsents:             idset.Of(2, 50, 51, 52, 755),
		VendorLegitimateInterests:  idset.Of(1, 10),
		PublisherRestrictions: []PublisherRestriction{
			{PurposeID: 2, RestrictionType: RequireConsent, RestrictedVendorIDs: idset.Of(8, 20, 21, 22)},
			{PurposeID: 7, RestrictionType: Undefined},
			{PurposeID: 7, RestrictionType: NotAllowed, RestrictedVendorIDs: idset.Of(44)},
		},
	}
	assert.Equal(t, expected, section.Core)
	assert.Nil(t, section.DisclosedVendors)
	assert.Nil(t, section.AllowedVendors)
	assert.Nil(t, section.PublisherPurposes)
}

func TestDecodeTruncatedRestrictions(t *testing.T) {
	section, err := Decode(truncatedSecondRestriction)
	require.NoError(t, err)

	assert.Equal(t, []PublisherRestriction{
		{PurposeID: 2, RestrictionType: RequireConsent, RestrictedVendorIDs: idset.Of(8, 20, 21, 22)},
	}, section.Core.PublisherRestrictions)
}

func TestDecodeOptionalSegments(t *testing.T) {
	section, err := Decode(rangedCore + "." + disclosedVendors + "." + allowedVendors + "." + publisherPurposes)
	require.NoError(t, err)

	require.NotNil(t, section.DisclosedVendors)
	assert.Equal(t, []uint16{2, 8}, section.DisclosedVendors.IDs())

	require.NotNil(t, section.AllowedVendors)
	assert.Equal(t, []uint16{800, 801, 802}, section.AllowedVendors.IDs())

	assert.Equal(t, &PublisherPurposes{
		Consents:                  idset.Of(1, 2),
		LegitimateInterests:       idset.Of(3),
		CustomConsents:            idset.Of(1, 3),
		CustomLegitimateInterests: idset.Of(2),
	}, section.PublisherPurposes)
}

func TestDecodeLegacySample(t *testing.T) {
	section, err := Decode(legacySample)
	require.NoError(t, err)

	assert.Equal(t, uint64(1762214400), section.Core.Created)
	assert.Equal(t, uint16(6), section.Core.CmpID)
	assert.Equal(t, uint16(1), section.Core.CmpVersion)
	assert.Equal(t, "EN", section.Core.ConsentLanguage)
	assert.Equal(t, "ES", section.Core.PublisherCountryCode)
	assert.Equal(t, uint16(130), section.Core.VendorListVersion)
	assert.Equal(t, uint8(5), section.Core.PolicyVersion)
	assert.Equal(t, idset.Of(1, 2), section.Core.SpecialFeatureOptins)
	assert.Equal(t, idset.Of(2, 7, 8, 9, 10, 11), section.Core.PurposeLegitimateInterests)

	assert.Equal(t, 427, section.Core.VendorConsents.Len())
	assert.True(t, section.Core.VendorConsents.Contains(1))
	assert.True(t, section.Core.VendorConsents.Contains(10))
	assert.False(t, section.Core.VendorConsents.Contains(3))
	assert.Equal(t, 69, section.Core.VendorLegitimateInterests.Len())
	assert.True(t, section.Core.VendorLegitimateInterests.Contains(42))

	// 20 restrictions are declared but the string only holds 14
	require.Len(t, section.Core.PublisherRestrictions, 14)
	first := section.Core.PublisherRestrictions[0]
	assert.Equal(t, uint8(2), first.PurposeID)
	assert.Equal(t, RequireConsent, first.RestrictionType)
	assert.Equal(t, 84, first.RestrictedVendorIDs.Len())
	second := section.Core.PublisherRestrictions[1]
	assert.Equal(t, RequireLegitimateInterest, second.RestrictionType)
	assert.Equal(t, []uint16{138, 744, 1165}, second.RestrictedVendorIDs.IDs())

	require.NotNil(t, section.PublisherPurposes)
	assert.Equal(t, idset.Of(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11), section.PublisherPurposes.Consents)
	assert.True(t, section.PublisherPurposes.LegitimateInterests.IsEmpty())
}

// TestDecodeMatchesGoGDPR checks the core fields against the TCF v2 consent string decoder.
func TestDecodeMatchesGoGDPR(t *testing.T) {
	for _, consent := range []string{minimalCore, rangedCore} {
		section, err := Decode(consent)
		require.NoError(t, err, consent)

		parsed, err := vendorconsent.ParseString(consent)
		require.NoError(t, err, consent)
		reference, ok := parsed.(tcf2.ConsentMetadata)
		require.True(t, ok, consent)

		core := section.Core
		assert.Equal(t, uint64(reference.Created().Unix()), core.Created, consent)
		assert.Equal(t, uint64(reference.LastUpdated().Unix()), core.LastUpdated, consent)
		assert.Equal(t, reference.CmpID(), core.CmpID, consent)
		assert.Equal(t, reference.CmpVersion(), core.CmpVersion, consent)
		assert.Equal(t, reference.ConsentScreen(), core.ConsentScreen, consent)
		assert.Equal(t, reference.ConsentLanguage(), core.ConsentLanguage, consent)
		assert.Equal(t, reference.VendorListVersion(), core.VendorListVersion, consent)
		assert.Equal(t, reference.PurposeOneTreatment(), core.PurposeOneTreatment, consent)

		for id := uint16(1); id <= 24; id++ {
			purpose := consentconstants.Purpose(id)
			assert.Equal(t, reference.PurposeAllowed(purpose), core.PurposeConsents.Contains(id), "purpose %d", id)
			assert.Equal(t, reference.PurposeLITransparency(purpose), core.PurposeLegitimateInterests.Contains(id), "purpose %d", id)
		}
		for id := uint16(1); id <= 12; id++ {
			assert.Equal(t, reference.SpecialFeatureOptIn(id), core.SpecialFeatureOptins.Contains(id), "special feature %d", id)
		}
		for id := uint16(1); id <= 800; id++ {
			assert.Equal(t, reference.VendorConsent(id), core.VendorConsents.Contains(id), "vendor %d", id)
			assert.Equal(t, reference.VendorLegitInterest(id), core.VendorLegitimateInterests.Contains(id), "vendor %d", id)
		}
	}
}

func TestRestrictionTypeFromValue(t *testing.T) {
	assert.Equal(t, NotAllowed, RestrictionTypeFromValue(0))
	assert.Equal(t, RequireConsent, RestrictionTypeFromValue(1))
	assert.Equal(t, RequireLegitimateInterest, RestrictionTypeFromValue(2))
	assert.Equal(t, Undefined, RestrictionTypeFromValue(3))
	assert.Equal(t, Undefined, RestrictionTypeFromValue(200))
	assert.Equal(t, "Undefined", RestrictionType(9).String())
}

func TestMarshalJSON(t *testing.T) {
	section, err := Decode(restrictedCore + "." + disclosedVendors)
	require.NoError(t, err)

	out, err := json.Marshal(section)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, []any{2.0, 8.0}, decoded["disclosed_vendors"])
	assert.NotContains(t, decoded, "allowed_vendors")

	core := decoded["core"].(map[string]any)
	assert.Equal(t, "FR", core["consent_language"])
	restrictions := core["publisher_restrictions"].([]any)
	require.Len(t, restrictions, 3)
	assert.Equal(t, "RequireConsent", restrictions[0].(map[string]any)["restriction_type"])
}
