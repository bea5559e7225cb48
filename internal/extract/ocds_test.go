package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmanhbeo/uk-procurement-data-pipeline/internal/record"
)

const minimalRelease = `{
	"uri": "https://www.contractsfinder.service.gov.uk/Published/Notice/OCDS/1",
	"publishedDate": "2023-05-01T00:00:00Z",
	"publisher": {"name": "Contracts Finder", "scheme": "GB-GOV", "uid": "cf", "uri": "https://example.gov.uk"},
	"version": "1.1",
	"license": "http://www.nationalarchives.gov.uk/doc/open-government-licence/version/3/",
	"extensions": ["ext-a", "ext-b", "ext-a"],
	"releases": [{
		"ocid": "ocds-b5fd17-1",
		"id": "rel-1",
		"date": "2023-05-01T00:00:00Z",
		"language": "en",
		"tag": ["award", "awardUpdate"],
		"initiationType": "tender",
		"buyer": {"id": "B1", "name": "Leeds City Council"},
		"parties": [
			{
				"id": "B1",
				"name": "Leeds City Council",
				"roles": ["buyer"],
				"identifier": {"legalName": "Leeds City Council", "scheme": "GB-LAE", "id": "LDS"},
				"address": {"streetAddress": "Civic Hall", "locality": "Leeds", "postalCode": "LS1 1UR", "countryName": "England"},
				"contactPoint": {"name": "Procurement", "email": "buy@leeds.gov.uk", "telephone": "0113"},
				"details": {"url": "https://leeds.gov.uk"}
			},
			{
				"id": "S1",
				"name": "Acme Ltd",
				"roles": ["supplier"],
				"identifier": {"legalName": "Acme Limited", "scheme": "GB-COH", "id": "0001"},
				"address": {"locality": "York", "postalCode": "YO1", "countryName": "England"},
				"details": {"scale": "sme", "vcse": false}
			}
		],
		"tender": {
			"id": "t-1",
			"title": "Road resurfacing",
			"description": "<p>Resurfacing of  local roads</p>",
			"status": "complete",
			"mainProcurementCategory": "works",
			"value": {"amount": 150000, "currency": "GBP"},
			"minValue": {"amount": 100000, "currency": "GBP"},
			"classification": {"scheme": "CPV", "id": "45233220", "description": "Surface work for roads"},
			"additionalClassifications": [
				{"id": "45233222", "description": "Paving"},
				{"id": "45233222", "description": "Paving"}
			],
			"documents": [
				{"id": "d1", "documentType": "tenderNotice", "description": "Tender notice", "url": "https://notice/1", "datePublished": "2023-01-01", "format": "text/html", "language": "en"},
				{"id": "d2", "documentType": "technicalSpecifications", "url": "https://spec/1"}
			],
			"items": [
				{"id": "item-1", "deliveryAddresses": [
					{"postalCode": "LS2", "region": "UKE45", "countryName": "England"},
					{"region": "UKE44"}
				]},
				{"id": "item-2", "deliveryAddresses": [{"region": "UKE45"}]}
			],
			"datePublished": "2023-01-01T00:00:00Z",
			"tenderPeriod": {"endDate": "2023-02-01T00:00:00Z"},
			"contractPeriod": {"startDate": "2023-03-01T00:00:00Z", "endDate": "2024-03-01T00:00:00Z"},
			"procurementMethod": "open",
			"procurementMethodDetails": "Open procedure",
			"suitability": {"sme": true, "vcse": false}
		},
		"awards": [
			{
				"id": "aw-1",
				"status": "active",
				"date": "2023-02-15T00:00:00Z",
				"datePublished": "2023-02-16T00:00:00Z",
				"value": {"amount": 140000, "currency": "GBP"},
				"contractPeriod": {"startDate": "2023-03-01T00:00:00Z", "endDate": "2024-03-01T00:00:00Z"},
				"suppliers": [{"id": "S1", "name": "Acme Ltd"}],
				"documents": [
					{"id": "ad1", "documentType": "awardNotice", "description": "Award notice", "url": "https://award/1", "datePublished": "2023-02-16", "format": "text/html", "language": "en"}
				]
			},
			{"id": "aw-2", "suppliers": [{"id": "S9", "name": "Other"}]}
		]
	}]
}`

func str(s string) *string { return &s }

func TestOCDSReleaseRoundTrip(t *testing.T) {
	rec := OCDSBytes([]byte(minimalRelease))
	require.NotNil(t, rec)

	assert.Equal(t, str(record.StatusOK), rec.Status)
	assert.Equal(t, str(record.SchemaOCDSJSON), rec.SchemaType)

	// buyer projection resolves through the party list
	assert.Equal(t, str("B1"), rec.BuyerID)
	assert.Equal(t, str("Leeds City Council"), rec.BuyerName)
	assert.Equal(t, str("Leeds City Council"), rec.BuyerLegalName)
	assert.Equal(t, str("GB-LAE"), rec.BuyerIdentifierScheme)
	assert.Equal(t, str("Civic Hall"), rec.BuyerStreetAddress)
	assert.Equal(t, str("buy@leeds.gov.uk"), rec.BuyerContactEmail)
	assert.Equal(t, str("buyer"), rec.BuyerRoles)

	// supplier projection from the global party list
	assert.Equal(t, str("S1"), rec.SupplierPartyIDs)
	assert.Equal(t, str("Acme Ltd"), rec.SupplierPartyNames)
	assert.Equal(t, str("Acme Limited"), rec.SupplierLegalNames)
	assert.Equal(t, str("sme"), rec.SupplierScales)
	assert.Equal(t, str("false"), rec.SupplierVCSEFlags)

	// first award only
	assert.Equal(t, str("aw-1"), rec.AwardID)
	assert.Equal(t, str("S1"), rec.AwardSuppliersIDs)
	assert.Equal(t, str("Acme Ltd"), rec.AwardSuppliersNames)
	require.NotNil(t, rec.AwardValueAmount)
	assert.Equal(t, 140000.0, *rec.AwardValueAmount)
	assert.Equal(t, str("https://award/1"), rec.AwardNoticeURL)
	assert.Equal(t, str("text/html"), rec.AwardNoticeFormat)

	// tender and classification
	assert.Equal(t, str("Road resurfacing"), rec.TenderTitle)
	assert.Equal(t, str("Resurfacing of local roads"), rec.TenderDescription, "markup stripped, whitespace collapsed")
	assert.Equal(t, str("45233220"), rec.CPVID)
	assert.Equal(t, str("45233222"), rec.AdditionalCPVIDs, "duplicates dropped")
	require.NotNil(t, rec.ValueAmount)
	assert.Equal(t, 150000.0, *rec.ValueAmount)

	// documents
	assert.Equal(t, str("d1|d2"), rec.TenderDocumentIDs)
	assert.Equal(t, str("https://notice/1"), rec.TenderNoticeURL)

	// geography: joined variants hold every distinct value, singles the first
	assert.Equal(t, str("UKE45|UKE44"), rec.TenderDeliveryRegionsAll)
	assert.Equal(t, str("LS2"), rec.TenderDeliveryPostalAll)
	assert.Equal(t, str("UKE45"), rec.DeliveryRegion)
	assert.Equal(t, str("LS2"), rec.DeliveryPostalCode)
	assert.Equal(t, str("England"), rec.DeliveryCountry)

	// timing stays opaque
	assert.Equal(t, str("2023-02-01T00:00:00Z"), rec.TenderEndDate)

	// flags
	require.NotNil(t, rec.SuitabilitySME)
	assert.True(t, *rec.SuitabilitySME)

	// package metadata
	assert.Equal(t, str("ext-a|ext-b"), rec.Extensions)
	assert.Equal(t, str("award"), rec.ReleaseTag)
	assert.Equal(t, str("award|awardUpdate"), rec.ReleaseTagsAll)
}

func TestOCDSBuyerPointerWithoutMatchingParty(t *testing.T) {
	rec := OCDSBytes([]byte(`{
		"releases": [{
			"buyer": {"id": "B-missing", "name": "Ghost"},
			"parties": [{"id": "S1", "name": "Acme", "roles": ["supplier"]}]
		}]
	}`))

	assert.Nil(t, rec.BuyerID)
	assert.Nil(t, rec.BuyerName)
	assert.Nil(t, rec.BuyerLegalName)
	assert.Equal(t, str("S1"), rec.SupplierPartyIDs)
}

func TestOCDSEmptyPackage(t *testing.T) {
	rec := OCDSBytes([]byte(`{}`))
	require.NotNil(t, rec)

	assert.Equal(t, str(record.StatusOK), rec.Status)
	assert.Nil(t, rec.OCID)
	assert.Nil(t, rec.BuyerID)
	assert.Nil(t, rec.AwardID)
	assert.Nil(t, rec.SupplierPartyIDs)
}

func TestOCDSBytesInvalidJSON(t *testing.T) {
	rec := OCDSBytes([]byte(`{not json`))
	require.NotNil(t, rec)

	assert.Equal(t, str(record.StatusFetchFailed), rec.Status)
	assert.NotNil(t, rec.ParseError)
	assert.Nil(t, rec.OCID)
}

func TestOCDSFetchFailed(t *testing.T) {
	rec := OCDSFetchFailed("https://example/notice/1")

	assert.Equal(t, str(record.StatusFetchFailed), rec.Status)
	assert.Equal(t, str("https://example/notice/1"), rec.URI)
	assert.Nil(t, rec.ParseError)
}

func TestOCDSMultiRoleParty(t *testing.T) {
	rec := OCDSBytes([]byte(`{
		"releases": [{
			"buyer": {"id": "P1", "name": "Dual"},
			"parties": [{"id": "P1", "name": "Dual", "roles": ["buyer", "supplier"]}]
		}]
	}`))

	// role membership, not position: the same party is both projections
	assert.Equal(t, str("P1"), rec.BuyerID)
	assert.Equal(t, str("P1"), rec.SupplierPartyIDs)
	assert.Equal(t, str("buyer|supplier"), rec.SupplierRoles)
}
