package extract

import (
	"encoding/json"
	"strconv"

	"github.com/qmanhbeo/uk-procurement-data-pipeline/internal/jsonutil"
	"github.com/qmanhbeo/uk-procurement-data-pipeline/internal/record"
	"github.com/qmanhbeo/uk-procurement-data-pipeline/internal/textutil"
)

// OCDSBytes decodes one OCDS release package and projects it onto the
// canonical record. Undecodable input degrades to a status-marked record,
// never an error.
func OCDSBytes(data []byte) *record.Record {
	var pkg map[string]any
	if err := json.Unmarshal(data, &pkg); err != nil {
		rec := OCDSFetchFailed("")
		rec.ParseError = record.String(err.Error())
		return rec
	}
	return OCDSRelease(pkg)
}

// OCDSFetchFailed builds the record the collaborator stores when a notice
// URI could not be fetched or decoded at all.
func OCDSFetchFailed(uri string) *record.Record {
	rec := &record.Record{
		SchemaType: record.String(record.SchemaOCDSJSON),
		Status:     record.String(record.StatusFetchFailed),
	}
	if uri != "" {
		rec.URI = record.String(uri)
	}
	return rec
}

// OCDSRelease projects one parsed OCDS release package onto the canonical
// record. Only the first release and the first award are used: this is a
// single-point-in-time snapshot extractor, not an amendment-chain
// reconciler. Every lookup defaults absent structure to empty, so a
// sparse package yields a sparse record rather than a fault.
func OCDSRelease(pkg map[string]any) *record.Record {
	rec := &record.Record{
		SchemaType: record.String(record.SchemaOCDSJSON),
		Status:     record.String(record.StatusOK),
	}

	// package-level metadata
	rec.URI = jsonutil.Str(pkg, "uri")
	rec.PublishedDate = jsonutil.Str(pkg, "publishedDate")
	rec.PublisherName = jsonutil.Str(pkg, "publisher", "name")
	rec.PublisherScheme = jsonutil.Str(pkg, "publisher", "scheme")
	rec.PublisherUID = jsonutil.Str(pkg, "publisher", "uid")
	rec.PublisherURI = jsonutil.Str(pkg, "publisher", "uri")
	rec.Version = jsonutil.Str(pkg, "version")
	rec.License = jsonutil.Str(pkg, "license")
	rec.PublicationPolicy = jsonutil.Str(pkg, "publicationPolicy")
	rec.Extensions = textutil.JoinFirstSeen(jsonutil.Strings(jsonutil.Arr(pkg, "extensions")))

	releases := jsonutil.Objects(pkg, "releases")
	release := map[string]any{}
	if len(releases) > 0 {
		release = releases[0]
	}

	// release-level
	rec.OCID = jsonutil.Str(release, "ocid")
	rec.ReleaseID = jsonutil.Str(release, "id")
	rec.ReleaseTitle = jsonutil.Str(release, "title")
	rec.ReleaseDate = jsonutil.Str(release, "date")
	rec.ReleaseLanguage = jsonutil.Str(release, "language")
	rec.InitiationType = jsonutil.Str(release, "initiationType")

	tags := jsonutil.Strings(jsonutil.Arr(release, "tag"))
	if len(tags) > 0 {
		rec.ReleaseTag = record.String(tags[0])
	}
	rec.ReleaseTagsAll = textutil.JoinFirstSeen(tags)

	extractPlanning(release, rec)
	extractTender(release, rec)
	extractBuyer(release, rec)
	extractSuppliers(release, rec)
	extractAward(release, rec)

	return rec
}

func extractPlanning(release map[string]any, rec *record.Record) {
	milestones := jsonutil.Objects(release, "planning", "milestones")
	rec.PlanningMilestoneIDs = textutil.JoinFirstSeen(jsonutil.Collect(milestones, "id"))
	rec.PlanningMilestoneTitles = textutil.JoinFirstSeen(jsonutil.Collect(milestones, "title"))
	rec.PlanningMilestoneTypes = textutil.JoinFirstSeen(jsonutil.Collect(milestones, "type"))
	rec.PlanningMilestoneDueDates = textutil.JoinFirstSeen(jsonutil.Collect(milestones, "dueDate"))

	docs := jsonutil.Objects(release, "planning", "documents")
	rec.PlanningDocumentIDs = textutil.JoinFirstSeen(jsonutil.Collect(docs, "id"))
	rec.PlanningDocumentTypes = textutil.JoinFirstSeen(jsonutil.Collect(docs, "documentType"))
	rec.PlanningDocumentDescs = textutil.JoinFirstSeen(jsonutil.Collect(docs, "description"))
	rec.PlanningDocumentURLs = textutil.JoinFirstSeen(jsonutil.Collect(docs, "url"))
	rec.PlanningDocumentPublished = textutil.JoinFirstSeen(jsonutil.Collect(docs, "datePublished"))
	rec.PlanningDocumentFormats = textutil.JoinFirstSeen(jsonutil.Collect(docs, "format"))
	rec.PlanningDocumentLanguages = textutil.JoinFirstSeen(jsonutil.Collect(docs, "language"))
}

func extractTender(release map[string]any, rec *record.Record) {
	tender := jsonutil.Obj(release, "tender")

	rec.TenderID = jsonutil.Str(tender, "id")
	rec.TenderTitle = jsonutil.Str(tender, "title")
	rec.TenderDescription = cleanOptional(jsonutil.Str(tender, "description"))
	rec.TenderStatus = jsonutil.Str(tender, "status")
	rec.MainProcurementCategory = jsonutil.Str(tender, "mainProcurementCategory")

	rec.ValueAmount = jsonutil.Num(tender, "value", "amount")
	rec.ValueCurrency = jsonutil.Str(tender, "value", "currency")
	rec.MinValueAmount = jsonutil.Num(tender, "minValue", "amount")
	rec.MinValueCurrency = jsonutil.Str(tender, "minValue", "currency")

	rec.CPVScheme = jsonutil.Str(tender, "classification", "scheme")
	rec.CPVID = jsonutil.Str(tender, "classification", "id")
	rec.CPVDescription = jsonutil.Str(tender, "classification", "description")

	addClass := jsonutil.Objects(tender, "additionalClassifications")
	rec.AdditionalCPVIDs = textutil.JoinFirstSeen(jsonutil.Collect(addClass, "id"))
	rec.AdditionalCPVDescs = textutil.JoinFirstSeen(jsonutil.Collect(addClass, "description"))

	docs := jsonutil.Objects(tender, "documents")
	rec.TenderDocumentIDs = textutil.JoinFirstSeen(jsonutil.Collect(docs, "id"))
	rec.TenderDocumentTypes = textutil.JoinFirstSeen(jsonutil.Collect(docs, "documentType"))
	rec.TenderDocumentDescs = textutil.JoinFirstSeen(jsonutil.Collect(docs, "description"))
	rec.TenderDocumentURLs = textutil.JoinFirstSeen(jsonutil.Collect(docs, "url"))
	rec.TenderDocumentPublished = textutil.JoinFirstSeen(jsonutil.Collect(docs, "datePublished"))
	rec.TenderDocumentModified = textutil.JoinFirstSeen(jsonutil.Collect(docs, "dateModified"))
	rec.TenderDocumentFormats = textutil.JoinFirstSeen(jsonutil.Collect(docs, "format"))
	rec.TenderDocumentLanguages = textutil.JoinFirstSeen(jsonutil.Collect(docs, "language"))

	for _, doc := range docs {
		if t, _ := doc["documentType"].(string); t == "tenderNotice" {
			rec.TenderNoticeURL = jsonutil.Str(doc, "url")
			rec.TenderNoticeDescription = cleanOptional(jsonutil.Str(doc, "description"))
			break
		}
	}

	items := jsonutil.Objects(tender, "items")
	rec.TenderItemIDs = textutil.JoinFirstSeen(jsonutil.Collect(items, "id"))

	var postals, regions, countries []string
	for _, item := range items {
		for _, addr := range jsonutil.Objects(item, "deliveryAddresses") {
			if s, ok := addr["postalCode"].(string); ok {
				postals = textutil.AppendUnique(postals, s)
			}
			if s, ok := addr["region"].(string); ok {
				regions = textutil.AppendUnique(regions, s)
			}
			if s, ok := addr["countryName"].(string); ok {
				countries = textutil.AppendUnique(countries, s)
			}
		}
	}
	rec.TenderDeliveryPostalAll = textutil.JoinFirstSeen(postals)
	rec.TenderDeliveryRegionsAll = textutil.JoinFirstSeen(regions)
	rec.TenderDeliveryCountryAll = textutil.JoinFirstSeen(countries)

	// representative single values: the first non-empty hit across the
	// first item's addresses, per field independently
	if len(items) > 0 {
		for _, addr := range jsonutil.Objects(items[0], "deliveryAddresses") {
			setIfEmpty(&rec.DeliveryPostalCode, jsonutil.Str(addr, "postalCode"))
			setIfEmpty(&rec.DeliveryRegion, jsonutil.Str(addr, "region"))
			setIfEmpty(&rec.DeliveryCountry, jsonutil.Str(addr, "countryName"))
		}
	}

	rec.TenderDatePublished = jsonutil.Str(tender, "datePublished")
	rec.TenderEndDate = jsonutil.Str(tender, "tenderPeriod", "endDate")
	rec.ContractStartDate = jsonutil.Str(tender, "contractPeriod", "startDate")
	rec.ContractEndDate = jsonutil.Str(tender, "contractPeriod", "endDate")

	rec.ProcurementMethod = jsonutil.Str(tender, "procurementMethod")
	rec.ProcurementMethodDetails = jsonutil.Str(tender, "procurementMethodDetails")
	rec.SuitabilitySME = jsonutil.Bool(tender, "suitability", "sme")
	rec.SuitabilityVCSE = jsonutil.Bool(tender, "suitability", "vcse")
}

func setIfEmpty(dst **string, value *string) {
	if *dst == nil && value != nil && *value != "" {
		*dst = value
	}
}

// findBuyerParty resolves release.buyer.id against the parties list and
// returns the first party with that id, or nil.
func findBuyerParty(release map[string]any) map[string]any {
	buyerID := jsonutil.Str(release, "buyer", "id")
	if buyerID == nil {
		return nil
	}
	for _, party := range jsonutil.Objects(release, "parties") {
		if id, _ := party["id"].(string); id == *buyerID {
			return party
		}
	}
	return nil
}

// extractBuyer fills the buyer projection only when the buyer pointer
// resolves to a party; a dangling pointer leaves every buyer field nil.
func extractBuyer(release map[string]any, rec *record.Record) {
	party := findBuyerParty(release)
	if party == nil {
		return
	}

	rec.BuyerID = jsonutil.Str(release, "buyer", "id")
	rec.BuyerName = jsonutil.Str(release, "buyer", "name")

	rec.BuyerLegalName = jsonutil.Str(party, "identifier", "legalName")
	rec.BuyerIdentifierScheme = jsonutil.Str(party, "identifier", "scheme")
	rec.BuyerIdentifierID = jsonutil.Str(party, "identifier", "id")

	rec.BuyerStreetAddress = jsonutil.Str(party, "address", "streetAddress")
	rec.BuyerLocality = jsonutil.Str(party, "address", "locality")
	rec.BuyerPostalCode = jsonutil.Str(party, "address", "postalCode")
	rec.BuyerCountryName = jsonutil.Str(party, "address", "countryName")

	rec.BuyerContactName = jsonutil.Str(party, "contactPoint", "name")
	rec.BuyerContactEmail = jsonutil.Str(party, "contactPoint", "email")
	rec.BuyerContactTelephone = jsonutil.Str(party, "contactPoint", "telephone")
	rec.BuyerDetailsURL = jsonutil.Str(party, "details", "url")

	rec.BuyerRoles = textutil.JoinFirstSeen(jsonutil.Strings(jsonutil.Arr(party, "roles")))
}

// findSupplierParties returns every party whose roles contain "supplier",
// in document order. Role membership, not position, decides.
func findSupplierParties(release map[string]any) []map[string]any {
	var suppliers []map[string]any
	for _, party := range jsonutil.Objects(release, "parties") {
		for _, role := range jsonutil.Strings(jsonutil.Arr(party, "roles")) {
			if role == "supplier" {
				suppliers = append(suppliers, party)
				break
			}
		}
	}
	return suppliers
}

func extractSuppliers(release map[string]any, rec *record.Record) {
	suppliers := findSupplierParties(release)
	if len(suppliers) == 0 {
		return
	}

	rec.SupplierPartyIDs = textutil.JoinFirstSeen(jsonutil.Collect(suppliers, "id"))
	rec.SupplierPartyNames = textutil.JoinFirstSeen(jsonutil.Collect(suppliers, "name"))

	rec.SupplierLegalNames = textutil.JoinFirstSeen(jsonutil.CollectNested(suppliers, "identifier", "legalName"))
	rec.SupplierIdentifierSchemes = textutil.JoinFirstSeen(jsonutil.CollectNested(suppliers, "identifier", "scheme"))
	rec.SupplierIdentifierIDs = textutil.JoinFirstSeen(jsonutil.CollectNested(suppliers, "identifier", "id"))

	rec.SupplierStreetAddresses = textutil.JoinFirstSeen(jsonutil.CollectNested(suppliers, "address", "streetAddress"))
	rec.SupplierLocalities = textutil.JoinFirstSeen(jsonutil.CollectNested(suppliers, "address", "locality"))
	rec.SupplierPostalCodes = textutil.JoinFirstSeen(jsonutil.CollectNested(suppliers, "address", "postalCode"))
	rec.SupplierCountryNames = textutil.JoinFirstSeen(jsonutil.CollectNested(suppliers, "address", "countryName"))

	rec.SupplierScales = textutil.JoinFirstSeen(jsonutil.CollectNested(suppliers, "details", "scale"))
	rec.SupplierDetailsURLs = textutil.JoinFirstSeen(jsonutil.CollectNested(suppliers, "details", "url"))

	var vcse []string
	for _, party := range suppliers {
		if flag, ok := jsonutil.Obj(party, "details")["vcse"].(bool); ok {
			vcse = append(vcse, strconv.FormatBool(flag))
		}
	}
	rec.SupplierVCSEFlags = textutil.JoinFirstSeen(vcse)

	var roles []string
	for _, party := range suppliers {
		for _, role := range jsonutil.Strings(jsonutil.Arr(party, "roles")) {
			roles = textutil.AppendUnique(roles, role)
		}
	}
	rec.SupplierRoles = textutil.JoinFirstSeen(roles)
}

func extractAward(release map[string]any, rec *record.Record) {
	awards := jsonutil.Objects(release, "awards")
	if len(awards) == 0 {
		return
	}
	award := awards[0]

	rec.AwardID = jsonutil.Str(award, "id")
	rec.AwardStatus = jsonutil.Str(award, "status")
	rec.AwardDate = jsonutil.Str(award, "date")
	rec.AwardDatePublished = jsonutil.Str(award, "datePublished")

	rec.AwardValueAmount = jsonutil.Num(award, "value", "amount")
	rec.AwardValueCurrency = jsonutil.Str(award, "value", "currency")
	rec.AwardContractStartDate = jsonutil.Str(award, "contractPeriod", "startDate")
	rec.AwardContractEndDate = jsonutil.Str(award, "contractPeriod", "endDate")

	awardSuppliers := jsonutil.Objects(award, "suppliers")
	rec.AwardSuppliersIDs = textutil.JoinFirstSeen(jsonutil.Collect(awardSuppliers, "id"))
	rec.AwardSuppliersNames = textutil.JoinFirstSeen(jsonutil.Collect(awardSuppliers, "name"))

	docs := jsonutil.Objects(award, "documents")
	for _, doc := range docs {
		if t, _ := doc["documentType"].(string); t == "awardNotice" {
			rec.AwardNoticeURL = jsonutil.Str(doc, "url")
			rec.AwardNoticeDescription = cleanOptional(jsonutil.Str(doc, "description"))
			rec.AwardNoticePublished = jsonutil.Str(doc, "datePublished")
			rec.AwardNoticeFormat = jsonutil.Str(doc, "format")
			rec.AwardNoticeLanguage = jsonutil.Str(doc, "language")
			break
		}
	}

	rec.AwardDocumentIDs = textutil.JoinFirstSeen(jsonutil.Collect(docs, "id"))
	rec.AwardDocumentTypes = textutil.JoinFirstSeen(jsonutil.Collect(docs, "documentType"))
	rec.AwardDocumentDescs = textutil.JoinFirstSeen(jsonutil.Collect(docs, "description"))
	rec.AwardDocumentURLs = textutil.JoinFirstSeen(jsonutil.Collect(docs, "url"))
	rec.AwardDocumentPublished = textutil.JoinFirstSeen(jsonutil.Collect(docs, "datePublished"))
	rec.AwardDocumentModified = textutil.JoinFirstSeen(jsonutil.Collect(docs, "dateModified"))
	rec.AwardDocumentFormats = textutil.JoinFirstSeen(jsonutil.Collect(docs, "format"))
	rec.AwardDocumentLanguages = textutil.JoinFirstSeen(jsonutil.Collect(docs, "language"))
}
