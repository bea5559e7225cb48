package extract

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/qmanhbeo/uk-procurement-data-pipeline/internal/record"
	"github.com/qmanhbeo/uk-procurement-data-pipeline/internal/textutil"
)

// contractTypeRules is the heuristic mapping from a free-text main
// procurement category to a declared contract type. Best effort: the
// source carries no enumerated vocabulary. Order matters: "work" must be
// checked before "service" and "supply".
var contractTypeRules = []struct {
	substr string
	ctype  string
}{
	{"work", "WORKS"},
	{"service", "SERVICES"},
	{"supply", "SUPPLIES"},
	{"good", "SUPPLIES"},
}

func inferContractType(category string) *string {
	lower := strings.ToLower(category)
	for _, rule := range contractTypeRules {
		if strings.Contains(lower, rule.substr) {
			return record.String(rule.ctype)
		}
	}
	return nil
}

// UKFormNotice projects one un-namespaced UK form document onto the
// canonical record. formTag is the form-identifying element the
// dispatcher matched.
//
// Suppliers are aggregated across every award's party list, which
// intentionally differs from the OCDS JSON adapter's document-global
// party scan; the two sources model supplier attachment differently.
func UKFormNotice(top *xmlquery.Node, formTag string) *record.Record {
	rec := &record.Record{
		SchemaType: record.String(formTag),
		FormType:   record.String(strings.ReplaceAll(formTag, "_2023", "")),
	}
	rec.TDDocumentTypeCode = rec.FormType

	if noticeData := xmlquery.FindOne(top, "//NOTICE_DATA"); noticeData != nil {
		rec.NoDocOJS = Text(noticeData.SelectElement("NO_DOC_EXT"))
		rec.DocID = Text(noticeData.SelectElement("DOC_ID"))
		rec.NoticeURL = Text(noticeData.SelectElement("URI_DOC"))
		rec.DatePub = Text(noticeData.SelectElement("PUBLISHED"))
	}

	ukx := xmlquery.FindOne(top, "//"+formTag)
	if ukx == nil {
		rec.NoticeTypeGroup = record.String(NoticeTypeOther)
		return rec
	}

	if rec.DocID == nil {
		rec.DocID = Text(ukx.SelectElement("id"))
	}
	if rec.DatePub == nil {
		rec.DatePub = Text(ukx.SelectElement("date"))
	}

	extractUKParties(ukx, rec)
	extractUKAwards(ukx, rec)

	if tender := ukx.SelectElement("tender"); tender != nil {
		rec.ObjTitle = Text(tender.SelectElement("title"))
		rec.ShortDescr = cleanOptional(Text(tender.SelectElement("description")))
	}
	rec.TIText = rec.ObjTitle

	tags := childTexts(ukx, "tag")
	rec.NoticeTypeGroup = record.String(ClassifyUKForm(formTag, tags))

	return rec
}

// extractUKParties resolves the buyer and supplier projections from the
// form's party list. The first party whose roles contain "buyer" wins;
// a bare buyer element supplies only a name as fallback.
func extractUKParties(ukx *xmlquery.Node, rec *record.Record) {
	var supplierNames []string

	for _, party := range ukx.SelectElements("parties") {
		roles := childTexts(party, "roles")
		name := Text(party.SelectElement("name"))

		addr := party.SelectElement("address")
		var region, country, town, postcode *string
		if addr != nil {
			region = Text(addr.SelectElement("region"))
			country = Text(addr.SelectElement("country"))
			town = Text(addr.SelectElement("locality"))
			postcode = Text(addr.SelectElement("postalCode"))
		}
		var detailsURL *string
		if details := party.SelectElement("details"); details != nil {
			detailsURL = Text(details.SelectElement("url"))
		}

		if containsTag(roles, "buyer") && rec.CAName == nil {
			rec.CAName = name
			rec.CACountryCode = country
			rec.ISOCountry = country
			rec.CATown = town
			rec.TITown = town
			rec.CAPostcode = postcode
			rec.CANUTSCode = region
			rec.CAURL = detailsURL
		}

		if containsTag(roles, "supplier") && name != nil {
			supplierNames = append(supplierNames, *name)
		}
	}

	if rec.CAName == nil {
		if buyer := ukx.SelectElement("buyer"); buyer != nil {
			rec.CAName = Text(buyer.SelectElement("name"))
		}
	}

	// For UK forms the winning suppliers land in the contractor column.
	rec.ContractorNames = textutil.JoinUniqueSorted(supplierNames)
}

// extractUKAwards walks awards -> items for CPV classifications and
// delivery regions, and derives the contract type from the first award's
// main procurement category.
func extractUKAwards(ukx *xmlquery.Node, rec *record.Record) {
	var cpvCodes []string
	var perfRegions []string

	for _, award := range ukx.SelectElements("awards") {
		for _, item := range award.SelectElements("items") {
			for _, ac := range item.SelectElements("additionalClassifications") {
				scheme := Text(ac.SelectElement("scheme"))
				id := Text(ac.SelectElement("id"))
				if scheme != nil && *scheme == "CPV" && id != nil {
					cpvCodes = append(cpvCodes, *id)
				}
			}
			for _, da := range item.SelectElements("deliveryAddresses") {
				if region := Text(da.SelectElement("region")); region != nil {
					perfRegions = append(perfRegions, *region)
				}
			}
		}
	}

	if len(cpvCodes) > 0 {
		rec.CPVMainCode = record.String(cpvCodes[0])
		rec.OriginalCPVCode = rec.CPVMainCode
	}
	if len(cpvCodes) > 1 {
		rec.AdditionalCPVCodes = textutil.JoinUniqueSorted(cpvCodes[1:])
	}
	rec.PerfNUTSCode = textutil.JoinUniqueSorted(perfRegions)

	for _, award := range ukx.SelectElements("awards") {
		if category := Text(award.SelectElement("mainProcurementCategory")); category != nil {
			rec.MainProcurementCategory = category
			rec.TypeContractCType = inferContractType(*category)
			break
		}
	}
}
