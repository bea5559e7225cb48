package extract

import (
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/qmanhbeo/uk-procurement-data-pipeline/internal/record"
	"github.com/qmanhbeo/uk-procurement-data-pipeline/internal/textutil"
)

// The NUTS geography sub-schema changed namespace at a known point in
// time; both are probed, 2021 first. These URIs are part of the public
// contract.
const (
	NUTSNamespace2016 = "http://enotice.service.gov.uk/resource/schema/ted/2016/nuts"
	NUTSNamespace2021 = "http://enotice.service.gov.uk/resource/schema/ted/2021/nuts"
)

// tedDocument binds the namespaces of one parsed TED document. The
// primary namespace is discovered from the root element, not hard-coded;
// it is resolved once here and reused by every lookup.
type tedDocument struct {
	top *xmlquery.Node
	ns  map[string]string
}

func newTEDDocument(top *xmlquery.Node) *tedDocument {
	ns := map[string]string{
		"n2016": NUTSNamespace2016,
		"n2021": NUTSNamespace2021,
	}
	if root := rootElement(top); root != nil && root.NamespaceURI != "" {
		ns["ted"] = root.NamespaceURI
	}
	return &tedDocument{top: top, ns: ns}
}

func rootElement(top *xmlquery.Node) *xmlquery.Node {
	for child := top.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}
	return nil
}

func (d *tedDocument) compile(expr string) *xpath.Expr {
	if _, ok := d.ns["ted"]; !ok && strings.Contains(expr, "ted:") {
		// No primary namespace on the root element: this is not a TED
		// document, and every dialect lookup selects nothing.
		return nil
	}
	sel, err := xpath.CompileWithNS(expr, d.ns)
	if err != nil {
		return nil
	}
	return sel
}

// findOne evaluates expr from base (or the document top when base is
// nil). Expressions that cannot bind a prefix select nothing; a document
// that does not match this dialect degrades every field to nil.
func (d *tedDocument) findOne(base *xmlquery.Node, expr string) *xmlquery.Node {
	sel := d.compile(expr)
	if sel == nil {
		return nil
	}
	if base == nil {
		base = d.top
	}
	return xmlquery.QuerySelector(base, sel)
}

func (d *tedDocument) findAll(base *xmlquery.Node, expr string) []*xmlquery.Node {
	sel := d.compile(expr)
	if sel == nil {
		return nil
	}
	if base == nil {
		base = d.top
	}
	return xmlquery.QuerySelectorAll(base, sel)
}

// TEDNotice projects one legacy namespaced notice onto the canonical
// record. The document's classification attributes (TD/NC/PR/AC/MA/RP)
// are kept as raw codes; only the TD code is mapped to a notice group.
func TEDNotice(top *xmlquery.Node) *record.Record {
	d := newTEDDocument(top)

	rec := &record.Record{
		SchemaType: record.String(record.SchemaTED),
	}

	if root := rootElement(top); root != nil {
		rec.DocID = Attr(root, "DOC_ID")
		rec.Edition = Attr(root, "EDITION")
	}

	rec.DatePub = Text(d.findOne(nil, "//ted:REF_OJS/ted:DATE_PUB"))
	rec.DSDateDispatch = Text(d.findOne(nil, "//ted:CODIF_DATA/ted:DS_DATE_DISPATCH"))
	rec.ISOCountry = Attr(d.findOne(nil, "//ted:NOTICE_DATA/ted:ISO_COUNTRY"), "VALUE")
	rec.NoticeURL = Text(d.findOne(nil, "//ted:NOTICE_DATA/ted:URI_LIST/ted:URI_DOC[@LG='EN']"))
	rec.NoDocOJS = Text(d.findOne(nil, "//ted:NOTICE_DATA/ted:NO_DOC_OJS"))

	// CPV
	rec.OriginalCPVCode = Attr(d.findOne(nil, "//ted:NOTICE_DATA/ted:ORIGINAL_CPV"), "CODE")
	rec.CPVMainCode = Attr(d.findOne(nil, "//ted:OBJECT_CONTRACT/ted:CPV_MAIN/ted:CPV_CODE"), "CODE")

	var addCPVs []string
	for _, node := range d.findAll(nil, "//ted:OBJECT_DESCR/ted:CPV_ADDITIONAL/ted:CPV_CODE") {
		if code := Attr(node, "CODE"); code != nil {
			addCPVs = append(addCPVs, *code)
		}
	}
	rec.AdditionalCPVCodes = textutil.JoinUniqueSorted(addCPVs)

	// NUTS geography, dual-namespace probe
	var perfCodes []string
	for _, expr := range []string{
		"//ted:NOTICE_DATA/n2021:PERFORMANCE_NUTS",
		"//ted:NOTICE_DATA/n2016:PERFORMANCE_NUTS",
	} {
		for _, node := range d.findAll(nil, expr) {
			if code := Attr(node, "CODE"); code != nil {
				perfCodes = append(perfCodes, *code)
			}
		}
	}
	rec.PerfNUTSCode = textutil.JoinUniqueSorted(perfCodes)

	caCE := d.findOne(nil, "//ted:NOTICE_DATA/n2021:CA_CE_NUTS")
	if caCE == nil {
		caCE = d.findOne(nil, "//ted:NOTICE_DATA/n2016:CA_CE_NUTS")
	}
	rec.CACENUTSCode = Attr(caCE, "CODE")

	// English translated title block; no fallback to other languages
	if tiDoc := d.findOne(nil, "//ted:TRANSLATION_SECTION/ted:ML_TITLES/ted:ML_TI_DOC[@LG='EN']"); tiDoc != nil {
		rec.TICountry = Text(d.findOne(tiDoc, "ted:TI_CY"))
		rec.TITown = Text(d.findOne(tiDoc, "ted:TI_TOWN"))
		rec.TIText = Text(d.findOne(tiDoc, "ted:TI_TEXT/ted:P"))
	}

	// Contracting authority address block
	if ca := d.findOne(nil, "//ted:CONTRACTING_BODY/ted:ADDRESS_CONTRACTING_BODY"); ca != nil {
		rec.CAName = Text(d.findOne(ca, "ted:OFFICIALNAME"))
		rec.CATown = Text(d.findOne(ca, "ted:TOWN"))
		rec.CAPostcode = Text(d.findOne(ca, "ted:POSTAL_CODE"))
		rec.CAEmail = Text(d.findOne(ca, "ted:E_MAIL"))
		rec.CAURL = Text(d.findOne(ca, "ted:URL_GENERAL"))
		rec.CACountryCode = Attr(d.findOne(ca, "ted:COUNTRY"), "VALUE")

		caNUTS := d.findOne(ca, "n2021:NUTS")
		if caNUTS == nil {
			caNUTS = d.findOne(ca, "n2016:NUTS")
		}
		rec.CANUTSCode = Attr(caNUTS, "CODE")
	}

	// Object / description
	rec.ObjTitle = Text(d.findOne(nil, "//ted:OBJECT_CONTRACT/ted:TITLE/ted:P"))

	shortDescr := d.findOne(nil, "//ted:OBJECT_CONTRACT/ted:SHORT_DESCR/ted:P")
	if shortDescr == nil {
		shortDescr = d.findOne(nil, "//ted:OBJECT_DESCR/ted:SHORT_DESCR/ted:P")
	}
	rec.ShortDescr = cleanOptional(Text(shortDescr))

	rec.TypeContractCType = Attr(d.findOne(nil, "//ted:OBJECT_CONTRACT/ted:TYPE_CONTRACT"), "CTYPE")

	// Notice-level values
	valTotal := d.findOne(nil, "//ted:OBJECT_CONTRACT/ted:VAL_TOTAL")
	rec.ValTotal = Text(valTotal)
	rec.ValTotalCurrency = Attr(valTotal, "CURRENCY")

	estTotal := d.findOne(nil, "//ted:NOTICE_DATA/ted:VALUES/ted:VALUE[@TYPE='ESTIMATED_TOTAL']")
	rec.EstTotalVal = Text(estTotal)
	rec.EstTotalValCurrency = Attr(estTotal, "CURRENCY")

	procTotal := d.findOne(nil, "//ted:NOTICE_DATA/ted:VALUES/ted:VALUE[@TYPE='PROCUREMENT_TOTAL']")
	rec.ProcTotalVal = Text(procTotal)
	rec.ProcTotalValCurrency = Attr(procTotal, "CURRENCY")

	// Award section
	rec.AwardDate = Text(d.findOne(nil, "//ted:AWARD_CONTRACT/ted:AWARDED_CONTRACT/ted:DATE_CONCLUSION_CONTRACT"))

	awValTotal := d.findOne(nil, "//ted:AWARD_CONTRACT/ted:AWARDED_CONTRACT/ted:VALUES/ted:VAL_TOTAL")
	rec.AwValTotal = Text(awValTotal)
	rec.AwValCurrency = Attr(awValTotal, "CURRENCY")

	rec.NBTenders = Text(d.findOne(nil, "//ted:AWARD_CONTRACT/ted:AWARDED_CONTRACT/ted:TENDERS/ted:NB_TENDERS_RECEIVED"))

	// Winning contractors, flattened
	var contractors []string
	for _, node := range d.findAll(nil, "//ted:AWARD_CONTRACT/ted:AWARDED_CONTRACT/ted:CONTRACTORS/ted:CONTRACTOR") {
		if name := Text(d.findOne(node, "ted:ADDRESS_CONTRACTOR/ted:OFFICIALNAME")); name != nil {
			contractors = append(contractors, *name)
		}
	}
	rec.ContractorNames = textutil.JoinUniqueSorted(contractors)

	// Codified classification attributes, raw codes only
	rec.TDDocumentTypeCode = Attr(d.findOne(nil, "//ted:CODIF_DATA/ted:TD_DOCUMENT_TYPE"), "CODE")
	rec.NCContractNatureCode = Attr(d.findOne(nil, "//ted:CODIF_DATA/ted:NC_CONTRACT_NATURE"), "CODE")
	rec.PRProcCode = Attr(d.findOne(nil, "//ted:CODIF_DATA/ted:PR_PROC"), "CODE")
	rec.ACAwardCritCode = Attr(d.findOne(nil, "//ted:CODIF_DATA/ted:AC_AWARD_CRIT"), "CODE")
	rec.MAMainActivitiesCode = Attr(d.findOne(nil, "//ted:CODIF_DATA/ted:MA_MAIN_ACTIVITIES"), "CODE")
	rec.RPRegulationCode = Attr(d.findOne(nil, "//ted:CODIF_DATA/ted:RP_REGULATION"), "CODE")

	// Form type: first FORM_SECTION child carrying a FORM attribute
	if formSection := d.findOne(nil, "//ted:FORM_SECTION"); formSection != nil {
		for child := formSection.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != xmlquery.ElementNode {
				continue
			}
			if form := Attr(child, "FORM"); form != nil {
				rec.FormType = form
				break
			}
		}
	}

	rec.NoticeTypeGroup = record.String(ClassifyTDCode(rec.TDDocumentTypeCode))

	return rec
}
