// Package record defines the flat canonical notice schema that every
// adapter converges to. A nil field means the source simply did not carry
// that value; absence is never an error.
package record

import (
	"reflect"
	"strings"
)

// Status values for JSON-path records.
const (
	StatusOK          = "ok"
	StatusFetchFailed = "fetch_failed_or_invalid_json"
)

// Schema type markers.
const (
	SchemaOCDSJSON = "OCDS_JSON"
	SchemaTED      = "TED_R2.0.9"
)

// Record is the canonical flat projection of one procurement notice.
// Field tags carry the exact downstream column names; Columns and Row
// expose them in stable declaration order for tabular writers.
//
// Single-valued fields hold the first matching entity when the source
// permits several; joined fields (plural or "_all" suffixed) hold
// deduplicated, blank-free joins of every match.
type Record struct {
	// bookkeeping
	SourceFile *string `json:"source_file,omitempty"`
	Status     *string `json:"status,omitempty"`
	ParseError *string `json:"parse_error,omitempty"`
	SchemaType *string `json:"schema_type,omitempty"`
	FormType   *string `json:"form_type,omitempty"`

	// identification
	URI             *string `json:"uri,omitempty"`
	PublishedDate   *string `json:"publishedDate,omitempty"`
	OCID            *string `json:"ocid,omitempty"`
	ReleaseID       *string `json:"release_id,omitempty"`
	ReleaseTitle    *string `json:"release_title,omitempty"`
	ReleaseDate     *string `json:"release_date,omitempty"`
	ReleaseLanguage *string `json:"release_language,omitempty"`
	ReleaseTag      *string `json:"release_tag,omitempty"`
	ReleaseTagsAll  *string `json:"release_tags_all,omitempty"`
	InitiationType  *string `json:"initiationType,omitempty"`
	DocID           *string `json:"doc_id,omitempty"`
	Edition         *string `json:"edition,omitempty"`
	NoDocOJS        *string `json:"no_doc_ojs,omitempty"`
	NoticeURL       *string `json:"notice_url,omitempty"`

	// classification
	TDDocumentTypeCode *string `json:"td_document_type_code,omitempty"`
	NoticeTypeGroup    *string `json:"notice_type_group,omitempty"`

	// publisher / package metadata
	PublisherName     *string `json:"publisher_name,omitempty"`
	PublisherScheme   *string `json:"publisher_scheme,omitempty"`
	PublisherUID      *string `json:"publisher_uid,omitempty"`
	PublisherURI      *string `json:"publisher_uri,omitempty"`
	Version           *string `json:"version,omitempty"`
	Extensions        *string `json:"extensions,omitempty"`
	License           *string `json:"license,omitempty"`
	PublicationPolicy *string `json:"publicationPolicy,omitempty"`

	// planning
	PlanningMilestoneIDs      *string `json:"planning_milestone_ids,omitempty"`
	PlanningMilestoneTitles   *string `json:"planning_milestone_titles,omitempty"`
	PlanningMilestoneTypes    *string `json:"planning_milestone_types,omitempty"`
	PlanningMilestoneDueDates *string `json:"planning_milestone_dueDates,omitempty"`
	PlanningDocumentIDs       *string `json:"planning_document_ids,omitempty"`
	PlanningDocumentTypes     *string `json:"planning_document_types,omitempty"`
	PlanningDocumentDescs     *string `json:"planning_document_descriptions,omitempty"`
	PlanningDocumentURLs      *string `json:"planning_document_urls,omitempty"`
	PlanningDocumentPublished *string `json:"planning_document_datePublished,omitempty"`
	PlanningDocumentFormats   *string `json:"planning_document_formats,omitempty"`
	PlanningDocumentLanguages *string `json:"planning_document_languages,omitempty"`

	// tender basics
	TenderID                *string `json:"tender_id,omitempty"`
	TenderTitle             *string `json:"tender_title,omitempty"`
	TenderDescription       *string `json:"tender_description,omitempty"`
	TenderStatus            *string `json:"tender_status,omitempty"`
	MainProcurementCategory *string `json:"mainProcurementCategory,omitempty"`

	// monetary (JSON path; amounts are source JSON numbers)
	ValueAmount      *float64 `json:"value_amount,omitempty"`
	ValueCurrency    *string  `json:"value_currency,omitempty"`
	MinValueAmount   *float64 `json:"minValue_amount,omitempty"`
	MinValueCurrency *string  `json:"minValue_currency,omitempty"`

	// CPV (JSON path)
	CPVScheme          *string `json:"cpv_scheme,omitempty"`
	CPVID              *string `json:"cpv_id,omitempty"`
	CPVDescription     *string `json:"cpv_description,omitempty"`
	AdditionalCPVIDs   *string `json:"additional_cpv_ids,omitempty"`
	AdditionalCPVDescs *string `json:"additional_cpv_descriptions,omitempty"`

	// CPV (XML path)
	OriginalCPVCode    *string `json:"original_cpv_code,omitempty"`
	CPVMainCode        *string `json:"cpv_main_code,omitempty"`
	AdditionalCPVCodes *string `json:"additional_cpv_codes,omitempty"`

	// tender documents
	TenderDocumentIDs       *string `json:"tender_document_ids,omitempty"`
	TenderDocumentTypes     *string `json:"tender_document_types,omitempty"`
	TenderDocumentDescs     *string `json:"tender_document_descriptions,omitempty"`
	TenderDocumentURLs      *string `json:"tender_document_urls,omitempty"`
	TenderDocumentPublished *string `json:"tender_document_datePublished,omitempty"`
	TenderDocumentModified  *string `json:"tender_document_dateModified,omitempty"`
	TenderDocumentFormats   *string `json:"tender_document_formats,omitempty"`
	TenderDocumentLanguages *string `json:"tender_document_languages,omitempty"`

	// geography (JSON path)
	TenderItemIDs            *string `json:"tender_item_ids,omitempty"`
	TenderDeliveryPostalAll  *string `json:"tender_delivery_postalCodes_all,omitempty"`
	TenderDeliveryRegionsAll *string `json:"tender_delivery_regions_all,omitempty"`
	TenderDeliveryCountryAll *string `json:"tender_delivery_countryNames_all,omitempty"`
	DeliveryPostalCode       *string `json:"delivery_postalCode,omitempty"`
	DeliveryRegion           *string `json:"delivery_region,omitempty"`
	DeliveryCountry          *string `json:"delivery_country,omitempty"`

	// geography (XML path)
	ISOCountry    *string `json:"iso_country,omitempty"`
	TICountry     *string `json:"ti_country,omitempty"`
	TITown        *string `json:"ti_town,omitempty"`
	CACountryCode *string `json:"ca_country_code,omitempty"`
	CATown        *string `json:"ca_town,omitempty"`
	CAPostcode    *string `json:"ca_postcode,omitempty"`
	CANUTSCode    *string `json:"ca_nuts_code,omitempty"`
	PerfNUTSCode  *string `json:"perf_nuts_code,omitempty"`
	CACENUTSCode  *string `json:"ca_ce_nuts_code,omitempty"`

	// contracting authority (XML path)
	CAName  *string `json:"ca_name,omitempty"`
	CAEmail *string `json:"ca_email,omitempty"`
	CAURL   *string `json:"ca_url,omitempty"`

	// object / free text (XML path)
	TIText            *string `json:"ti_text,omitempty"`
	ObjTitle          *string `json:"obj_title,omitempty"`
	ShortDescr        *string `json:"short_descr,omitempty"`
	TypeContractCType *string `json:"type_contract_ctype,omitempty"`

	// notice-level values (XML path; element text kept opaque)
	ValTotal             *string `json:"val_total,omitempty"`
	ValTotalCurrency     *string `json:"val_total_currency,omitempty"`
	EstTotalVal          *string `json:"est_total_val,omitempty"`
	EstTotalValCurrency  *string `json:"est_total_val_currency,omitempty"`
	ProcTotalVal         *string `json:"proc_total_val,omitempty"`
	ProcTotalValCurrency *string `json:"proc_total_val_currency,omitempty"`
	AwValTotal           *string `json:"aw_val_total,omitempty"`
	AwValCurrency        *string `json:"aw_val_currency,omitempty"`
	NBTenders            *string `json:"nb_tenders,omitempty"`

	// codified classification attributes (XML path)
	NCContractNatureCode *string `json:"nc_contract_nature_code,omitempty"`
	PRProcCode           *string `json:"pr_proc_code,omitempty"`
	ACAwardCritCode      *string `json:"ac_award_crit_code,omitempty"`
	MAMainActivitiesCode *string `json:"ma_main_activities_code,omitempty"`
	RPRegulationCode     *string `json:"rp_regulation_code,omitempty"`
	ContractorNames      *string `json:"contractor_names,omitempty"`

	// timing
	DatePub             *string `json:"date_pub,omitempty"`
	DSDateDispatch      *string `json:"ds_date_dispatch,omitempty"`
	AwardDate           *string `json:"award_date,omitempty"`
	TenderDatePublished *string `json:"tender_datePublished,omitempty"`
	TenderEndDate       *string `json:"tender_endDate,omitempty"`
	ContractStartDate   *string `json:"contract_startDate,omitempty"`
	ContractEndDate     *string `json:"contract_endDate,omitempty"`

	// method / suitability flags
	ProcurementMethod        *string `json:"procurementMethod,omitempty"`
	ProcurementMethodDetails *string `json:"procurementMethodDetails,omitempty"`
	SuitabilitySME           *bool   `json:"suitability_sme,omitempty"`
	SuitabilityVCSE          *bool   `json:"suitability_vcse,omitempty"`

	// buyer (first match only)
	BuyerID               *string `json:"buyer_id,omitempty"`
	BuyerName             *string `json:"buyer_name,omitempty"`
	BuyerLegalName        *string `json:"buyer_legalName,omitempty"`
	BuyerIdentifierScheme *string `json:"buyer_identifier_scheme,omitempty"`
	BuyerIdentifierID     *string `json:"buyer_identifier_id,omitempty"`
	BuyerStreetAddress    *string `json:"buyer_streetAddress,omitempty"`
	BuyerLocality         *string `json:"buyer_locality,omitempty"`
	BuyerPostalCode       *string `json:"buyer_postalCode,omitempty"`
	BuyerCountryName      *string `json:"buyer_countryName,omitempty"`
	BuyerContactName      *string `json:"buyer_contact_name,omitempty"`
	BuyerContactEmail     *string `json:"buyer_contact_email,omitempty"`
	BuyerContactTelephone *string `json:"buyer_contact_telephone,omitempty"`
	BuyerDetailsURL       *string `json:"buyer_details_url,omitempty"`
	BuyerRoles            *string `json:"buyer_roles,omitempty"`

	// supplier parties (all matches, joined)
	SupplierPartyIDs          *string `json:"supplier_party_ids,omitempty"`
	SupplierPartyNames        *string `json:"supplier_party_names,omitempty"`
	SupplierLegalNames        *string `json:"supplier_legalNames,omitempty"`
	SupplierIdentifierSchemes *string `json:"supplier_identifier_schemes,omitempty"`
	SupplierIdentifierIDs     *string `json:"supplier_identifier_ids,omitempty"`
	SupplierStreetAddresses   *string `json:"supplier_streetAddresses,omitempty"`
	SupplierLocalities        *string `json:"supplier_localities,omitempty"`
	SupplierPostalCodes       *string `json:"supplier_postalCodes,omitempty"`
	SupplierCountryNames      *string `json:"supplier_countryNames,omitempty"`
	SupplierScales            *string `json:"supplier_scales,omitempty"`
	SupplierVCSEFlags         *string `json:"supplier_vcse_flags,omitempty"`
	SupplierDetailsURLs       *string `json:"supplier_details_urls,omitempty"`
	SupplierRoles             *string `json:"supplier_roles,omitempty"`

	// document links
	TenderNoticeURL         *string `json:"tender_notice_url,omitempty"`
	TenderNoticeDescription *string `json:"tender_notice_description,omitempty"`

	// award (first award only)
	AwardID                *string  `json:"award_id,omitempty"`
	AwardStatus            *string  `json:"award_status,omitempty"`
	AwardDatePublished     *string  `json:"award_datePublished,omitempty"`
	AwardValueAmount       *float64 `json:"award_value_amount,omitempty"`
	AwardValueCurrency     *string  `json:"award_value_currency,omitempty"`
	AwardContractStartDate *string  `json:"award_contract_startDate,omitempty"`
	AwardContractEndDate   *string  `json:"award_contract_endDate,omitempty"`
	AwardSuppliersIDs      *string  `json:"award_suppliers_ids,omitempty"`
	AwardSuppliersNames    *string  `json:"award_suppliers_names,omitempty"`
	AwardNoticeURL         *string  `json:"award_notice_url,omitempty"`
	AwardNoticeDescription *string  `json:"award_notice_description,omitempty"`
	AwardNoticePublished   *string  `json:"award_notice_datePublished,omitempty"`
	AwardNoticeFormat      *string  `json:"award_notice_format,omitempty"`
	AwardNoticeLanguage    *string  `json:"award_notice_language,omitempty"`
	AwardDocumentIDs       *string  `json:"award_document_ids,omitempty"`
	AwardDocumentTypes     *string  `json:"award_document_types,omitempty"`
	AwardDocumentDescs     *string  `json:"award_document_descriptions,omitempty"`
	AwardDocumentURLs      *string  `json:"award_document_urls,omitempty"`
	AwardDocumentPublished *string  `json:"award_document_datePublished,omitempty"`
	AwardDocumentModified  *string  `json:"award_document_dateModified,omitempty"`
	AwardDocumentFormats   *string  `json:"award_document_formats,omitempty"`
	AwardDocumentLanguages *string  `json:"award_document_languages,omitempty"`
}

var columns = buildColumns()

func buildColumns() []string {
	t := reflect.TypeOf(Record{})
	out := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		out = append(out, name)
	}
	return out
}

// Columns returns the canonical column names in declaration order. The
// returned slice is shared; callers must not modify it.
func Columns() []string {
	return columns
}

// Row returns the record's values aligned with Columns. Absent fields
// come back as nil so tabular writers can render them as empty cells.
func (r *Record) Row() []any {
	v := reflect.ValueOf(r).Elem()
	out := make([]any, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.IsNil() {
			continue
		}
		out[i] = f.Elem().Interface()
	}
	return out
}

// String wraps a value in an optional field pointer.
func String(s string) *string { return &s }

// Float wraps a value in an optional field pointer.
func Float(f float64) *float64 { return &f }

// Bool wraps a value in an optional field pointer.
func Bool(b bool) *bool { return &b }
