package documents

import (
	"fmt"
	"strings"
)

// Type identifies a document type, e.g. "applicant_id".
type Type string

// Category groups document types for reporting.
type Category string

const (
	CategoryApplicant Category = "applicant"
	CategoryGuarantor Category = "guarantor"
	CategoryProperty  Category = "property"
	CategoryFinancial Category = "financial"
	CategoryLegal     Category = "legal"
)

const (
	TypeApplicantID                 Type = "applicant_id"
	TypeApplicantIncomeProof        Type = "applicant_income_proof"
	TypeApplicantEmploymentContract Type = "applicant_employment_contract"
	TypeApplicantPensionCertificate Type = "applicant_pension_certificate"
	TypeApplicantCreditReport       Type = "applicant_credit_report"
	TypeGuarantorID                 Type = "guarantor_id"
	TypeGuarantorIncomeProof        Type = "guarantor_income_proof"
	TypePropertyDeed                Type = "property_deed"
	TypePropertyTitleCertificate    Type = "property_title_certificate"
	TypePropertyPhoto               Type = "property_photo"
	TypeBankStatement               Type = "bank_statement"
	TypeTaxReturn                   Type = "tax_return"
	TypePowerOfAttorney             Type = "power_of_attorney"
	TypeLeaseContract               Type = "lease_contract"
)

const (
	mimePDF  = "application/pdf"
	mimeJPEG = "image/jpeg"
	mimePNG  = "image/png"
	mimeWEBP = "image/webp"
	mimeDOC  = "application/msword"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	mb = int64(1 << 20)
)

// extensionLabels maps content types to the extension shown to users.
var extensionLabels = map[string]string{
	mimePDF:  "PDF",
	mimeJPEG: "JPG",
	mimePNG:  "PNG",
	mimeWEBP: "WEBP",
	mimeDOC:  "DOC",
	mimeDOCX: "DOCX",
}

// TypeConfig is the immutable policy and presentation data of one document type.
type TypeConfig struct {
	Type                Type
	Label               string
	Description         string
	Category            Category
	MaxSizeBytes        int64
	AllowedContentTypes []string
	Required            bool
	// ExpiresAfterDays is nil when the document never expires.
	ExpiresAfterDays *int
}

// Allows reports whether the content type is accepted. Parameters such as
// "; charset=binary" and letter case are ignored.
func (c TypeConfig) Allows(contentType string) bool {
	ct := normalizeContentType(contentType)
	for _, allowed := range c.AllowedContentTypes {
		if allowed == ct {
			return true
		}
	}
	return false
}

// Extensions lists the user-facing extensions of the allowed content types.
func (c TypeConfig) Extensions() []string {
	out := make([]string, 0, len(c.AllowedContentTypes))
	for _, ct := range c.AllowedContentTypes {
		if label, ok := extensionLabels[ct]; ok {
			out = append(out, label)
			continue
		}
		out = append(out, ct)
	}
	return out
}

// Expires reports whether documents of this type have an expiration window.
func (c TypeConfig) Expires() bool {
	return c.ExpiresAfterDays != nil
}

func days(n int) *int { return &n }

var (
	imageOrPDF = []string{mimePDF, mimeJPEG, mimePNG}
	pdfOnly    = []string{mimePDF}
)

// registryOrder keeps listing output stable.
var registryOrder = []Type{
	TypeApplicantID,
	TypeApplicantIncomeProof,
	TypeApplicantEmploymentContract,
	TypeApplicantPensionCertificate,
	TypeApplicantCreditReport,
	TypeGuarantorID,
	TypeGuarantorIncomeProof,
	TypePropertyDeed,
	TypePropertyTitleCertificate,
	TypePropertyPhoto,
	TypeBankStatement,
	TypeTaxReturn,
	TypePowerOfAttorney,
	TypeLeaseContract,
}

var registry = map[Type]TypeConfig{
	TypeApplicantID: {
		Label:               "Cédula de identidad",
		Description:         "Ambos lados de la cédula de identidad vigente del postulante",
		Category:            CategoryApplicant,
		MaxSizeBytes:        5 * mb,
		AllowedContentTypes: imageOrPDF,
		Required:            true,
		ExpiresAfterDays:    days(365),
	},
	TypeApplicantIncomeProof: {
		Label:               "Liquidaciones de sueldo",
		Description:         "Últimas tres liquidaciones de sueldo",
		Category:            CategoryApplicant,
		MaxSizeBytes:        10 * mb,
		AllowedContentTypes: imageOrPDF,
		Required:            true,
		ExpiresAfterDays:    days(90),
	},
	TypeApplicantEmploymentContract: {
		Label:               "Contrato de trabajo",
		Description:         "Contrato de trabajo vigente o certificado de antigüedad laboral",
		Category:            CategoryApplicant,
		MaxSizeBytes:        10 * mb,
		AllowedContentTypes: pdfOnly,
	},
	TypeApplicantPensionCertificate: {
		Label:               "Certificado de cotizaciones",
		Description:         "Certificado de cotizaciones previsionales de los últimos 12 meses",
		Category:            CategoryApplicant,
		MaxSizeBytes:        5 * mb,
		AllowedContentTypes: pdfOnly,
		ExpiresAfterDays:    days(90),
	},
	TypeApplicantCreditReport: {
		Label:               "Informe comercial",
		Description:         "Informe de antecedentes comerciales",
		Category:            CategoryApplicant,
		MaxSizeBytes:        5 * mb,
		AllowedContentTypes: pdfOnly,
		Required:            true,
		ExpiresAfterDays:    days(30),
	},
	TypeGuarantorID: {
		Label:               "Cédula de identidad del aval",
		Description:         "Ambos lados de la cédula de identidad vigente del aval",
		Category:            CategoryGuarantor,
		MaxSizeBytes:        5 * mb,
		AllowedContentTypes: imageOrPDF,
		ExpiresAfterDays:    days(365),
	},
	TypeGuarantorIncomeProof: {
		Label:               "Liquidaciones de sueldo del aval",
		Description:         "Últimas tres liquidaciones de sueldo del aval",
		Category:            CategoryGuarantor,
		MaxSizeBytes:        10 * mb,
		AllowedContentTypes: imageOrPDF,
		ExpiresAfterDays:    days(90),
	},
	TypePropertyDeed: {
		Label:               "Escritura de la propiedad",
		Description:         "Escritura de compraventa inscrita",
		Category:            CategoryProperty,
		MaxSizeBytes:        20 * mb,
		AllowedContentTypes: pdfOnly,
		Required:            true,
	},
	TypePropertyTitleCertificate: {
		Label:               "Certificado de dominio vigente",
		Description:         "Certificado de dominio vigente emitido por el Conservador de Bienes Raíces",
		Category:            CategoryProperty,
		MaxSizeBytes:        10 * mb,
		AllowedContentTypes: pdfOnly,
		Required:            true,
		ExpiresAfterDays:    days(30),
	},
	TypePropertyPhoto: {
		Label:               "Fotografía de la propiedad",
		Description:         "Fotografías del inmueble para la publicación",
		Category:            CategoryProperty,
		MaxSizeBytes:        10 * mb,
		AllowedContentTypes: []string{mimeJPEG, mimePNG, mimeWEBP},
	},
	TypeBankStatement: {
		Label:               "Cartola bancaria",
		Description:         "Cartola de cuenta corriente de los últimos tres meses",
		Category:            CategoryFinancial,
		MaxSizeBytes:        10 * mb,
		AllowedContentTypes: pdfOnly,
		ExpiresAfterDays:    days(90),
	},
	TypeTaxReturn: {
		Label:               "Declaración de renta",
		Description:         "Última declaración anual de impuesto a la renta",
		Category:            CategoryFinancial,
		MaxSizeBytes:        10 * mb,
		AllowedContentTypes: pdfOnly,
		ExpiresAfterDays:    days(365),
	},
	TypePowerOfAttorney: {
		Label:               "Poder notarial",
		Description:         "Poder notarial para actuar en representación del propietario",
		Category:            CategoryLegal,
		MaxSizeBytes:        10 * mb,
		AllowedContentTypes: pdfOnly,
	},
	TypeLeaseContract: {
		Label:               "Contrato de arriendo",
		Description:         "Contrato de arriendo firmado",
		Category:            CategoryLegal,
		MaxSizeBytes:        20 * mb,
		AllowedContentTypes: []string{mimePDF, mimeDOC, mimeDOCX},
	},
}

// Resolve returns the policy for t. Unknown types return ErrUnknownDocumentType.
func Resolve(t Type) (TypeConfig, error) {
	cfg, ok := registry[t]
	if !ok {
		return TypeConfig{}, fmt.Errorf("%w: %q", ErrUnknownDocumentType, string(t))
	}
	cfg.Type = t
	cfg.AllowedContentTypes = append([]string(nil), cfg.AllowedContentTypes...)
	if cfg.ExpiresAfterDays != nil {
		cfg.ExpiresAfterDays = days(*cfg.ExpiresAfterDays)
	}
	return cfg, nil
}

// Types lists every registered document type in stable order.
func Types() []Type {
	return append([]Type(nil), registryOrder...)
}

// TypesInCategory returns the policies of the registered types in category.
// An empty category returns every type.
func TypesInCategory(category Category) []TypeConfig {
	out := make([]TypeConfig, 0, len(registryOrder))
	for _, t := range registryOrder {
		cfg, _ := Resolve(t)
		if category != "" && cfg.Category != category {
			continue
		}
		out = append(out, cfg)
	}
	return out
}

// ParseType validates a raw type identifier.
func ParseType(raw string) (Type, error) {
	t := Type(strings.TrimSpace(raw))
	if _, ok := registry[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDocumentType, raw)
	}
	return t, nil
}

func normalizeContentType(raw string) string {
	ct, _, _ := strings.Cut(raw, ";")
	return strings.ToLower(strings.TrimSpace(ct))
}
