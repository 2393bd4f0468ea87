package documents

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate checks the declared metadata of file against the policy of t.
//
// Errors make the result invalid; warnings are advisory. The only error
// returned is ErrUnknownDocumentType, in which case no result is produced.
func Validate(file CandidateFile, t Type) (ValidationResult, error) {
	cfg, err := Resolve(t)
	if err != nil {
		return ValidationResult{}, err
	}
	return ValidateAgainst(file, cfg), nil
}

// ValidateAgainst checks file against an already resolved policy.
func ValidateAgainst(file CandidateFile, cfg TypeConfig) ValidationResult {
	result := ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
	}

	if file.SizeBytes < 0 {
		result.Errors = append(result.Errors, "El tamaño del archivo no es válido")
	}

	tooLarge := file.SizeBytes > cfg.MaxSizeBytes
	if tooLarge {
		result.Errors = append(result.Errors,
			fmt.Sprintf("El archivo es demasiado grande. Tamaño máximo: %s", formatMB(cfg.MaxSizeBytes)))
	}

	if !cfg.Allows(file.MimeType) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Tipo de archivo no permitido. Formatos aceptados: %s", strings.Join(cfg.Extensions(), ", ")))
	}

	// size > 80% of the limit, in integer math.
	if !tooLarge && file.SizeBytes*10 > cfg.MaxSizeBytes*8 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("El archivo es grande (%s). Considera comprimirlo antes de subirlo.", formatMBDecimal(file.SizeBytes)))
	}

	if cfg.ExpiresAfterDays != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Este documento vence %d días después de su carga", *cfg.ExpiresAfterDays))
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

// formatMB renders a byte limit as "5 MB" or "2.5 MB".
func formatMB(size int64) string {
	return strconv.FormatFloat(float64(size)/float64(mb), 'f', -1, 64) + " MB"
}

func formatMBDecimal(size int64) string {
	return strconv.FormatFloat(float64(size)/float64(mb), 'f', 1, 64) + " MB"
}
