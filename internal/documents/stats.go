package documents

import "time"

// Summary aggregates a set of documents into completion metrics.
type Summary struct {
	Total            int     `json:"total"`
	Verified         int     `json:"verified"`
	Pending          int     `json:"pending"`
	Rejected         int     `json:"rejected"`
	Expired          int     `json:"expired"`
	Required         int     `json:"required"`
	RequiredVerified int     `json:"requiredVerified"`
	CompletionRate   float64 `json:"completionRate"`
}

// Summarize computes the Summary of docs at now.
//
// CompletionRate is RequiredVerified/Required*100, or 100 when no required
// document is present. Expired counts documents past their window whatever
// their status. Documents of unknown type only count toward Total and the
// status counters.
func Summarize(docs []Document, now time.Time) Summary {
	var s Summary
	for _, doc := range docs {
		s.Total++
		switch doc.Status {
		case StatusVerified:
			s.Verified++
		case StatusPending:
			s.Pending++
		case StatusRejected:
			s.Rejected++
		}

		cfg, err := Resolve(doc.Type)
		if err != nil {
			continue
		}
		if isExpiredFor(doc.UploadedAt, cfg, now) {
			s.Expired++
		}
		if cfg.Required {
			s.Required++
			if doc.Status == StatusVerified {
				s.RequiredVerified++
			}
		}
	}

	s.CompletionRate = 100
	if s.Required > 0 {
		s.CompletionRate = float64(s.RequiredVerified) / float64(s.Required) * 100
	}
	return s
}

// MissingRequired lists the required types of category that have no verified,
// unexpired document in docs. An empty category checks every category.
func MissingRequired(docs []Document, category Category, now time.Time) []Type {
	satisfied := make(map[Type]bool)
	for _, doc := range docs {
		if doc.Status != StatusVerified {
			continue
		}
		cfg, err := Resolve(doc.Type)
		if err != nil || isExpiredFor(doc.UploadedAt, cfg, now) {
			continue
		}
		satisfied[doc.Type] = true
	}

	var missing []Type
	for _, cfg := range TypesInCategory(category) {
		if cfg.Required && !satisfied[cfg.Type] {
			missing = append(missing, cfg.Type)
		}
	}
	return missing
}
