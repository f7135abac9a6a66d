package selection

import "auditprep/internal/bank"

// DomainWeight pairs an exam domain with its blueprint share.
type DomainWeight struct {
	Domain bank.Domain
	Weight float64
}

// DefaultExamWeights is the CISA exam blueprint. Weights sum to 1.0 and
// round cleanly for the supported exam sizes (50, 100, 150), so the
// per-domain draws alone fill the requested total when every domain has
// enough questions.
func DefaultExamWeights() []DomainWeight {
	return []DomainWeight{
		{bank.DomainAuditProcess, 0.18},
		{bank.DomainGovernance, 0.18},
		{bank.DomainAcquisition, 0.12},
		{bank.DomainOperations, 0.26},
		{bank.DomainProtection, 0.26},
	}
}
