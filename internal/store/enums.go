package store

// Customer ENUMs
const (
	CustomerStatusLead         = "lead"
	CustomerStatusContacted    = "contacted"
	CustomerStatusProposalSent = "proposal_sent"
	CustomerStatusClient       = "client"
	CustomerStatusClosed       = "closed"
)

// Proposal ENUMs
const (
	ProposalTypeEmail    = "email"
	ProposalTypeWhatsApp = "whatsapp"
)

const (
	ProposalStatusSent = "sent"
)
