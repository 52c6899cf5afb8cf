package http

// SubmitProposalRequest is the POST /leads/:id/proposals body.
type SubmitProposalRequest struct {
	ProposalText string `json:"proposal_text"`
}

// AcceptProposalRequest is the POST .../accept body. Contact details are
// stored on the accepted proposal and exposed to its provider only.
type AcceptProposalRequest struct {
	ContactDetails string `json:"contact_details"`
}
