package models

import "strings"

// Proposal lifecycle statuses. The canonical choice set is the five values
// below; "submitted" is additionally accepted on update for compatibility
// with rows written by older clients.
const (
	ProposalStatusGenerated = "generated"
	ProposalStatusPending   = "pending"
	ProposalStatusAccepted  = "accepted"
	ProposalStatusViewed    = "viewed"
	ProposalStatusRejected  = "rejected"
	ProposalStatusSubmitted = "submitted"
)

const (
	StyleDefault      = "default"
	StyleProfessional = "professional"
	StyleCreative     = "creative"
	StyleSolutions    = "solutions"
	StyleCasual       = "casual"
	StyleTechnical    = "technical"
)

const (
	PlatformUpwork       = "upwork"
	PlatformFiverr       = "fiverr"
	PlatformFreelancer   = "freelancer"
	PlatformDirectClient = "direct_client"
)

const (
	ProjectStatusPending    = "pending"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusCancelled  = "cancelled"
)

var proposalStatuses = []string{
	ProposalStatusGenerated,
	ProposalStatusPending,
	ProposalStatusSubmitted,
	ProposalStatusAccepted,
	ProposalStatusViewed,
	ProposalStatusRejected,
}

var styles = []string{
	StyleDefault,
	StyleProfessional,
	StyleCreative,
	StyleSolutions,
	StyleCasual,
	StyleTechnical,
}

var projectPlatforms = []string{
	PlatformUpwork,
	PlatformFiverr,
	PlatformFreelancer,
	PlatformDirectClient,
}

var projectStatuses = []string{
	ProjectStatusPending,
	ProjectStatusInProgress,
	ProjectStatusCompleted,
	ProjectStatusCancelled,
}

func ValidProposalStatus(s string) bool { return contains(proposalStatuses, s) }
func ValidStyle(s string) bool          { return contains(styles, s) }
func ValidProjectPlatform(s string) bool {
	return contains(projectPlatforms, s)
}
func ValidProjectStatus(s string) bool { return contains(projectStatuses, s) }

// ProposalStatusChoices returns the accepted status strings, for error messages.
func ProposalStatusChoices() string { return strings.Join(proposalStatuses, ", ") }

func ProjectPlatformChoices() string { return strings.Join(projectPlatforms, ", ") }

func ProjectStatusChoices() string { return strings.Join(projectStatuses, ", ") }

func StyleChoices() string { return strings.Join(styles, ", ") }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
