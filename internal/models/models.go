package models

type User struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"password_hash,omitempty" db:"password_hash"`
	Created      int64  `json:"created" db:"created"`
}

type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type FreelancerProfile struct {
	ID          int64        `json:"id" db:"id"`
	UserID      int64        `json:"user_id" db:"user_id"`
	FullName    string       `json:"full_name" db:"full_name"`
	Tagline     string       `json:"tagline" db:"tagline"`
	About       string       `json:"about" db:"about"`
	Skills      []string     `json:"skills" db:"skills"`
	Portfolio   string       `json:"portfolio" db:"portfolio"`
	SocialLinks []SocialLink `json:"social_links" db:"social_links"`
	Created     int64        `json:"created" db:"created"`
	Updated     int64        `json:"updated" db:"updated"`
}

type Experience struct {
	ID          int64   `json:"id" db:"id"`
	UserID      int64   `json:"user_id" db:"user_id"`
	Company     string  `json:"company" db:"company"`
	Title       string  `json:"title" db:"title"`
	Location    *string `json:"location,omitempty" db:"location"`
	StartDate   string  `json:"start_date" db:"start_date"`
	EndDate     *string `json:"end_date,omitempty" db:"end_date"`
	Description string  `json:"description" db:"description"`
	Created     int64   `json:"created" db:"created"`
}

type Project struct {
	ID          int64   `json:"id" db:"id"`
	UserID      int64   `json:"user_id" db:"user_id"`
	Title       string  `json:"title" db:"title"`
	Description string  `json:"description" db:"description"`
	Summary     string  `json:"summary" db:"summary"`
	Budget      int64   `json:"budget" db:"budget"`
	Platform    string  `json:"platform" db:"platform"`
	Status      string  `json:"status" db:"status"`
	StartDate   *string `json:"start_date,omitempty" db:"start_date"`
	EndDate     *string `json:"end_date,omitempty" db:"end_date"`
	Created     int64   `json:"created" db:"created"`
	Updated     int64   `json:"updated" db:"updated"`
}

// JobDetails carries optional metadata about the job a proposal targets.
type JobDetails struct {
	Platform   string `json:"platform,omitempty"`
	ClientName string `json:"client_name,omitempty"`
	URL        string `json:"url,omitempty"`
}

// Proposal IDs are opaque UUIDs so that they never leak creation order or count.
type Proposal struct {
	ID             string     `json:"id" db:"id"`
	UserID         int64      `json:"user_id" db:"user_id"`
	JobDescription string     `json:"job_description" db:"job_description"`
	JobDetails     JobDetails `json:"job_details" db:"job_details"`
	ProposalText   string     `json:"proposal_text" db:"proposal_text"`
	Status         string     `json:"status" db:"status"`
	Style          string     `json:"style" db:"style"`
	UserFeedback   *string    `json:"user_feedback,omitempty" db:"user_feedback"`
	Created        int64      `json:"created" db:"created"`
	Updated        int64      `json:"updated" db:"updated"`
}

// ExtractedProfile is the structured result of the LLM profile extraction.
// Field names mirror the JSON shape the extraction prompt demands.
type ExtractedProfile struct {
	FullName          string                `json:"full_name"`
	ProfessionalTitle string                `json:"professional_title"`
	About             string                `json:"about"`
	Skills            []string              `json:"skills"`
	PortfolioURI      string                `json:"portfolio_uri"`
	Experience        []ExtractedExperience `json:"experience,omitempty"`
	Projects          []ExtractedProject    `json:"projects,omitempty"`
	SocialLinks       []SocialLink          `json:"social_links,omitempty"`
}

type ExtractedExperience struct {
	Company   string  `json:"company"`
	Title     string  `json:"title"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date,omitempty"`
}

type ExtractedProject struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Budget      int64  `json:"budget,omitempty"`
	Platform    string `json:"platform"`
	Status      string `json:"status"`
}
