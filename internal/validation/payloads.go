package validation

// CreateSnippet is the caller-settable portion of a snippet. The share token
// and row id are generated server-side.
type CreateSnippet struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Language    string `json:"language" validate:"max=50"`
	Code        string `json:"code" validate:"max=100000"`
	OwnerID     string `json:"ownerId" validate:"max=50"`
}

// UpdateSnippet is a partial update; nil means "leave unchanged".
type UpdateSnippet struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Language    *string `json:"language" validate:"omitempty,max=50"`
	Code        *string `json:"code" validate:"omitempty,max=100000"`
}

// CreateMessage is a chat or file message. The snippet id comes from the URL
// path, not the payload.
type CreateMessage struct {
	UserID      string `json:"userId" validate:"required,max=50"`
	Username    string `json:"username" validate:"required,max=100"`
	Content     string `json:"content" validate:"required,max=10000"`
	MessageType string `json:"messageType" validate:"omitempty,oneof=text file"`
	FileURL     string `json:"fileUrl" validate:"max=2000"`
}

// JoinSnippet records presence of a user in a snippet room.
type JoinSnippet struct {
	UserID string `json:"userId" validate:"required,max=50"`
}

// CreateProject is the caller-settable portion of a project.
type CreateProject struct {
	Name         string `json:"name" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=2000"`
	OwnerID      string `json:"ownerId" validate:"required,max=50"`
	GitHubRepo   string `json:"githubRepo" validate:"max=300"`
	GitHubBranch string `json:"githubBranch" validate:"max=100"`
}

// CreateProjectFile is a file or folder node. Path is unique per project.
type CreateProjectFile struct {
	Path           string  `json:"path" validate:"required,max=1000"`
	Content        string  `json:"content" validate:"max=1000000"`
	IsFolder       bool    `json:"isFolder"`
	ParentFolderID *string `json:"parentFolderId" validate:"omitempty,max=50"`
}

// CreateProjectSecret is a project-scoped key/value pair.
type CreateProjectSecret struct {
	SecretKey   string `json:"secretKey" validate:"required,max=200"`
	SecretValue string `json:"secretValue" validate:"required,max=10000"`
}

// GenerateChallenge drives the challenge template. Difficulty and language
// are stored as-is; semantic legality is not checked here.
type GenerateChallenge struct {
	Difficulty string `json:"difficulty" validate:"required,max=50"`
	Language   string `json:"language" validate:"required,max=50"`
}

// SubmitChallenge is one attempt at a challenge. UserID may be empty for
// anonymous submissions; stats are only tracked for known users.
type SubmitChallenge struct {
	UserID string `json:"userId" validate:"max=50"`
	Code   string `json:"code" validate:"required,max=100000"`
}

// CreateProfile is the caller-settable portion of a profile.
type CreateProfile struct {
	Username  string `json:"username" validate:"max=100"`
	FullName  string `json:"fullName" validate:"max=200"`
	AvatarURL string `json:"avatarUrl" validate:"max=2000"`
}

// CreateVerificationToken mints an email-verification token. The token value
// and expiry are server-generated.
type CreateVerificationToken struct {
	UserID string `json:"userId" validate:"required,max=50"`
	Email  string `json:"email" validate:"required,email,max=300"`
}

// CreateSupportTicket files a support request. Status defaults to "open" and
// priority to "medium" when not supplied.
type CreateSupportTicket struct {
	UserID      string `json:"userId" validate:"max=50"`
	Email       string `json:"email" validate:"required,email,max=300"`
	Subject     string `json:"subject" validate:"required,max=300"`
	Description string `json:"description" validate:"required,max=10000"`
	Priority    string `json:"priority" validate:"omitempty,max=50"`
}
