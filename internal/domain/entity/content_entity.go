package entity

import "time"

// Resource content types.
const (
	ResourcePDF      = "pdf"
	ResourceVideo    = "video"
	ResourceImage    = "image"
	ResourceDocument = "document"
	ResourceOther    = "other"
)

// Discussion group scopes. A scoped discussion fans out only to users sharing
// the author's matching profile attribute.
const (
	GroupGlobal     = "global"
	GroupDepartment = "department"
	GroupFaculty    = "faculty"
	GroupYear       = "year"
)

// Resource is a shared study material. AuthorName and AuthorAvatar are
// snapshots taken at creation time and are not kept in sync with later
// profile edits. The invariant Likes == len(LikedBy) holds after every
// mutation.
type Resource struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	SubjectID    string    `json:"subject_id"`
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar,omitempty"`
	Type         string    `json:"type"`
	FileURL      string    `json:"file_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Likes        int       `json:"likes"`
	Views        int       `json:"views"`
	LikedBy      []string  `json:"liked_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Comment is embedded in a discussion. Comments are append-only: never
// edited or removed, order is insertion order.
type Comment struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar,omitempty"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

// Discussion is a threaded conversation. Author attributes are snapshotted at
// creation time for group filtering of the list endpoint.
type Discussion struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	SubjectID        string    `json:"subject_id,omitempty"`
	SubjectName      string    `json:"subject_name,omitempty"`
	AuthorID         string    `json:"author_id"`
	AuthorName       string    `json:"author_name"`
	AuthorAvatar     string    `json:"author_avatar,omitempty"`
	AuthorDepartment string    `json:"author_department,omitempty"`
	AuthorFaculty    string    `json:"author_faculty,omitempty"`
	AuthorYear       string    `json:"author_year,omitempty"`
	GroupType        string    `json:"group_type"`
	Comments         []Comment `json:"comments"`
	Views            int       `json:"views"`
	Solved           bool      `json:"solved"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// QuizQuestion is a single multiple-choice question.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

type Quiz struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	SubjectID   string         `json:"subject_id"`
	SubjectName string         `json:"subject_name,omitempty"`
	AuthorID    string         `json:"author_id"`
	AuthorName  string         `json:"author_name"`
	Questions   []QuizQuestion `json:"questions"`
	Duration    int            `json:"duration"`
	Difficulty  string         `json:"difficulty"`
	Attempts    int            `json:"attempts"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// FlashcardItem is one card of a flashcard set.
type FlashcardItem struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type Flashcard struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	SubjectID   string          `json:"subject_id"`
	SubjectName string          `json:"subject_name,omitempty"`
	AuthorID    string          `json:"author_id"`
	AuthorName  string          `json:"author_name"`
	Cards       []FlashcardItem `json:"cards"`
	Views       int             `json:"views"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
