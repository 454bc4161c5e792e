package models

import "time"

type PublishStatus string

const (
	PublishStatusPublished PublishStatus = "published"
	PublishStatusDraft     PublishStatus = "draft"
)

type Project struct {
	ID          string
	Title       string
	Slug        string
	Description string
	Category    string
	Location    string
	Year        int
	CoverImage  string
	Gallery     []string
	Featured    bool
	Status      PublishStatus
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ServiceStatus string

const (
	ServiceStatusActive   ServiceStatus = "active"
	ServiceStatusInactive ServiceStatus = "inactive"
)

type Service struct {
	ID        string
	Title     string
	Slug      string
	Summary   string
	Body      string
	Icon      string
	Image     string
	Featured  bool
	Status    ServiceStatus
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type BlogPost struct {
	ID          string
	Title       string
	Slug        string
	Excerpt     string
	Body        string
	CoverImage  string
	AuthorID    string
	Tags        []string
	Status      PublishStatus
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Testimonial struct {
	ID         string
	AuthorName string
	AuthorRole string
	Quote      string
	Rating     int
	AvatarURL  string
	Status     PublishStatus
	SortOrder  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type FAQItem struct {
	ID        string
	Question  string
	Answer    string
	Category  string
	Status    PublishStatus
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewsletterSubscriber struct {
	ID             string
	Email          string
	SubscribedAt   time.Time
	UnsubscribedAt *time.Time
}

type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	ReadAt    *time.Time
	CreatedAt time.Time
}

type Media struct {
	ID         string
	FileName   string
	ObjectKey  string
	Bucket     string
	MIME       string
	SizeBytes  int64
	UploadedBy string
	CreatedAt  time.Time
}

// HomeSection holds one section of the home page as free-form JSON. Name is
// one of the fixed set in service.SectionNames.
type HomeSection struct {
	ID        string
	Name      string
	Content   map[string]any
	Active    bool
	UpdatedAt time.Time
}

type StaticPage struct {
	ID        string
	Title     string
	Slug      string
	Body      string
	Status    PublishStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SiteSetting struct {
	Key       string
	Value     map[string]any
	UpdatedAt time.Time
}
