package domain

import "time"

type PostStatus string

const (
	PostPending     PostStatus = "pending"
	PostApproved    PostStatus = "approved"
	PostRejected    PostStatus = "rejected"
	PostUnpublished PostStatus = "unpublished"
)

type EventStatus string

const (
	EventPending  EventStatus = "pending"
	EventApproved EventStatus = "approved"
	EventRejected EventStatus = "rejected"
)

type UserRole string

const (
	RoleUser   UserRole = "user"
	RoleDoctor UserRole = "doctor"
	RoleAdmin  UserRole = "admin"
)

type UserStatus string

const (
	UserActive UserStatus = "active"
	UserBanned UserStatus = "banned"
)

// PostType scopes a comment to its parent collection.
type PostType string

const (
	PostTypePost PostType = "post"
	PostTypeBlog PostType = "blog"
)

// Post is a user-submitted forum post awaiting or past moderation.
// Wire payloads may carry the identifier under the legacy "_id" key;
// Normalize resolves it into ID before the entity enters a store.
type Post struct {
	ID           string     `json:"id"`
	LegacyID     string     `json:"_id,omitempty"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	AuthorID     string     `json:"authorId"`
	AuthorName   string     `json:"authorName,omitempty"`
	Category     string     `json:"category"`
	Status       PostStatus `json:"status"`
	Likes        []string   `json:"likes,omitempty"`
	Dislikes     []string   `json:"dislikes,omitempty"`
	Reports      []string   `json:"reports,omitempty"`
	LikeCount    int        `json:"-"`
	DislikeCount int        `json:"-"`
	ReportCount  int        `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
}

// Blog is an editorial article managed by the admin panel.
type Blog struct {
	ID          string     `json:"id"`
	LegacyID    string     `json:"_id,omitempty"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	AuthorID    string     `json:"authorId"`
	Category    string     `json:"category"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Published   bool       `json:"published"`
	Likes       []string   `json:"likes,omitempty"`
	LikesCount  int        `json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// Comment belongs to a parent post or blog, referenced only by ID.
type Comment struct {
	ID         string    `json:"id"`
	LegacyID   string    `json:"_id,omitempty"`
	PostID     string    `json:"postId"`
	PostType   PostType  `json:"postType"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	Content    string    `json:"content"`
	Likes      []string  `json:"likes,omitempty"`
	Replies    []string  `json:"replies,omitempty"`
	LikeCount  int       `json:"-"`
	ReplyCount int       `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Event is a health-related event subject to admin approval.
type Event struct {
	ID              string      `json:"id"`
	LegacyID        string      `json:"_id,omitempty"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Location        string      `json:"location"`
	Category        string      `json:"category"`
	Date            time.Time   `json:"date"`
	EndDate         *time.Time  `json:"endDate,omitempty"`
	Capacity        int         `json:"capacity"`
	Attendees       []string    `json:"attendees,omitempty"`
	AttendeeCount   int         `json:"-"`
	Status          EventStatus `json:"status"`
	RejectionReason string      `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

type User struct {
	ID        string     `json:"id"`
	LegacyID  string     `json:"_id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      UserRole   `json:"role"`
	Status    UserStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

// PendingDoctor is an expert application awaiting review.
type PendingDoctor struct {
	ID            string    `json:"id"`
	LegacyID      string    `json:"_id,omitempty"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Specialty     string    `json:"specialty"`
	LicenseNumber string    `json:"licenseNumber,omitempty"`
	Documents     []string  `json:"documents,omitempty"`
	AppliedAt     time.Time `json:"appliedAt"`
}

// Pagination mirrors the server-reported list metadata verbatim.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// DashboardStats is the admin landing-page aggregate.
type DashboardStats struct {
	TotalUsers     int `json:"totalUsers"`
	TotalPosts     int `json:"totalPosts"`
	TotalBlogs     int `json:"totalBlogs"`
	TotalComments  int `json:"totalComments"`
	TotalEvents    int `json:"totalEvents"`
	PendingPosts   int `json:"pendingPosts"`
	PendingDoctors int `json:"pendingDoctors"`
	PendingEvents  int `json:"pendingEvents"`
}

type EventStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Upcoming int `json:"upcoming"`
}

// UploadResult is returned for every stored asset.
type UploadResult struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
}
