package domain

import (
	"fmt"
	"time"
)

// EntryType distinguishes files from directories in a repository tree.
type EntryType string

const (
	// EntryBlob is a file entry.
	EntryBlob EntryType = "blob"

	// EntryTree is a directory entry.
	EntryTree EntryType = "tree"
)

// SizeUnknown marks a tree entry whose size was not reported by the API.
// Directory entries never carry a size.
const SizeUnknown int64 = -1

// RepositoryEntry is a single path in a repository tree snapshot.
// Entries are immutable once fetched.
type RepositoryEntry struct {
	// Path is the slash-delimited path, unique within a snapshot.
	Path string

	// Type is blob or tree.
	Type EntryType

	// Size is the blob size in bytes, or SizeUnknown.
	Size int64

	// SHA is the opaque content hash of the entry.
	SHA string
}

// IsBlob reports whether the entry is a file.
func (e RepositoryEntry) IsBlob() bool {
	return e.Type == EntryBlob
}

// Label is an issue label.
type Label struct {
	Name  string
	Color string
}

// Issue is an open issue as returned by the hosting API. The issues
// endpoint also returns pull requests; they are kept, matching the
// upstream payload.
type Issue struct {
	Number int
	Title  string
	Author string
	URL    string
	Labels []Label
}

// PullRequest is an open pull request.
type PullRequest struct {
	Number int
	Title  string
	Author string
	URL    string
}

// Workflow is a CI workflow definition.
type Workflow struct {
	Name  string
	State string
	URL   string
}

// CommitWeek is one week of commit activity.
type CommitWeek struct {
	// WeekStart is the week start as Unix epoch seconds.
	WeekStart int64

	// Total is the number of commits in that week.
	Total int
}

// RepositoryDetails holds top-level repository metadata.
type RepositoryDetails struct {
	FullName      string
	Stars         int
	DefaultBranch string
}

// RepositorySnapshot is the aggregate root for one visualize action.
// It is created atomically after all parallel fetches succeed and
// replaced wholesale on the next visualize; never partially updated.
type RepositorySnapshot struct {
	Owner        string
	Repo         string
	Details      RepositoryDetails
	Entries      []RepositoryEntry
	Issues       []Issue
	PullRequests []PullRequest
	Workflows    []Workflow

	// CommitWeeks is nil while the hosting API is still computing
	// activity (HTTP 202), as opposed to empty-but-available.
	CommitWeeks []CommitWeek

	// Hierarchy is the layout-algorithm input derived from Entries.
	Hierarchy *HierarchyNode

	FetchedAt time.Time
}

// BlobPaths returns the paths of all blob entries in snapshot order.
func (s *RepositorySnapshot) BlobPaths() []string {
	var paths []string
	for _, e := range s.Entries {
		if e.IsBlob() {
			paths = append(paths, e.Path)
		}
	}
	return paths
}

// Entry returns the entry at the given path, or nil.
func (s *RepositorySnapshot) Entry(path string) *RepositoryEntry {
	for i := range s.Entries {
		if s.Entries[i].Path == path {
			return &s.Entries[i]
		}
	}
	return nil
}

// RateLimitUnknown is the value of rate limit counters before the first
// response carrying rate limit headers has been seen.
const RateLimitUnknown = -1

// RateLimit is the call quota reported by the hosting API.
// It is updated after every gateway call that returns the headers and
// reset only by re-authentication.
type RateLimit struct {
	Limit     int
	Remaining int
}

// UnknownRateLimit returns a rate limit with both counters unknown.
func UnknownRateLimit() RateLimit {
	return RateLimit{Limit: RateLimitUnknown, Remaining: RateLimitUnknown}
}

// String renders the quota as "remaining / limit", with N/A for
// counters that have not been observed yet.
func (r RateLimit) String() string {
	return fmt.Sprintf("%s / %s", formatQuota(r.Remaining), formatQuota(r.Limit))
}

func formatQuota(n int) string {
	if n < 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d", n)
}

// User is the authenticated identity behind the token.
type User struct {
	Login     string
	AvatarURL string
}

// Session pairs the credential with the identity it authenticates.
// Created on login, destroyed on logout or when startup revalidation
// detects an invalid token.
type Session struct {
	Token string
	User  User
}

// ChatRole identifies the author of a chat transcript entry.
type ChatRole string

const (
	// RoleUser is a message written by the user.
	RoleUser ChatRole = "user"

	// RoleModel is a message produced by the assistant model.
	RoleModel ChatRole = "model"
)

// ChatMessage is one entry in the assistant transcript.
type ChatMessage struct {
	ID   string
	Role ChatRole
	Text string
}
