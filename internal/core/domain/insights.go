package domain

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// topN is how many buckets each insight panel retains.
const topN = 5

// CountBucket is a labelled occurrence count.
type CountBucket struct {
	Label string
	Count int
}

// MonthBucket is a calendar month's commit total.
type MonthBucket struct {
	Month   string
	Commits int
}

// Insights are the derived statistics for one repository snapshot.
// They are a pure function of the snapshot; consumers recompute them
// when the snapshot reference changes.
type Insights struct {
	// FileTypes is the extension histogram, top 5 descending by count.
	FileTypes []CountBucket

	// LargestFiles are the blobs with known size, top 5 descending.
	LargestFiles []RepositoryEntry

	// IssueLabels is the label histogram across all issues, top 5.
	IssueLabels []CountBucket

	// OpenIssues are the first 5 of the issue sequence. The issues
	// endpoint also returns pull requests; they are kept, matching the
	// upstream payload.
	OpenIssues []Issue

	// OpenIssueCount is the total length of the issue sequence.
	OpenIssueCount int

	// OpenPullRequests are the first 5 of the pull request sequence.
	OpenPullRequests []PullRequest

	// OpenPRCount is the total length of the pull request sequence.
	OpenPRCount int

	// Workflows are the repository's CI workflow definitions.
	Workflows []Workflow

	// MonthlyCommits is a trailing-12-month view ending at the current
	// calendar month. Empty means the hosting API is still computing
	// activity, which is distinct from twelve zero buckets; consumers
	// prompt for a retry rather than render a flat-zero chart.
	MonthlyCommits []MonthBucket
}

// ComputeInsights derives statistics from a snapshot. The now argument
// anchors the monthly commit rotation to the current calendar month.
func ComputeInsights(snap *RepositorySnapshot, now time.Time) *Insights {
	return &Insights{
		FileTypes:        fileTypeHistogram(snap.Entries),
		LargestFiles:     largestFiles(snap.Entries),
		IssueLabels:      issueLabelHistogram(snap.Issues),
		OpenIssues:       firstIssues(snap.Issues),
		OpenIssueCount:   len(snap.Issues),
		OpenPullRequests: firstPulls(snap.PullRequests),
		OpenPRCount:      len(snap.PullRequests),
		Workflows:        append([]Workflow(nil), snap.Workflows...),
		MonthlyCommits:   monthlyCommits(snap.CommitWeeks, now),
	}
}

// FileExtension returns the extension bucket for a path: the substring
// after the last '.' of the final path segment, prefixed with '.', or
// "none" when the segment contains no dot.
func FileExtension(path string) string {
	segment := path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		segment = path[i+1:]
	}
	i := strings.LastIndex(segment, ".")
	if i < 0 {
		return "none"
	}
	return "." + segment[i+1:]
}

// fileTypeHistogram counts blob entries by extension. Descending by
// count; ties keep encounter order.
func fileTypeHistogram(entries []RepositoryEntry) []CountBucket {
	counts := map[string]int{}
	var order []string
	for _, e := range entries {
		if !e.IsBlob() {
			continue
		}
		ext := FileExtension(e.Path)
		if _, seen := counts[ext]; !seen {
			order = append(order, ext)
		}
		counts[ext]++
	}

	buckets := make([]CountBucket, 0, len(order))
	for _, ext := range order {
		buckets = append(buckets, CountBucket{Label: ext, Count: counts[ext]})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	return clampBuckets(buckets)
}

func largestFiles(entries []RepositoryEntry) []RepositoryEntry {
	var blobs []RepositoryEntry
	for _, e := range entries {
		if e.IsBlob() && e.Size > 0 {
			blobs = append(blobs, e)
		}
	}
	sort.SliceStable(blobs, func(i, j int) bool {
		return blobs[i].Size > blobs[j].Size
	})
	if len(blobs) > topN {
		blobs = blobs[:topN]
	}
	return blobs
}

func issueLabelHistogram(issues []Issue) []CountBucket {
	counts := map[string]int{}
	var order []string
	for _, issue := range issues {
		for _, label := range issue.Labels {
			if _, seen := counts[label.Name]; !seen {
				order = append(order, label.Name)
			}
			counts[label.Name]++
		}
	}

	buckets := make([]CountBucket, 0, len(order))
	for _, name := range order {
		buckets = append(buckets, CountBucket{Label: name, Count: counts[name]})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	return clampBuckets(buckets)
}

func clampBuckets(buckets []CountBucket) []CountBucket {
	if len(buckets) > topN {
		buckets = buckets[:topN]
	}
	return buckets
}

func firstPulls(pulls []PullRequest) []PullRequest {
	if len(pulls) > topN {
		pulls = pulls[:topN]
	}
	return append([]PullRequest(nil), pulls...)
}

func firstIssues(issues []Issue) []Issue {
	if len(issues) > topN {
		issues = issues[:topN]
	}
	return append([]Issue(nil), issues...)
}

// monthlyCommits buckets weekly activity into 12 fixed calendar months
// and rotates them so the sequence ends at the current month, yielding
// a rolling trailing-12-month view anchored to now. No weekly records
// yields the empty sequence, not twelve zeros.
func monthlyCommits(weeks []CommitWeek, now time.Time) []MonthBucket {
	if len(weeks) == 0 {
		return nil
	}

	buckets := make([]MonthBucket, 12)
	for i := range buckets {
		buckets[i].Month = time.Month(i + 1).String()[:3]
	}
	for _, week := range weeks {
		month := time.Unix(week.WeekStart, 0).Month()
		buckets[int(month)-1].Commits += week.Total
	}

	current := int(now.Month()) - 1
	rotated := make([]MonthBucket, 0, 12)
	rotated = append(rotated, buckets[current+1:]...)
	rotated = append(rotated, buckets[:current+1]...)
	return rotated
}

// byteUnits are the display units for FormatBytes, in ascending order.
var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatBytes renders a file size in the largest unit with magnitude
// of at least one, to two decimal places with trailing zeros trimmed.
// Zero or unknown size renders as "0 Bytes".
func FormatBytes(size int64) string {
	if size <= 0 {
		return "0 Bytes"
	}

	exp := int(math.Floor(math.Log(float64(size)) / math.Log(1024)))
	if exp >= len(byteUnits) {
		exp = len(byteUnits) - 1
	}
	value := float64(size) / math.Pow(1024, float64(exp))

	s := strconv.FormatFloat(value, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s + " " + byteUnits[exp]
}
