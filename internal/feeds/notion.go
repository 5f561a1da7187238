package feeds

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/vidyasagar/deskup/internal/fetch"
)

const (
	notionBaseURL = "https://api.notion.com"
	notionVersion = "2022-06-28"

	// doneStatus is the status option that marks a task finished.
	doneStatus = "Done"

	// notionMaxPages bounds pagination of one task-list query.
	notionMaxPages = 10
)

// ErrInvalidTaskID is returned when a task id is not a Notion page id.
var ErrInvalidTaskID = errors.New("invalid task id")

// Task is one open item in the Notion task database.
type Task struct {
	ID    string
	Title string
}

type notionRichText struct {
	PlainText string `json:"plain_text"`
}

type notionProperty struct {
	Type  string           `json:"type"`
	Title []notionRichText `json:"title"`
}

type notionPage struct {
	ID         string                    `json:"id"`
	Properties map[string]notionProperty `json:"properties"`
}

type notionQueryResponse struct {
	Results    []notionPage `json:"results"`
	HasMore    bool         `json:"has_more"`
	NextCursor *string      `json:"next_cursor"`
}

type notionStatusFilter struct {
	DoesNotEqual string `json:"does_not_equal"`
}

type notionFilter struct {
	Property string             `json:"property"`
	Status   notionStatusFilter `json:"status"`
}

type notionQuery struct {
	Filter      notionFilter `json:"filter"`
	StartCursor string       `json:"start_cursor,omitempty"`
	PageSize    int          `json:"page_size"`
}

// NotionClient queries and updates a Notion task database.
type NotionClient struct {
	http           *fetch.Client
	baseURL        string
	apiKey         string
	databaseID     string
	statusProperty string
}

// NewNotionClient creates a client for one database. statusProperty names
// the status-typed property holding "Done".
func NewNotionClient(c *fetch.Client, apiKey, databaseID, statusProperty string) *NotionClient {
	return &NotionClient{
		http:           c,
		baseURL:        notionBaseURL,
		apiKey:         apiKey,
		databaseID:     databaseID,
		statusProperty: statusProperty,
	}
}

// WithBaseURL points the client at another host.
func (n *NotionClient) WithBaseURL(base string) *NotionClient {
	n.baseURL = base
	return n
}

func (n *NotionClient) options() []fetch.Option {
	return []fetch.Option{
		fetch.WithBearer(n.apiKey),
		fetch.WithHeader("Notion-Version", notionVersion),
	}
}

// OpenTasks returns every task whose status is not Done, following
// pagination cursors. Tasks without a title are skipped.
func (n *NotionClient) OpenTasks(ctx context.Context) ([]Task, error) {
	u := fmt.Sprintf("%s/v1/databases/%s/query", n.baseURL, n.databaseID)
	query := notionQuery{
		Filter: notionFilter{
			Property: n.statusProperty,
			Status:   notionStatusFilter{DoesNotEqual: doneStatus},
		},
		PageSize: 100,
	}

	var tasks []Task
	for page := 0; page < notionMaxPages; page++ {
		var resp notionQueryResponse
		if err := n.http.Do(ctx, http.MethodPost, u, query, &resp, n.options()...); err != nil {
			return nil, fmt.Errorf("querying tasks: %w", err)
		}
		tasks = append(tasks, tasksFromPages(resp.Results)...)

		if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
			break
		}
		query.StartCursor = *resp.NextCursor
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// MarkDone sets the status of the task page to Done.
func (n *NotionClient) MarkDone(ctx context.Context, taskID string) error {
	id, err := uuid.Parse(taskID)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTaskID, taskID)
	}

	body := map[string]any{
		"properties": map[string]any{
			n.statusProperty: map[string]any{
				"status": map[string]string{"name": doneStatus},
			},
		},
	}
	u := fmt.Sprintf("%s/v1/pages/%s", n.baseURL, id.String())
	if err := n.http.Do(ctx, http.MethodPatch, u, body, nil, n.options()...); err != nil {
		return fmt.Errorf("marking task done: %w", err)
	}
	return nil
}

// tasksFromPages keeps pages with a non-empty title property.
func tasksFromPages(pages []notionPage) []Task {
	tasks := make([]Task, 0, len(pages))
	for _, p := range pages {
		title := pageTitle(p)
		if title == "" {
			continue
		}
		tasks = append(tasks, Task{ID: p.ID, Title: title})
	}
	return tasks
}

// pageTitle joins the plain-text segments of the page's title property.
func pageTitle(p notionPage) string {
	for _, prop := range p.Properties {
		if prop.Type != "title" {
			continue
		}
		var sb strings.Builder
		for _, seg := range prop.Title {
			sb.WriteString(seg.PlainText)
		}
		return strings.TrimSpace(sb.String())
	}
	return ""
}
