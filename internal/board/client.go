package board

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/get2knowio/deacon/internal/debug"
	"github.com/get2knowio/deacon/internal/status"
)

// NewClient creates a new Projects v2 client.
func NewClient(token string) *Client {
	return &Client{
		Token:    token,
		Endpoint: DefaultAPIEndpoint,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithHTTPClient returns a new client with a custom HTTP client.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	return &Client{
		Token:      c.Token,
		Endpoint:   c.Endpoint,
		HTTPClient: httpClient,
	}
}

// WithEndpoint returns a new client with a custom endpoint (for testing
// or GitHub Enterprise).
func (c *Client) WithEndpoint(endpoint string) *Client {
	return &Client{
		Token:      c.Token,
		Endpoint:   endpoint,
		HTTPClient: c.HTTPClient,
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLErr struct {
	Message string `json:"message"`
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLErr    `json:"errors,omitempty"`
}

// numericVariables lists GraphQL variables declared Int! in the query
// documents. Values arriving as digit strings (environment variables
// are always text) are coerced before transmission; the schema rejects
// quoted integers.
var numericVariables = map[string]bool{
	"number": true,
}

func coerceVariables(vars map[string]any) map[string]any {
	if vars == nil {
		return nil
	}
	out := make(map[string]any, len(vars))
	for k, v := range vars {
		if s, ok := v.(string); ok && numericVariables[k] {
			if n, err := strconv.Atoi(s); err == nil {
				out[k] = n
				continue
			}
		}
		out[k] = v
	}
	return out
}

// execute posts one GraphQL document and returns the raw response body.
// A non-2xx response becomes a TransportError. The payload's top-level
// errors list is NOT inspected here; typed decode helpers own that.
func (c *Client) execute(ctx context.Context, query string, vars map[string]any) ([]byte, error) {
	reqBody, err := json.Marshal(graphQLRequest{Query: query, Variables: coerceVariables(vars)})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal GraphQL request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GraphQL request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	const maxResponseSize = 10 * 1024 * 1024
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

// decode unmarshals a raw response, surfacing the payload's errors list
// as a QueryError before touching the data section.
func decode(raw []byte, into any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to parse GraphQL response: %w", err)
	}
	if len(env.Errors) > 0 {
		msgs := make([]string, len(env.Errors))
		for i, e := range env.Errors {
			msgs[i] = e.Message
		}
		return &QueryError{Messages: msgs}
	}
	if env.Data == nil {
		return &DecodeError{Field: "data"}
	}
	if err := json.Unmarshal(env.Data, into); err != nil {
		return fmt.Errorf("failed to parse GraphQL data: %w", err)
	}
	return nil
}

const viewerQuery = `query { viewer { login } }`

// Viewer returns the login the token resolves to. An empty login means
// the credential did not authenticate.
func (c *Client) Viewer(ctx context.Context) (string, error) {
	raw, err := c.execute(ctx, viewerQuery, nil)
	if err != nil {
		return "", err
	}
	var data struct {
		Viewer struct {
			Login string `json:"login"`
		} `json:"viewer"`
	}
	if err := decode(raw, &data); err != nil {
		return "", err
	}
	return data.Viewer.Login, nil
}

const probeProjectQuery = `
query($org:String!,$number:Int!){
  organization(login:$org){
    projectV2(number:$number){ id }
  }
}`

// ProbeProject checks that the project exists and is visible, returning
// its node ID. Requests only the ID so the probe stays cheap and
// non-mutating.
func (c *Client) ProbeProject(ctx context.Context, org, number string) (string, error) {
	raw, err := c.execute(ctx, probeProjectQuery, map[string]any{"org": org, "number": number})
	if err != nil {
		return "", err
	}
	var data struct {
		Organization struct {
			ProjectV2 *struct {
				ID string `json:"id"`
			} `json:"projectV2"`
		} `json:"organization"`
	}
	if err := decode(raw, &data); err != nil {
		return "", err
	}
	if data.Organization.ProjectV2 == nil || data.Organization.ProjectV2.ID == "" {
		return "", &DecodeError{Field: "organization.projectV2.id"}
	}
	return data.Organization.ProjectV2.ID, nil
}

const listProjectsQuery = `
query($org:String!){
  organization(login:$org){
    projectsV2(first:20){
      nodes{ number title }
    }
  }
}`

// ListProjects returns the organization's visible boards. Used only for
// preflight diagnostics when the configured board cannot be found.
func (c *Client) ListProjects(ctx context.Context, org string) ([]ProjectRef, error) {
	raw, err := c.execute(ctx, listProjectsQuery, map[string]any{"org": org})
	if err != nil {
		return nil, err
	}
	var data struct {
		Organization struct {
			ProjectsV2 struct {
				Nodes []struct {
					Number int    `json:"number"`
					Title  string `json:"title"`
				} `json:"nodes"`
			} `json:"projectsV2"`
		} `json:"organization"`
	}
	if err := decode(raw, &data); err != nil {
		return nil, err
	}
	refs := make([]ProjectRef, 0, len(data.Organization.ProjectsV2.Nodes))
	for _, n := range data.Organization.ProjectsV2.Nodes {
		refs = append(refs, ProjectRef{Number: n.Number, Title: n.Title})
	}
	return refs, nil
}

const projectQuery = `
query($org:String!,$number:Int!){
  organization(login:$org){
    projectV2(number:$number){
      id
      fields(first:50){
        nodes{
          ... on ProjectV2SingleSelectField { id name options{ id name } }
          ... on ProjectV2Field { id name }
        }
      }
    }
  }
}`

// FetchProject retrieves the project's node ID and field definitions.
// Called once per run; the result is treated as immutable thereafter.
func (c *Client) FetchProject(ctx context.Context, org, number string) (*Project, error) {
	raw, err := c.execute(ctx, projectQuery, map[string]any{"org": org, "number": number})
	if err != nil {
		return nil, err
	}
	var data struct {
		Organization struct {
			ProjectV2 *struct {
				ID     string `json:"id"`
				Fields struct {
					Nodes []struct {
						ID      string `json:"id"`
						Name    string `json:"name"`
						Options []struct {
							ID   string `json:"id"`
							Name string `json:"name"`
						} `json:"options"`
					} `json:"nodes"`
				} `json:"fields"`
			} `json:"projectV2"`
		} `json:"organization"`
	}
	if err := decode(raw, &data); err != nil {
		return nil, err
	}
	pv2 := data.Organization.ProjectV2
	if pv2 == nil || pv2.ID == "" {
		return nil, &DecodeError{Field: "organization.projectV2"}
	}

	project := &Project{ID: pv2.ID}
	for _, n := range pv2.Fields.Nodes {
		if n.ID == "" || n.Name == "" {
			// Field types outside the inline fragments decode empty.
			continue
		}
		f := Field{ID: n.ID, Name: n.Name}
		if n.Options != nil {
			f.Options = make([]status.Option, 0, len(n.Options))
			for _, o := range n.Options {
				f.Options = append(f.Options, status.Option{ID: o.ID, Name: o.Name})
			}
		}
		project.Fields = append(project.Fields, f)
	}
	return project, nil
}

const itemsQuery = `
query($project:ID!,$after:String){
  node(id:$project){
    ... on ProjectV2 {
      items(first:100, after:$after){
        nodes{
          id
          content{
            __typename
            ... on Issue {
              id
              number
              repository { name owner { login } }
            }
            ... on PullRequest {
              id
              number
              repository { name owner { login } }
            }
          }
          fieldValues(first:50){
            nodes{
              ... on ProjectV2ItemFieldSingleSelectValue {
                field { ... on ProjectV2SingleSelectField { id name } }
                name
                optionId
              }
            }
          }
        }
        pageInfo{ hasNextPage endCursor }
      }
    }
  }
}`

type itemNode struct {
	ID      string `json:"id"`
	Content *struct {
		Typename   string `json:"__typename"`
		ID         string `json:"id"`
		Number     int    `json:"number"`
		Repository struct {
			Name  string `json:"name"`
			Owner struct {
				Login string `json:"login"`
			} `json:"owner"`
		} `json:"repository"`
	} `json:"content"`
	FieldValues struct {
		Nodes []struct {
			Field struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"field"`
			Name     string `json:"name"`
			OptionID string `json:"optionId"`
		} `json:"nodes"`
	} `json:"fieldValues"`
}

type itemsPage struct {
	Node struct {
		Items struct {
			Nodes    []itemNode `json:"nodes"`
			PageInfo struct {
				HasNextPage bool    `json:"hasNextPage"`
				EndCursor   *string `json:"endCursor"`
			} `json:"pageInfo"`
		} `json:"items"`
	} `json:"node"`
}

// FetchAllItems retrieves every item on the project using cursor-based
// pagination, one page at a time to preserve cursor continuity. The
// full list is materialized before returning; the gate check and
// candidate filter both need the complete snapshot.
func (c *Client) FetchAllItems(ctx context.Context, projectID string) ([]Item, error) {
	var items []Item
	var after *string

	for page := 1; ; page++ {
		if page > MaxPages {
			return nil, fmt.Errorf("pagination limit exceeded: stopped after %d pages", MaxPages)
		}

		vars := map[string]any{"project": projectID}
		if after != nil {
			vars["after"] = *after
		}
		raw, err := c.execute(ctx, itemsQuery, vars)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch items page %d: %w", page, err)
		}

		var data itemsPage
		if err := decode(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to fetch items page %d: %w", page, err)
		}

		for _, n := range data.Node.Items.Nodes {
			items = append(items, itemFromNode(n))
		}

		info := data.Node.Items.PageInfo
		if !info.HasNextPage {
			break
		}
		if info.EndCursor == nil || *info.EndCursor == "" {
			// hasNextPage without a cursor is malformed; bail out
			// rather than refetch the first page forever.
			debug.Logf("board: page %d claims more pages but returned no cursor; stopping\n", page)
			break
		}
		after = info.EndCursor
	}

	return items, nil
}

func itemFromNode(n itemNode) Item {
	item := Item{ID: n.ID}
	if n.Content != nil {
		switch n.Content.Typename {
		case "Issue":
			item.Kind = KindIssue
		case "PullRequest":
			item.Kind = KindPullRequest
		}
		item.Number = n.Content.Number
		item.Owner = n.Content.Repository.Owner.Login
		item.Repo = n.Content.Repository.Name
	}
	for _, fv := range n.FieldValues.Nodes {
		if fv.OptionID == "" {
			// Field value types outside the inline fragment decode empty.
			continue
		}
		item.FieldValues = append(item.FieldValues, FieldValue{
			FieldID:    fv.Field.ID,
			FieldName:  fv.Field.Name,
			OptionName: fv.Name,
			OptionID:   fv.OptionID,
		})
	}
	return item
}
