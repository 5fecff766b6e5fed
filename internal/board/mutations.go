package board

import (
	"context"
	"fmt"
)

// Mutations are fire-and-forget single calls: no batching, no retry.
// Each decodes just enough of the response to confirm the server
// accepted it.

const createNumberFieldMutation = `
mutation($project:ID!,$name:String!){
  createProjectV2Field(input:{ projectId:$project, dataType: NUMBER, name:$name }){
    projectV2Field{
      ... on ProjectV2Field { id name }
    }
  }
}`

// CreateNumberField creates a numeric field on the project and returns
// its ID.
func (c *Client) CreateNumberField(ctx context.Context, projectID, name string) (string, error) {
	raw, err := c.execute(ctx, createNumberFieldMutation, map[string]any{
		"project": projectID,
		"name":    name,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create %q field: %w", name, err)
	}
	var data struct {
		CreateProjectV2Field struct {
			ProjectV2Field struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"projectV2Field"`
		} `json:"createProjectV2Field"`
	}
	if err := decode(raw, &data); err != nil {
		return "", fmt.Errorf("failed to create %q field: %w", name, err)
	}
	if data.CreateProjectV2Field.ProjectV2Field.ID == "" {
		return "", &DecodeError{Field: "createProjectV2Field.projectV2Field.id"}
	}
	return data.CreateProjectV2Field.ProjectV2Field.ID, nil
}

const setSingleSelectMutation = `
mutation($project:ID!,$item:ID!,$field:ID!,$option:String!){
  updateProjectV2ItemFieldValue(input:{
    projectId:$project,
    itemId:$item,
    fieldId:$field,
    value:{ singleSelectOptionId:$option }
  }){ projectV2Item{ id } }
}`

// SetItemSingleSelect sets a single-select field on an item to the
// given option. This is the authoritative status-transition call.
func (c *Client) SetItemSingleSelect(ctx context.Context, projectID, itemID, fieldID, optionID string) error {
	raw, err := c.execute(ctx, setSingleSelectMutation, map[string]any{
		"project": projectID,
		"item":    itemID,
		"field":   fieldID,
		"option":  optionID,
	})
	if err != nil {
		return fmt.Errorf("failed to set single-select value: %w", err)
	}
	return decodeItemUpdate(raw)
}

const setNumberMutation = `
mutation($project:ID!,$item:ID!,$field:ID!,$value:Float!){
  updateProjectV2ItemFieldValue(input:{
    projectId:$project,
    itemId:$item,
    fieldId:$field,
    value:{ number:$value }
  }){ projectV2Item{ id } }
}`

// SetItemNumber sets a numeric field value on an item.
func (c *Client) SetItemNumber(ctx context.Context, projectID, itemID, fieldID string, value int) error {
	raw, err := c.execute(ctx, setNumberMutation, map[string]any{
		"project": projectID,
		"item":    itemID,
		"field":   fieldID,
		"value":   value,
	})
	if err != nil {
		return fmt.Errorf("failed to set number value: %w", err)
	}
	return decodeItemUpdate(raw)
}

const setTextMutation = `
mutation($project:ID!,$item:ID!,$field:ID!,$text:String!){
  updateProjectV2ItemFieldValue(input:{
    projectId:$project,
    itemId:$item,
    fieldId:$field,
    value:{ text:$text }
  }){ projectV2Item{ id } }
}`

// SetItemText sets a text field value on an item. Used as the fallback
// when the auxiliary field pre-exists as a text-typed field and the
// numeric mutation is rejected.
func (c *Client) SetItemText(ctx context.Context, projectID, itemID, fieldID, text string) error {
	raw, err := c.execute(ctx, setTextMutation, map[string]any{
		"project": projectID,
		"item":    itemID,
		"field":   fieldID,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("failed to set text value: %w", err)
	}
	return decodeItemUpdate(raw)
}

func decodeItemUpdate(raw []byte) error {
	var data struct {
		UpdateProjectV2ItemFieldValue struct {
			ProjectV2Item struct {
				ID string `json:"id"`
			} `json:"projectV2Item"`
		} `json:"updateProjectV2ItemFieldValue"`
	}
	if err := decode(raw, &data); err != nil {
		return err
	}
	if data.UpdateProjectV2ItemFieldValue.ProjectV2Item.ID == "" {
		return &DecodeError{Field: "updateProjectV2ItemFieldValue.projectV2Item.id"}
	}
	return nil
}
