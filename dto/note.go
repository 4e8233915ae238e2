package dto

import (
	"strconv"
	"strings"

	"main/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateNoteRequest struct {
	Title          string
	Content        string
	ContentPreview string
	Tags           []string
	IsPinned       bool
}

type CreateNoteResponse struct {
	ID primitive.ObjectID `json:"id"`
}

type ListNotesResponse struct {
	Items []*model.Note `json:"items"`
}

type DeleteNoteResponse struct {
	OK   bool `json:"ok"`
	Hard bool `json:"hard"`
}

// DecodeCreate builds a create request from a decoded JSON body. Every field
// is optional; values of the wrong type are coerced to the target type rather
// than rejected. The status field is never honored here.
func DecodeCreate(body map[string]any) CreateNoteRequest {
	req := CreateNoteRequest{Tags: []string{}}

	if v, ok := body["title"]; ok {
		req.Title = coerceString(v)
	}
	if v, ok := body["content"]; ok {
		req.Content = coerceString(v)
	}
	if v, ok := body["contentPreview"]; ok {
		req.ContentPreview = coerceString(v)
	}
	if arr, ok := body["tags"].([]any); ok {
		req.Tags = coerceTags(arr)
	}
	if v, ok := body["isPinned"]; ok {
		req.IsPinned = truthy(v)
	}

	return req
}

// DecodePatch builds a partial update from a decoded JSON body. A field is
// applied only when present and of the expected JSON type; anything else is
// dropped silently. Invalid status values are dropped, not rejected.
func DecodePatch(body map[string]any) *model.NotePatch {
	patch := &model.NotePatch{}

	if s, ok := body["title"].(string); ok {
		patch.Title = &s
	}
	if s, ok := body["content"].(string); ok {
		patch.Content = &s
	}
	if s, ok := body["contentPreview"].(string); ok {
		patch.ContentPreview = &s
	}
	if arr, ok := body["tags"].([]any); ok {
		tags := coerceTags(arr)
		patch.Tags = &tags
	}
	if b, ok := body["isPinned"].(bool); ok {
		patch.IsPinned = &b
	}
	if s, ok := body["status"].(string); ok {
		if status := model.NoteStatus(s); status.IsValid() {
			patch.Status = &status
		}
	}

	return patch
}

func coerceTags(arr []any) []string {
	tags := make([]string, 0, len(arr))
	for _, t := range arr {
		tags = append(tags, coerceString(t))
	}
	return tags
}

// coerceString renders a decoded JSON value as text. Objects have no useful
// text form and coerce to the empty string rather than a placeholder.
func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, coerceString(item))
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

// truthy mirrors loose boolean coercion: zero, empty string, null and false
// are false, everything else is true.
func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case nil:
		return false
	default:
		return true
	}
}
