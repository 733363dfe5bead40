package policy

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// DecodeDocument turns a stored policy document into plain JSON.
// IAM returns documents URL-encoded; some callers hand them over as quoted JSON.
func DecodeDocument(raw string) (string, error) {
	doc := raw

	if strings.Contains(doc, "%") {
		unescaped, err := url.QueryUnescape(doc)
		if err != nil {
			return "", fmt.Errorf("error URL-unescaping policy document: %w", err)
		}
		doc = unescaped
	}

	var policy interface{}
	if err := json.Unmarshal([]byte(doc), &policy); err != nil {
		return "", fmt.Errorf("error parsing policy JSON: %w", err)
	}

	// Quoted JSON decodes to a string holding the real document
	if unwrapped, ok := policy.(string); ok {
		if err := json.Unmarshal([]byte(unwrapped), &policy); err != nil {
			return "", fmt.Errorf("error parsing JSON after unwrapping: %w", err)
		}
		doc = unwrapped
	}

	if _, ok := policy.(map[string]interface{}); !ok {
		return "", fmt.Errorf("policy document must be a JSON object, got %T", policy)
	}

	return doc, nil
}

// ParseDocument parses a policy document string into a Document.
// A Statement given as a single object is accepted and wrapped in a list.
func ParseDocument(raw string) (*Document, error) {
	if strings.TrimSpace(raw) == "" {
		return &Document{Statement: []Statement{}}, nil
	}

	jsonString, err := DecodeDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("error decoding policy: %w", err)
	}

	var envelope struct {
		Version   string          `json:"Version"`
		Statement json.RawMessage `json:"Statement"`
	}
	if err := json.Unmarshal([]byte(jsonString), &envelope); err != nil {
		return nil, fmt.Errorf("error checking statement format: %w", err)
	}

	doc := &Document{Version: envelope.Version}

	trimmed := strings.TrimSpace(string(envelope.Statement))
	switch {
	case trimmed == "" || trimmed == "null":
		doc.Statement = []Statement{}
	case strings.HasPrefix(trimmed, "["):
		if err := json.Unmarshal(envelope.Statement, &doc.Statement); err != nil {
			return nil, fmt.Errorf("error parsing policy statements: %w", err)
		}
	default:
		var single Statement
		if err := json.Unmarshal(envelope.Statement, &single); err != nil {
			return nil, fmt.Errorf("error parsing single statement policy: %w", err)
		}
		doc.Statement = []Statement{single}
	}

	for i := range doc.Statement {
		doc.Statement[i] = normalizeStatement(doc.Statement[i])
	}

	return doc, nil
}

// normalizeStatement converts decoded []interface{} values to []string
// so parsed statements compare equal to generated ones.
func normalizeStatement(stmt Statement) Statement {
	stmt.Action = normalizeValue(stmt.Action)
	stmt.Resource = normalizeValue(stmt.Resource)
	stmt.NotResource = normalizeValue(stmt.NotResource)
	return stmt
}

func normalizeValue(v interface{}) interface{} {
	if list, ok := v.([]interface{}); ok {
		return toStrings(list)
	}
	return v
}
