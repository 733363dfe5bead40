package policy

// Effect values used in policy statements
const (
	EffectAllow = "Allow"
	EffectDeny  = "Deny"
)

// DocumentVersion is the policy language version IAM expects on submitted documents
const DocumentVersion = "2012-10-17"

// Document represents an IAM policy document.
// Generated documents leave Version empty so they serialize with the
// single top-level key "Statement".
type Document struct {
	Version   string      `json:"Version,omitempty" yaml:"Version,omitempty"`
	Statement []Statement `json:"Statement" yaml:"Statement"`
}

// Statement represents a statement in an IAM policy.
// Action, Resource and NotResource hold either a string or a []string.
type Statement struct {
	Effect      string      `json:"Effect" yaml:"Effect"`
	Action      interface{} `json:"Action,omitempty" yaml:"Action,omitempty"`
	Resource    interface{} `json:"Resource,omitempty" yaml:"Resource,omitempty"`
	NotResource interface{} `json:"NotResource,omitempty" yaml:"NotResource,omitempty"`
}

// Actions returns the statement actions as a list
func (s Statement) Actions() []string {
	return toStrings(s.Action)
}

// Resources returns the statement resources as a list
func (s Statement) Resources() []string {
	return toStrings(s.Resource)
}

// NotResources returns the statement excluded resources as a list
func (s Statement) NotResources() []string {
	return toStrings(s.NotResource)
}

// WithVersion returns a copy of the document carrying the given policy language version
func (d Document) WithVersion(version string) Document {
	statements := make([]Statement, len(d.Statement))
	copy(statements, d.Statement)

	return Document{
		Version:   version,
		Statement: statements,
	}
}

func toStrings(v interface{}) []string {
	var out []string

	switch val := v.(type) {
	case string:
		out = append(out, val)
	case []string:
		out = append(out, val...)
	case []interface{}:
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	}

	return out
}
