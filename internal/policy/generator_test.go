package policy

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGenerateReadWrite(t *testing.T) {
	docs, err := NewGenerator(nil).Generate([]string{"my-bucket"}, Options{})
	require.NoError(t, err)
	require.Len(t, docs, 1)

	out, err := json.Marshal(docs[0])
	require.NoError(t, err)

	expected := `{"Statement": [
		{"Effect":"Allow","Action":"s3:ListBucket","Resource":"arn:aws:s3:::my-bucket"},
		{"Effect":"Allow","Action":"s3:*","Resource":"arn:aws:s3:::my-bucket/*"},
		{"Effect":"Deny","Action":"s3:*","NotResource":["arn:aws:s3:::my-bucket","arn:aws:s3:::my-bucket/*"]}
	]}`
	assert.JSONEq(t, expected, string(out))
}

func TestGenerateReadOnly(t *testing.T) {
	docs, err := NewGenerator(nil).Generate([]string{"a", "b"}, Options{ReadOnly: true})
	require.NoError(t, err)
	require.Len(t, docs, 2)

	for i, bucket := range []string{"a", "b"} {
		doc := docs[i]
		require.Len(t, doc.Statement, 3)

		assert.Equal(t, EffectAllow, doc.Statement[0].Effect)
		assert.Equal(t, "s3:ListBucket", doc.Statement[0].Action)
		assert.Equal(t, "arn:aws:s3:::"+bucket, doc.Statement[0].Resource)

		assert.Equal(t, EffectAllow, doc.Statement[1].Effect)
		assert.Equal(t, []string{"s3:Get*", "s3:List*"}, doc.Statement[1].Action)
		assert.Equal(t, "arn:aws:s3:::"+bucket+"/*", doc.Statement[1].Resource)

		assert.Equal(t, EffectDeny, doc.Statement[2].Effect)
		assert.Equal(t, "s3:*", doc.Statement[2].Action)
		assert.Nil(t, doc.Statement[2].Resource)
		assert.Equal(t, []string{"arn:aws:s3:::" + bucket, "arn:aws:s3:::" + bucket + "/*"}, doc.Statement[2].NotResource)
	}
}

func TestGeneratePreservesOrderAndDuplicates(t *testing.T) {
	buckets := []string{"zeta", "alpha", "zeta", "Mixed.Case_bucket"}

	docs, err := NewGenerator(nil).Generate(buckets, Options{})
	require.NoError(t, err)
	require.Len(t, docs, len(buckets))

	for i, bucket := range buckets {
		assert.Equal(t, BucketARN(bucket), docs[i].Statement[0].Resource)
	}
	assert.Equal(t, docs[0], docs[2])
}

func TestGenerateIsIdempotent(t *testing.T) {
	g := NewGenerator(nil)
	for _, opts := range []Options{{}, {ReadOnly: true}} {
		first, err := g.Generate([]string{"x", "y"}, opts)
		require.NoError(t, err)
		second, err := g.Generate([]string{"x", "y"}, opts)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	}
}

func TestGenerateDoesNotAlias(t *testing.T) {
	g := NewGenerator(nil)
	first, err := g.Generate([]string{"x"}, Options{ReadOnly: true})
	require.NoError(t, err)

	first[0].Statement[1].Action.([]string)[0] = "s3:Put*"

	second, err := g.Generate([]string{"x"}, Options{ReadOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"s3:Get*", "s3:List*"}, second[0].Statement[1].Action)
}

func TestGenerateConfigurationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		buckets []string
	}{
		{"nil list", nil},
		{"empty list", []string{}},
		{"empty name", []string{"ok", ""}},
		{"slash", []string{"bucket/prefix"}},
		{"wildcard", []string{"bucket*"}},
		{"whitespace", []string{"my bucket"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			docs, err := NewGenerator(nil).Generate(tc.buckets, Options{})
			require.Error(t, err)
			assert.Nil(t, docs)

			var configErr *ConfigurationError
			assert.True(t, errors.As(err, &configErr))
			assert.Equal(t, "buckets", configErr.Field)
		})
	}
}

func TestGenerateLogsSelectedMode(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	_, err := NewGenerator(logger).Generate([]string{"a"}, Options{ReadOnly: true})
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "a", entry.Data["bucket"])
	assert.Equal(t, "read-only", entry.Data["mode"])
}

func TestDocumentYAML(t *testing.T) {
	docs, err := NewGenerator(nil).Generate([]string{"my-bucket"}, Options{ReadOnly: true})
	require.NoError(t, err)

	out, err := yaml.Marshal(docs[0])
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	require.Len(t, decoded, 1)

	statements, ok := decoded["Statement"].([]interface{})
	require.True(t, ok)
	require.Len(t, statements, 3)
	assert.Equal(t, []interface{}{"s3:Get*", "s3:List*"}, statements[1].(map[string]interface{})["Action"])
}

func TestARNFormatting(t *testing.T) {
	assert.Equal(t, "arn:aws:s3:::logs", BucketARN("logs"))
	assert.Equal(t, "arn:aws:s3:::logs/*", ObjectsARN("logs"))
}

func TestOptionsMode(t *testing.T) {
	assert.Equal(t, ReadWrite, Options{}.Mode())
	assert.Equal(t, ReadOnly, Options{ReadOnly: true}.Mode())
	assert.Equal(t, "read-write", ReadWrite.String())
	assert.Equal(t, "read-only", ReadOnly.String())
}
