package filters

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestDecodeSecretData(t *testing.T) {
	secret := map[string]interface{}{
		"kind": "Secret",
		"metadata": map[string]interface{}{
			"name": "db",
		},
		"data": map[string]interface{}{
			"username": b64("admin"),
			"password": b64("s3cr3t!"),
			"empty":    "",
		},
	}

	decoded, err := DecodeSecretData(secret)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"username": "admin",
		"password": "s3cr3t!",
		"empty":    "",
	}, decoded)
}

func TestDecodeSecretDataErrors(t *testing.T) {
	testCases := []struct {
		name     string
		secret   map[string]interface{}
		contains string
	}{
		{"missing data", map[string]interface{}{"kind": "Secret"}, "no data field"},
		{"data not a mapping", map[string]interface{}{"data": "abc"}, "must be a mapping"},
		{"value not a string", map[string]interface{}{"data": map[string]interface{}{"n": 1}}, "must be a base64 string"},
		{"bad base64", map[string]interface{}{"data": map[string]interface{}{"k": "not base64!"}}, "not valid base64"},
		{"not utf8", map[string]interface{}{"data": map[string]interface{}{"k": base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe})}}, "not valid UTF-8"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decoded, err := DecodeSecretData(tc.secret)
			require.Error(t, err)
			assert.Nil(t, decoded)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestDecodeSecret(t *testing.T) {
	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "db", Namespace: "apps"},
		Data: map[string][]byte{
			"username": []byte("admin"),
			"password": []byte("old"),
		},
		StringData: map[string]string{
			"password": "new",
		},
	}

	decoded, err := DecodeSecret(secret)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"username": "admin", "password": "new"}, decoded)

	secret.Data["cert"] = []byte{0xff}
	_, err = DecodeSecret(secret)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret apps/db")

	_, err = DecodeSecret(nil)
	assert.Error(t, err)
}
