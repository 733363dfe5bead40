package filters

import (
	"encoding/base64"
	"sort"
	"unicode/utf8"

	"github.com/pkg/errors"
	corev1 "k8s.io/api/core/v1"
)

// DecodeSecretData flattens the "data" mapping of a secret as returned by the
// Kubernetes API, base64-decoding every value into text.
func DecodeSecretData(secret map[string]interface{}) (map[string]string, error) {
	raw, ok := secret["data"]
	if !ok {
		return nil, errors.New("secret has no data field")
	}

	data, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("secret data must be a mapping, got %T", raw)
	}

	decoded := make(map[string]string, len(data))
	for _, key := range sortedKeys(data) {
		encoded, ok := data[key].(string)
		if !ok {
			return nil, errors.Errorf("secret data %q must be a base64 string, got %T", key, data[key])
		}

		value, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, errors.Wrapf(err, "secret data %q is not valid base64", key)
		}

		text, err := toText(key, value)
		if err != nil {
			return nil, err
		}
		decoded[key] = text
	}

	return decoded, nil
}

// DecodeSecret flattens a typed Kubernetes secret. The client already base64-decoded
// Data, so values are only checked to be text. StringData entries take precedence,
// matching how the API server merges them.
func DecodeSecret(secret *corev1.Secret) (map[string]string, error) {
	if secret == nil {
		return nil, errors.New("secret is nil")
	}

	decoded := make(map[string]string, len(secret.Data)+len(secret.StringData))
	for key, value := range secret.Data {
		text, err := toText(key, value)
		if err != nil {
			return nil, errors.Wrapf(err, "secret %s/%s", secret.Namespace, secret.Name)
		}
		decoded[key] = text
	}
	for key, value := range secret.StringData {
		decoded[key] = value
	}

	return decoded, nil
}

func toText(key string, value []byte) (string, error) {
	if !utf8.Valid(value) {
		return "", errors.Errorf("secret data %q is not valid UTF-8 text", key)
	}
	return string(value), nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
